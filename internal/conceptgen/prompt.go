package conceptgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a study assistant extracting vocabulary concepts for a student.

Rules:
- Produce exactly the requested number of concepts, each a term plus its definition.
- Write every term, definition and example in the requested language.
- Pitch definitions at the given grade level: clear, concrete, one or two sentences.
- Prefer terms that actually appear in the provided material. When the material is
  thin or missing, draw on the topic hint instead.
- Terms must be distinct from each other; no near-duplicates or inflected variants.
- Examples are optional. When present, each is a single short sentence using the term.
- Never invent facts that contradict the material.`

// buildUserMessage constructs the user message from GenerateInput.
func buildUserMessage(input GenerateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Number of concepts: %d\n", input.Count)
	fmt.Fprintf(&b, "Language: %s\n", input.Language)
	fmt.Fprintf(&b, "Grade level: %d\n", input.Grade)
	if input.TopicHint != "" {
		fmt.Fprintf(&b, "Topic: %s\n", input.TopicHint)
	}

	b.WriteString("\nMaterial:\n")
	if input.Content == "" {
		b.WriteString("(none, generate from the topic)")
	} else {
		b.WriteString(clampContent(input.Content, ContextCharBudget))
	}

	return b.String()
}

// clampContent truncates material text to the character budget, cutting at
// a line boundary when one is close so sentences are not split mid-word.
func clampContent(content string, budget int) string {
	if len(content) <= budget {
		return content
	}
	clipped := content[:budget]
	if i := strings.LastIndexByte(clipped, '\n'); i > budget/2 {
		clipped = clipped[:i]
	}
	return clipped
}
