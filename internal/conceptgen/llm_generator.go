package conceptgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/evalund/glosor/internal/llm"
	"github.com/evalund/glosor/internal/material"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// conceptsOutput is the raw LLM response shape.
type conceptsOutput struct {
	Concepts []struct {
		Term       string   `json:"term"`
		Definition string   `json:"definition"`
		Examples   []string `json:"examples"`
	} `json:"concepts"`
}

// Generate requests concepts from the provider and maps the validated
// response into material concepts.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]material.Concept, error) {
	ctx = llm.WithPurpose(ctx, "concept-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      ConceptsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("concept generation failed: %w", err)
	}

	var raw conceptsOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse concept response: %w", err)
	}

	out := make([]material.Concept, 0, len(raw.Concepts))
	for _, c := range raw.Concepts {
		out = append(out, material.Concept{
			Term:       c.Term,
			Definition: c.Definition,
			Examples:   c.Examples,
		})
	}
	return out, nil
}
