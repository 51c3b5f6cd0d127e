package material

import (
	"errors"
	"fmt"
	"strings"
)

// GeneratedID is the sentinel material id used for terms that were produced
// by the concept generator rather than harvested from a stored material.
const GeneratedID = "generated"

// FlashcardTermDefinition is the flashcard type eligible for term harvesting.
// Other flashcard types (cloze, image, ...) carry no term/definition pair.
const FlashcardTermDefinition = "term-definition"

// Material is a unit of imported study content. Concepts, flashcards and
// glossary entries are the three harvestable term sources.
type Material struct {
	ID         string
	Title      string
	Content    string
	Language   string
	Concepts   []Concept
	Flashcards []Flashcard
	Glossary   []GlossaryEntry
}

// Concept is an extracted key idea: a term, its definition, and examples.
type Concept struct {
	Term       string   `json:"term"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples,omitempty"`
}

// Flashcard is a front/back study card. Only cards whose Type is
// FlashcardTermDefinition contribute to term drills.
type Flashcard struct {
	Type  string `json:"type"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GlossaryEntry is a dictionary-style entry with an optional usage example.
type GlossaryEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// ImportFile is the on-disk JSON shape accepted by `glosor import`.
type ImportFile struct {
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	Language   string          `json:"language"`
	Concepts   []Concept       `json:"concepts,omitempty"`
	Flashcards []Flashcard     `json:"flashcards,omitempty"`
	Glossary   []GlossaryEntry `json:"glossary,omitempty"`
}

// Validate checks that an import file is usable. A material needs a title
// and at least one of: content text, concepts, flashcards, glossary.
func (f *ImportFile) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return errors.New("material title is required")
	}
	if strings.TrimSpace(f.Content) == "" &&
		len(f.Concepts) == 0 && len(f.Flashcards) == 0 && len(f.Glossary) == 0 {
		return fmt.Errorf("material %q has no content, concepts, flashcards or glossary", f.Title)
	}
	return nil
}

// EffectiveLanguage returns the material language, defaulting to Swedish,
// the app's primary audience.
func (f *ImportFile) EffectiveLanguage() string {
	if l := strings.TrimSpace(f.Language); l != "" {
		return l
	}
	return "sv"
}
