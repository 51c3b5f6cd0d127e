package terms

import (
	"fmt"

	"github.com/evalund/glosor/internal/material"
)

// The three source adapters convert raw material records into canonical
// terms. Each is stateless: sanitize term and definition, drop the record
// if either is empty, and tag provenance. Output still needs Aggregate to
// resolve duplicates, including duplicates within a single material.

// FromConcepts harvests one term per concept, carrying its examples.
func FromConcepts(concepts []material.Concept, materialID, language string) []Term {
	var out []Term
	for i, c := range concepts {
		if !IsNonEmpty(c.Term) || !IsNonEmpty(c.Definition) {
			continue
		}
		out = append(out, Term{
			ID:         adapterID(materialID, "concept", i),
			MaterialID: materialID,
			Term:       Sanitize(c.Term),
			Definition: Sanitize(c.Definition),
			Examples:   sanitizeExamples(c.Examples),
			Source:     SourceConcept,
			Language:   language,
		})
	}
	return out
}

// FromFlashcards harvests terms from term-definition flashcards only:
// front becomes the term, back the definition. No examples.
func FromFlashcards(cards []material.Flashcard, materialID, language string) []Term {
	var out []Term
	for i, fc := range cards {
		if fc.Type != material.FlashcardTermDefinition {
			continue
		}
		if !IsNonEmpty(fc.Front) || !IsNonEmpty(fc.Back) {
			continue
		}
		out = append(out, Term{
			ID:         adapterID(materialID, "flashcard", i),
			MaterialID: materialID,
			Term:       Sanitize(fc.Front),
			Definition: Sanitize(fc.Back),
			Source:     SourceFlashcard,
			Language:   language,
		})
	}
	return out
}

// FromGlossary harvests glossary entries, carrying the single optional
// example from the entry.
func FromGlossary(entries []material.GlossaryEntry, materialID, language string) []Term {
	var out []Term
	for i, g := range entries {
		if !IsNonEmpty(g.Term) || !IsNonEmpty(g.Definition) {
			continue
		}
		t := Term{
			ID:         adapterID(materialID, "glossary", i),
			MaterialID: materialID,
			Term:       Sanitize(g.Term),
			Definition: Sanitize(g.Definition),
			Source:     SourceGlossary,
			Language:   language,
		}
		if IsNonEmpty(g.Example) {
			t.Examples = []string{Sanitize(g.Example)}
		}
		out = append(out, t)
	}
	return out
}

// FromGeneratedConcepts converts concepts returned by the generation
// capability into terms carrying the generated provenance and the
// generated-material sentinel id.
func FromGeneratedConcepts(concepts []material.Concept, language string) []Term {
	out := FromConcepts(concepts, material.GeneratedID, language)
	for i := range out {
		out[i].Source = SourceGenerated
	}
	return out
}

// FromMaterial runs all three adapters over one material.
func FromMaterial(m *material.Material) []Term {
	lang := m.Language
	var out []Term
	out = append(out, FromConcepts(m.Concepts, m.ID, lang)...)
	out = append(out, FromFlashcards(m.Flashcards, m.ID, lang)...)
	out = append(out, FromGlossary(m.Glossary, m.ID, lang)...)
	return out
}

func adapterID(materialID, kind string, i int) string {
	return fmt.Sprintf("%s:%s:%d", materialID, kind, i)
}
