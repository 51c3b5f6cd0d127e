package terms

// Source tags where a term record came from. Provenance decides whether a
// human review step is needed before play and how merge conflicts resolve.
type Source string

const (
	SourceConcept   Source = "concept"
	SourceFlashcard Source = "flashcard"
	SourceGlossary  Source = "glossary"
	SourceGenerated Source = "generated"
)

// MaxExamples caps the examples carried on a term after merging.
const MaxExamples = 3

// Term is the canonical drill unit: a vocabulary word or phrase plus its
// definition, harvested from one of the material sources.
type Term struct {
	// ID is an opaque unique identifier.
	ID string

	// MaterialID is the owning material, or material.GeneratedID when the
	// term is not tied to a single stored material.
	MaterialID string

	// Term is the display text. Always trimmed and non-empty; candidates
	// that sanitize to empty are dropped by the adapters.
	Term string

	// Definition is the explanatory text shown as the round prompt.
	// Same trim/drop rule as Term.
	Definition string

	// Examples holds up to MaxExamples deduplicated usage examples.
	Examples []string

	// Source is the provenance tag.
	Source Source

	// Language is the ISO-ish language code carried through so generated
	// content matches the material language.
	Language string
}

// GameTerm is a Term enriched with its per-preparation distractor pool.
// Distractors are sampled once per preparation, not per round, so replays
// of the same round show a consistent pool.
type GameTerm struct {
	Term

	// Distractors are plausible-but-wrong alternative term texts. Never
	// contains the term itself; may be shorter than the configured
	// maximum when the pool is small, down to empty for a pool of one.
	Distractors []string
}

// FirstExample returns the first example, or "" when the term has none.
func (t Term) FirstExample() string {
	if len(t.Examples) == 0 {
		return ""
	}
	return t.Examples[0]
}
