package content

import (
	"errors"
	"fmt"
)

// Preparation errors are user-correctable: the caller shows them inline
// and lets the user change selection or retry. None are fatal.
var (
	// ErrNoMaterialSelected: single-material scope with no material id.
	ErrNoMaterialSelected = errors.New("no material selected")

	// ErrNoMaterialsSelected: multi-material scope resolved to nothing.
	ErrNoMaterialsSelected = errors.New("no materials selected")

	// ErrInsufficientContent: fewer than MinPlayableTerms terms exist
	// after the generation fallback. A distractor round needs at least
	// three distinct terms.
	ErrInsufficientContent = errors.New("not enough terms to start a game")
)

// MaterialNotFoundError reports a selected material id that does not
// exist in the store.
type MaterialNotFoundError struct {
	ID string
}

func (e *MaterialNotFoundError) Error() string {
	return fmt.Sprintf("material %q not found", e.ID)
}

// GenerationError wraps a failure from the concept-generation capability.
// The caller shows a retry affordance; fabricated content is never
// substituted for a failed generation request.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("concept generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
