package conceptgen

import (
	"context"

	"github.com/evalund/glosor/internal/material"
)

// Generator produces vocabulary concepts from study content using an LLM.
type Generator interface {
	// Generate returns the requested number of concepts for the given
	// input. The result is schema-validated but not yet deduplicated;
	// callers run it through the term aggregator.
	Generate(ctx context.Context, input GenerateInput) ([]material.Concept, error)
}

// GenerateInput holds the context for one concept-generation request.
type GenerateInput struct {
	// Content is the concatenated material text to extract concepts
	// from. May be empty when generating from a topic hint alone.
	// Callers cap it at ContextCharBudget.
	Content string

	// Count is the number of concepts requested.
	Count int

	// Grade is the learner's grade level, used to pitch definitions.
	Grade int

	// Language is the language the concepts must be written in.
	Language string

	// TopicHint optionally steers generation when content is thin.
	TopicHint string
}

// ContextCharBudget caps how much material text is sent with a request.
const ContextCharBudget = 8000
