package conceptgen

import "github.com/evalund/glosor/internal/llm"

// ConceptsSchema defines the JSON schema for concept-generation responses.
var ConceptsSchema = &llm.Schema{
	Name:        "vocab-concepts",
	Description: "A list of vocabulary concepts extracted or generated from study material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"concepts": map[string]any{
				"type":        "array",
				"description": "The generated concepts, most central first",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term": map[string]any{
							"type":        "string",
							"description": "The vocabulary term, a single word or short phrase",
						},
						"definition": map[string]any{
							"type":        "string",
							"description": "A clear one- or two-sentence definition in the requested language",
						},
						"examples": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Up to 3 short usage examples. May be empty.",
						},
					},
					"required":             []any{"term", "definition", "examples"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"concepts"},
		"additionalProperties": false,
	},
}
