package conceptgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/evalund/glosor/internal/llm"
)

func validConceptsJSON() json.RawMessage {
	return json.RawMessage(`{
		"concepts": [
			{"term": "fotosyntes", "definition": "Processen där växter omvandlar ljus till energi.", "examples": ["Bladen sköter fotosyntesen."]},
			{"term": "klorofyll", "definition": "Det gröna pigmentet i växtceller.", "examples": []}
		]
	}`)
}

func TestGenerate_MapsConcepts(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validConceptsJSON()})
	gen := New(mock, DefaultConfig())

	concepts, err := gen.Generate(context.Background(), GenerateInput{
		Count:    2,
		Grade:    7,
		Language: "sv",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(concepts) != 2 {
		t.Fatalf("expected 2 concepts, got %d", len(concepts))
	}
	if concepts[0].Term != "fotosyntes" {
		t.Errorf("unexpected term: %q", concepts[0].Term)
	}
	if len(concepts[0].Examples) != 1 {
		t.Errorf("expected 1 example, got %v", concepts[0].Examples)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validConceptsJSON()})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Count:     8,
		Grade:     7,
		Language:  "sv",
		TopicHint: "fotosyntes",
		Content:   "Växter använder solljus.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := mock.Calls[0]
	if req.Schema != ConceptsSchema {
		t.Error("expected the concepts schema on the request")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Number of concepts: 8", "Language: sv", "Topic: fotosyntes", "Växter använder solljus."} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Count: 5, Language: "sv"})
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected wrapped ErrProviderUnavailable, got %v", err)
	}
}

func TestClampContent_CutsAtLineBoundary(t *testing.T) {
	content := strings.Repeat("en rad text om fotosyntes\n", 400)
	clipped := clampContent(content, ContextCharBudget)
	if len(clipped) > ContextCharBudget {
		t.Fatalf("clipped content exceeds budget: %d", len(clipped))
	}
	if strings.HasSuffix(clipped, "fotosynte") {
		t.Error("content was cut mid-word")
	}
}
