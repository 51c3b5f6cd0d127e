package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/evalund/glosor/internal/llm"
	"github.com/evalund/glosor/internal/material"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMaterialRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m := &material.Material{
		Title:    "Fotosyntesen",
		Content:  "Växter omvandlar solljus till energi.",
		Language: "sv",
		Concepts: []material.Concept{
			{Term: "fotosyntes", Definition: "Ljus blir energi.", Examples: []string{"Bladen sköter fotosyntesen."}},
		},
		Glossary: []material.GlossaryEntry{
			{Term: "klorofyll", Definition: "Grönt pigment."},
		},
	}
	if err := s.Materials().Save(ctx, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if m.ID == "" {
		t.Fatal("Save did not assign an id")
	}

	got, err := s.Materials().Material(ctx, m.ID)
	if err != nil {
		t.Fatalf("Material: %v", err)
	}
	if got == nil {
		t.Fatal("saved material not found")
	}
	if got.Title != "Fotosyntesen" || len(got.Concepts) != 1 || len(got.Glossary) != 1 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.Concepts[0].Examples[0] != "Bladen sköter fotosyntesen." {
		t.Errorf("examples lost: %+v", got.Concepts[0])
	}
}

func TestMaterialMissingIsNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Materials().Material(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for missing material")
	}
}

func TestMaterialUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m := &material.Material{Title: "Före", Language: "sv"}
	if err := s.Materials().Save(ctx, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	m.Title = "Efter"
	if err := s.Materials().Save(ctx, m); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	got, err := s.Materials().Material(ctx, m.ID)
	if err != nil || got == nil {
		t.Fatalf("Material: %v", err)
	}
	if got.Title != "Efter" {
		t.Errorf("update not applied: %q", got.Title)
	}

	all, err := s.Materials().Materials(ctx)
	if err != nil {
		t.Fatalf("Materials: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("upsert duplicated the row: %d materials", len(all))
	}
}

func TestMistakeIncrementAndWeights(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Mistakes()

	for i := 0; i < 3; i++ {
		if err := repo.RecordMistake(ctx, "bio-1", "Stomata", "Små öppningar.", "sv"); err != nil {
			t.Fatalf("RecordMistake: %v", err)
		}
	}
	if err := repo.RecordMistake(ctx, "bio-1", "klorofyll", "Grönt pigment.", "sv"); err != nil {
		t.Fatalf("RecordMistake: %v", err)
	}
	if err := repo.RecordMistake(ctx, "bio-2", "stomata", "Små öppningar.", "sv"); err != nil {
		t.Fatalf("RecordMistake: %v", err)
	}

	weights, err := repo.MistakeWeights(ctx, []string{"bio-1", "bio-2"})
	if err != nil {
		t.Fatalf("MistakeWeights: %v", err)
	}
	// Lowercased keys, counts summed across materials.
	if weights["stomata"] != 4 {
		t.Errorf("expected stomata weight 4, got %d", weights["stomata"])
	}
	if weights["klorofyll"] != 1 {
		t.Errorf("expected klorofyll weight 1, got %d", weights["klorofyll"])
	}

	weights, err = repo.MistakeWeights(ctx, []string{"bio-2"})
	if err != nil {
		t.Fatalf("MistakeWeights: %v", err)
	}
	if weights["stomata"] != 1 || weights["klorofyll"] != 0 {
		t.Errorf("material scoping broken: %v", weights)
	}
}

func TestMistakeList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Mistakes()

	repo.RecordMistake(ctx, "bio-1", "stomata", "...", "sv")
	repo.RecordMistake(ctx, "bio-1", "stomata", "...", "sv")
	repo.RecordMistake(ctx, "bio-1", "klorofyll", "...", "sv")

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(list))
	}
	if list[0].Term != "stomata" || list[0].MissCount != 2 {
		t.Errorf("expected most-missed first, got %+v", list[0])
	}
}

func TestSessionSaveAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := &GameSession{
		Game:         "snake",
		Score:        120,
		MaxStreak:    6,
		Rounds:       10,
		Correct:      8,
		FinishReason: "completed",
		Language:     "sv",
		MaterialIDs:  []string{"bio-1"},
	}
	if err := s.Sessions().Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	recent, err := s.Sessions().Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 session, got %d", len(recent))
	}
	got := recent[0]
	if got.Score != 120 || got.Game != "snake" || len(got.MaterialIDs) != 1 {
		t.Errorf("round trip lost data: %+v", got)
	}

	best, err := s.Sessions().BestScore(ctx, "snake")
	if err != nil {
		t.Fatalf("BestScore: %v", err)
	}
	if best != 120 {
		t.Errorf("expected best 120, got %d", best)
	}
}

func TestLLMRequestLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.LLMRequests()

	err := repo.AppendLLMRequest(ctx, llm.RequestRecord{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "concept-gen",
		InputTokens:  900,
		OutputTokens: 300,
		LatencyMs:    1200,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("AppendLLMRequest: %v", err)
	}

	recent, err := repo.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 || !recent[0].Success || recent[0].Purpose != "concept-gen" {
		t.Errorf("unexpected log rows: %+v", recent)
	}

	in, out, err := repo.TokenTotals(ctx)
	if err != nil {
		t.Fatalf("TokenTotals: %v", err)
	}
	if in != 900 || out != 300 {
		t.Errorf("token totals wrong: %d/%d", in, out)
	}
}

func TestProfileGrade(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	grade, err := s.Profile().Grade(ctx)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if grade != DefaultGrade {
		t.Errorf("expected default grade %d, got %d", DefaultGrade, grade)
	}

	if err := s.Profile().SetGrade(ctx, 9); err != nil {
		t.Fatalf("SetGrade: %v", err)
	}
	grade, err = s.Profile().Grade(ctx)
	if err != nil || grade != 9 {
		t.Errorf("expected grade 9, got %d (%v)", grade, err)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Materials().Save(ctx, &material.Material{Title: "X", Language: "sv"})
	s.Mistakes().RecordMistake(ctx, "m", "term", "def", "sv")

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	all, err := s.Materials().Materials(ctx)
	if err != nil {
		t.Fatalf("Materials: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("reset left %d materials", len(all))
	}
}
