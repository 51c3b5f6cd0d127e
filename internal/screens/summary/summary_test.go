package summary

import (
	"errors"
	"strings"
	"testing"

	"github.com/evalund/glosor/internal/engine"
)

func testResult() Result {
	return Result{
		Game:         "snake",
		Score:        42,
		BestScore:    30,
		MaxStreak:    4,
		Correct:      5,
		Rounds:       6,
		FinishReason: engine.FinishCompleted,
		Results: []engine.RoundResult{
			{Term: "fotosyntes", Definition: "Processen där växter omvandlar ljus.", Correct: true},
			{Term: "klorofyll", Definition: "Det gröna pigmentet.", Correct: false},
		},
	}
}

func TestView_ShowsScoreAndRecord(t *testing.T) {
	s := New(testResult())
	out := s.View(80, 24)

	if !strings.Contains(out, "All rounds complete!") {
		t.Error("missing completion headline")
	}
	if !strings.Contains(out, "Score: 42") {
		t.Error("missing score line")
	}
	if !strings.Contains(out, "New record!") {
		t.Error("score beats previous best but no record line")
	}
	if !strings.Contains(out, "fotosyntes") || !strings.Contains(out, "klorofyll") {
		t.Error("missing per-round word list")
	}
}

func TestView_ReportsFailedSave(t *testing.T) {
	r := testResult()
	r.SaveError = errors.New("database is locked")
	s := New(r)
	out := s.View(80, 24)

	if !strings.Contains(out, "Could not save this game") {
		t.Error("failed save not surfaced")
	}
	if !strings.Contains(out, "database is locked") {
		t.Error("save error cause not shown")
	}
}

func TestView_NoSaveWarningByDefault(t *testing.T) {
	s := New(testResult())
	out := s.View(80, 24)

	if strings.Contains(out, "Could not save") {
		t.Error("save warning shown without an error")
	}
}
