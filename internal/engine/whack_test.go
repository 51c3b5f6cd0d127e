package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/evalund/glosor/internal/terms"
)

func newWhack(t *testing.T) *WhackBoard {
	t.Helper()
	b := NewWhackBoard(DefaultHoleCount, rand.New(rand.NewPCG(3, 9)))
	b.SetupRound(terms.GameTerm{
		Term:        terms.Term{Term: "fotosyntes", Definition: "..."},
		Distractors: []string{"klorofyll", "stomata"},
	}, Tier{Distractors: 2})
	return b
}

func TestWhackSetupPlacesDistinctHoles(t *testing.T) {
	b := newWhack(t)

	filled := 0
	seen := map[string]bool{}
	for _, label := range b.Slots() {
		if label == "" {
			continue
		}
		filled++
		if seen[label] {
			t.Errorf("label %q assigned twice", label)
		}
		seen[label] = true
	}
	if filled != 3 {
		t.Fatalf("expected 3 filled holes, got %d", filled)
	}
	if !seen["fotosyntes"] {
		t.Error("target missing from board")
	}
}

func TestWhackHit(t *testing.T) {
	b := newWhack(t)

	for hole, label := range b.Slots() {
		got, correct, ok := b.Hit(hole)
		if label == "" {
			if ok {
				t.Errorf("empty hole %d resolved", hole)
			}
			continue
		}
		if !ok || got != label {
			t.Errorf("hole %d: expected label %q, got %q ok=%v", hole, label, got, ok)
		}
		if correct != (label == "fotosyntes") {
			t.Errorf("hole %d: correctness flag wrong for %q", hole, label)
		}
	}
}

func TestWhackHitOutOfRange(t *testing.T) {
	b := newWhack(t)

	if _, _, ok := b.Hit(-1); ok {
		t.Error("negative hole resolved")
	}
	if _, _, ok := b.Hit(DefaultHoleCount); ok {
		t.Error("out-of-range hole resolved")
	}
}

func TestWhackLabelsCappedByHoles(t *testing.T) {
	b := NewWhackBoard(2, rand.New(rand.NewPCG(1, 1)))
	b.SetupRound(terms.GameTerm{
		Term:        terms.Term{Term: "a", Definition: "..."},
		Distractors: []string{"b", "c", "d"},
	}, Tier{Distractors: 3})

	filled := 0
	for _, label := range b.Slots() {
		if label != "" {
			filled++
		}
	}
	if filled != 2 {
		t.Errorf("expected labels capped at hole count, got %d", filled)
	}
}

func TestWhackRoundReset(t *testing.T) {
	b := newWhack(t)
	b.SetupRound(terms.GameTerm{
		Term:        terms.Term{Term: "stomata", Definition: "..."},
		Distractors: []string{"fotosyntes"},
	}, Tier{Distractors: 1})

	filled := 0
	for hole, label := range b.Slots() {
		if label == "" {
			continue
		}
		filled++
		_, correct, _ := b.Hit(hole)
		if correct != (label == "stomata") {
			t.Errorf("target did not switch on reset: %q", label)
		}
	}
	if filled != 2 {
		t.Errorf("expected 2 filled holes after reset, got %d", filled)
	}
}
