package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/evalund/glosor/internal/terms"
)

func snakeTerm() terms.GameTerm {
	return terms.GameTerm{
		Term: terms.Term{
			Term:       "fotosyntes",
			Definition: "Processen där växter omvandlar ljus till energi.",
			Language:   "sv",
		},
		Distractors: []string{"klorofyll", "stomata"},
	}
}

func newSnake(t *testing.T) *SnakeBoard {
	t.Helper()
	b := NewSnakeBoard(12, 10, rand.New(rand.NewPCG(7, 7)))
	b.SetupRound(snakeTerm(), Tier{Distractors: 2})
	return b
}

func TestSnakeSetup(t *testing.T) {
	b := newSnake(t)

	if len(b.Body()) != initialLength {
		t.Fatalf("expected body length %d, got %d", initialLength, len(b.Body()))
	}
	if b.Heading() != DirRight {
		t.Errorf("expected starting heading right, got %v", b.Heading())
	}
	if len(b.Labels()) != 3 {
		t.Fatalf("expected target + 2 distractors on board, got %d labels", len(b.Labels()))
	}

	body := map[Cell]bool{}
	for _, c := range b.Body() {
		body[c] = true
	}
	for c := range b.Labels() {
		if body[c] {
			t.Errorf("label placed on snake body at %v", c)
		}
	}
}

func TestSnakeNoInstantReversal(t *testing.T) {
	b := newSnake(t)

	b.SetDirection(DirLeft) // opposite of right
	b.Step()
	if b.Heading() != DirRight {
		t.Errorf("reversal must be rejected, heading is %v", b.Heading())
	}
}

func TestSnakeDirectionCommitsOnTick(t *testing.T) {
	b := newSnake(t)

	b.SetDirection(DirDown)
	if b.Heading() != DirRight {
		t.Fatal("heading changed before the tick boundary")
	}
	b.Step()
	if b.Heading() != DirDown {
		t.Errorf("queued heading not committed, got %v", b.Heading())
	}
}

func TestSnakeLastQueuedDirectionWins(t *testing.T) {
	b := newSnake(t)

	b.SetDirection(DirDown)
	b.SetDirection(DirUp)
	b.Step()
	if b.Heading() != DirUp {
		t.Errorf("expected last queued direction, got %v", b.Heading())
	}
}

func TestSnakeWallCollision(t *testing.T) {
	b := newSnake(t)

	var res StepResult
	for i := 0; i < b.Width+1; i++ {
		res = b.Step()
		if res.Outcome == StepCollision {
			break
		}
		if res.Outcome == StepHit {
			// Walked into a label; irrelevant here, keep moving.
			continue
		}
	}
	if res.Outcome != StepCollision {
		t.Error("driving into the wall must collide")
	}
}

func TestSnakeHitReportsLabel(t *testing.T) {
	b := newSnake(t)

	// Plant a known label directly ahead of the head.
	head := b.Body()[0]
	target := Cell{X: head.X + 1, Y: head.Y}
	b.labels = map[Cell]string{target: "fotosyntes"}

	res := b.Step()
	if res.Outcome != StepHit {
		t.Fatalf("expected hit, got %v", res.Outcome)
	}
	if !res.Correct || res.Label != "fotosyntes" {
		t.Errorf("unexpected hit result: %+v", res)
	}
	if len(b.Body()) != initialLength+1 {
		t.Errorf("hit should grow the body, length %d", len(b.Body()))
	}
	if _, still := b.Labels()[target]; still {
		t.Error("consumed label still on board")
	}
}

func TestSnakeWrongLabelHit(t *testing.T) {
	b := newSnake(t)

	head := b.Body()[0]
	b.labels = map[Cell]string{{X: head.X + 1, Y: head.Y}: "klorofyll"}

	res := b.Step()
	if res.Outcome != StepHit || res.Correct {
		t.Errorf("expected incorrect hit, got %+v", res)
	}
	if res.Label != "klorofyll" {
		t.Errorf("wrong label not captured: %q", res.Label)
	}
}

func TestSnakeNormalMoveShiftsBody(t *testing.T) {
	b := newSnake(t)
	b.labels = map[Cell]string{}

	before := b.Body()[0]
	res := b.Step()
	if res.Outcome != StepMoved {
		t.Fatalf("expected plain move, got %v", res.Outcome)
	}
	if len(b.Body()) != initialLength {
		t.Errorf("plain move must not grow the body")
	}
	if b.Body()[0] == before {
		t.Error("head did not move")
	}
}
