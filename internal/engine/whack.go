package engine

import (
	"math/rand/v2"

	"github.com/evalund/glosor/internal/terms"
)

// DefaultHoleCount is the standard whack board size.
const DefaultHoleCount = 9

// WhackBoard is the slot-and-expiry play surface: a fixed number of
// holes, a subset of which show the round's target and distractors. The
// engine owns the expiry timer; the board only maps holes to labels.
type WhackBoard struct {
	holes  int
	slots  []string // per-hole label, "" when empty
	target string
	rng    *rand.Rand
}

// NewWhackBoard creates a board with the given hole count.
func NewWhackBoard(holes int, rng *rand.Rand) *WhackBoard {
	return &WhackBoard{
		holes: holes,
		slots: make([]string, holes),
		rng:   rng,
	}
}

// SetupRound clears the holes and assigns the target plus up to the
// tier's distractor count to random distinct holes.
func (b *WhackBoard) SetupRound(gt terms.GameTerm, tier Tier) {
	b.slots = make([]string, b.holes)
	b.target = gt.Term.Term

	wanted := tier.Distractors
	if wanted > len(gt.Distractors) {
		wanted = len(gt.Distractors)
	}
	labels := append([]string{gt.Term.Term}, gt.Distractors[:wanted]...)
	if len(labels) > b.holes {
		labels = labels[:b.holes]
	}

	perm := b.rng.Perm(b.holes)
	for i, label := range labels {
		b.slots[perm[i]] = label
	}
}

// Hit resolves a click on a hole. ok is false for an empty hole, which
// must not resolve the round.
func (b *WhackBoard) Hit(hole int) (label string, correct bool, ok bool) {
	if hole < 0 || hole >= b.holes {
		return "", false, false
	}
	label = b.slots[hole]
	if label == "" {
		return "", false, false
	}
	return label, label == b.target, true
}

// Holes returns the hole count.
func (b *WhackBoard) Holes() int { return b.holes }

// Slots returns the per-hole labels; empty string means an empty hole.
func (b *WhackBoard) Slots() []string { return b.slots }
