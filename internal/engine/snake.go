package engine

import (
	"math/rand/v2"

	"github.com/evalund/glosor/internal/terms"
)

// Direction is a discrete snake heading.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// opposite returns the reverse heading.
func (d Direction) opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Cell is a grid coordinate, origin top-left.
type Cell struct {
	X, Y int
}

// StepOutcome classifies one tick of movement.
type StepOutcome int

const (
	// StepMoved is a normal move onto an empty cell.
	StepMoved StepOutcome = iota

	// StepCollision is a wall or self collision; the round resolves as a
	// mistake.
	StepCollision

	// StepHit means the head landed on a labeled cell; Correct on the
	// result tells whether the label was the round's target term.
	StepHit
)

// StepResult is the outcome of one tick.
type StepResult struct {
	Outcome StepOutcome

	// Label and Correct are set for StepHit.
	Label   string
	Correct bool
}

// initialLength is the starting snake body length.
const initialLength = 3

// SnakeBoard is the grid-and-heading play surface. The board owns
// movement mechanics only; the caller routes StepResult into the engine.
type SnakeBoard struct {
	Width  int
	Height int

	body    []Cell // head first
	heading Direction
	next    *Direction
	labels  map[Cell]string
	target  string
	rng     *rand.Rand
}

// NewSnakeBoard creates a board of the given grid size.
func NewSnakeBoard(width, height int, rng *rand.Rand) *SnakeBoard {
	return &SnakeBoard{
		Width:  width,
		Height: height,
		rng:    rng,
	}
}

// SetupRound resets the snake to its fixed starting shape and scatters
// the round's target term and distractors onto free cells.
func (b *SnakeBoard) SetupRound(gt terms.GameTerm, tier Tier) {
	midY := b.Height / 2
	startX := b.Width / 4
	b.body = make([]Cell, initialLength)
	for i := range b.body {
		b.body[i] = Cell{X: startX - i, Y: midY}
	}
	b.heading = DirRight
	b.next = nil
	b.target = gt.Term.Term

	wanted := tier.Distractors
	if wanted > len(gt.Distractors) {
		wanted = len(gt.Distractors)
	}
	labels := append([]string{gt.Term.Term}, gt.Distractors[:wanted]...)
	b.placeLabels(labels)
}

// placeLabels assigns labels to random distinct free cells, keeping a
// margin off the snake's starting row so a label is never eaten on the
// first tick.
func (b *SnakeBoard) placeLabels(labels []string) {
	occupied := make(map[Cell]bool, len(b.body))
	for _, c := range b.body {
		occupied[c] = true
	}
	occupied[Cell{X: b.body[0].X + 1, Y: b.body[0].Y}] = true

	b.labels = make(map[Cell]string, len(labels))
	for _, label := range labels {
		for {
			c := Cell{X: b.rng.IntN(b.Width), Y: b.rng.IntN(b.Height)}
			if occupied[c] {
				continue
			}
			occupied[c] = true
			b.labels[c] = label
			break
		}
	}
}

// SetDirection queues a heading change to commit on the next tick.
// Reversing straight into the body is rejected.
func (b *SnakeBoard) SetDirection(d Direction) {
	if d == b.heading.opposite() {
		return
	}
	b.next = &d
}

// Step advances one tick: commit the queued heading, move the head, and
// classify what it landed on. The body shifts on a normal move and grows
// by one on a hit.
func (b *SnakeBoard) Step() StepResult {
	if b.next != nil {
		b.heading = *b.next
		b.next = nil
	}

	head := b.body[0]
	switch b.heading {
	case DirUp:
		head.Y--
	case DirDown:
		head.Y++
	case DirLeft:
		head.X--
	case DirRight:
		head.X++
	}

	if head.X < 0 || head.X >= b.Width || head.Y < 0 || head.Y >= b.Height {
		return StepResult{Outcome: StepCollision}
	}
	for _, c := range b.body[:len(b.body)-1] {
		if c == head {
			return StepResult{Outcome: StepCollision}
		}
	}

	if label, ok := b.labels[head]; ok {
		delete(b.labels, head)
		b.body = append([]Cell{head}, b.body...)
		return StepResult{
			Outcome: StepHit,
			Label:   label,
			Correct: label == b.target,
		}
	}

	b.body = append([]Cell{head}, b.body[:len(b.body)-1]...)
	return StepResult{Outcome: StepMoved}
}

// Body returns the snake cells, head first.
func (b *SnakeBoard) Body() []Cell { return b.body }

// Heading returns the committed heading.
func (b *SnakeBoard) Heading() Direction { return b.heading }

// Labels returns the labeled cells still on the board.
func (b *SnakeBoard) Labels() map[Cell]string { return b.labels }
