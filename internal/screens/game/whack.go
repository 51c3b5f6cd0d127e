package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalund/glosor/internal/content"
	"github.com/evalund/glosor/internal/engine"
	"github.com/evalund/glosor/internal/screen"
	"github.com/evalund/glosor/internal/ui/layout"
	"github.com/evalund/glosor/internal/ui/theme"
)

const whackColumns = 3

// WhackScreen runs the whack-a-term variant: holes pop up words, hit
// the one matching the prompted definition before the round expires.
type WhackScreen struct {
	deps  Deps
	prep  *content.Preparation
	eng   *engine.Engine
	board *engine.WhackBoard
	sched *teaScheduler
	done  bool
}

var _ screen.Screen = (*WhackScreen)(nil)
var _ screen.KeyHintProvider = (*WhackScreen)(nil)
var _ screen.StatusProvider = (*WhackScreen)(nil)

// NewWhack creates the whack-a-term game over a prepared term set.
func NewWhack(prep *content.Preparation, cfg engine.Config, deps Deps) (*WhackScreen, error) {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	board := engine.NewWhackBoard(engine.DefaultHoleCount, rng)
	sched := newTeaScheduler()

	var opts []engine.Option
	if deps.Mistakes != nil {
		opts = append(opts, engine.WithMistakeSink(deps.Mistakes))
	}
	eng, err := engine.New(cfg, prep.Terms, prep.Language, board, sched, opts...)
	if err != nil {
		return nil, err
	}

	return &WhackScreen{
		deps:  deps,
		prep:  prep,
		eng:   eng,
		board: board,
		sched: sched,
	}, nil
}

func (w *WhackScreen) Init() tea.Cmd {
	w.eng.Start()
	return w.sched.drain()
}

func (w *WhackScreen) Title() string {
	return "Whack-a-Term"
}

func (w *WhackScreen) HeaderStatus() string {
	return renderStatus(w.eng)
}

func (w *WhackScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1-9", Description: "Whack"},
		{Key: "p", Description: "Pause"},
		{Key: "Esc", Description: "Give up"},
	}
}

func (w *WhackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerMsg:
		w.sched.fire(msg.seq)
		return w.afterEngine()

	case tea.KeyMsg:
		return w.handleKey(msg)
	}
	return w, nil
}

func (w *WhackScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		w.whack(int(key[0] - '1'))
		return w.afterEngine()
	}

	switch key {
	case "p":
		if w.eng.State() == engine.StatePaused {
			w.eng.Resume()
		} else {
			w.eng.Pause()
		}
		return w.afterEngine()
	case "esc", "q":
		w.eng.Abort()
		return w.afterEngine()
	}
	return w, nil
}

func (w *WhackScreen) whack(hole int) {
	if w.eng.State() != engine.StatePlaying || w.eng.Resolved() {
		return
	}
	label, correct, ok := w.board.Hit(hole)
	if !ok {
		return
	}
	if correct {
		w.eng.HandleCorrect(label)
	} else {
		w.eng.HandleMistake(engine.MistakeWrongPick, label)
	}
}

func (w *WhackScreen) afterEngine() (screen.Screen, tea.Cmd) {
	cmds := []tea.Cmd{w.sched.drain()}
	if w.eng.State() == engine.StateFinished && !w.done {
		w.done = true
		cmds = append(cmds, finishGame(w.deps, "whack", w.eng, w.prep))
	}
	return w, tea.Batch(cmds...)
}

func (w *WhackScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(renderRoundCounter(w.eng))
	b.WriteString("\n")
	b.WriteString(renderPrompt(w.eng, width))
	b.WriteString("\n\n")
	b.WriteString(w.renderHoles())

	if w.eng.State() == engine.StatePaused && !w.eng.Resolved() {
		b.WriteString("\n" + renderPausedBanner(width))
	} else if fb := renderFeedback(w.eng); fb != "" {
		b.WriteString("\n" + fb)
	}

	return layout.Centered(b.String(), width, height)
}

// renderHoles draws the 3x3 hole grid, each box numbered with its key.
func (w *WhackScreen) renderHoles() string {
	slots := w.board.Slots()
	cellWidth := w.holeWidth()

	var rows []string
	for start := 0; start < len(slots); start += whackColumns {
		var cells []string
		for i := start; i < start+whackColumns && i < len(slots); i++ {
			cells = append(cells, w.renderHole(i, slots[i], cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (w *WhackScreen) renderHole(i int, label string, width int) string {
	number := theme.Hint.Render(fmt.Sprintf("%d", i+1))

	body := theme.HoleEmpty.Render("· · ·")
	border := theme.Border
	if label != "" {
		body = theme.BoardLabel.Render(label)
		border = theme.Accent
	}

	content := number + "\n" + body
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(content)
}

// holeWidth sizes the boxes to the longest label on the board.
func (w *WhackScreen) holeWidth() int {
	width := 10
	for _, label := range w.board.Slots() {
		if l := lipgloss.Width(label) + 4; l > width {
			width = l
		}
	}
	return width
}
