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

const (
	snakeBoardWidth  = 24
	snakeBoardHeight = 12
)

// moveTickMsg drives snake movement. One tick chain is alive at a time;
// it is rescheduled from its own handler until the game finishes.
type moveTickMsg struct{}

// SnakeScreen runs the snake variant: steer the snake onto the word
// matching the prompted definition.
type SnakeScreen struct {
	deps  Deps
	prep  *content.Preparation
	eng   *engine.Engine
	board *engine.SnakeBoard
	sched *teaScheduler
	done  bool
}

var _ screen.Screen = (*SnakeScreen)(nil)
var _ screen.KeyHintProvider = (*SnakeScreen)(nil)
var _ screen.StatusProvider = (*SnakeScreen)(nil)

// NewSnake creates the snake game over a prepared term set.
func NewSnake(prep *content.Preparation, cfg engine.Config, deps Deps) (*SnakeScreen, error) {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	board := engine.NewSnakeBoard(snakeBoardWidth, snakeBoardHeight, rng)
	sched := newTeaScheduler()

	var opts []engine.Option
	if deps.Mistakes != nil {
		opts = append(opts, engine.WithMistakeSink(deps.Mistakes))
	}
	eng, err := engine.New(cfg, prep.Terms, prep.Language, board, sched, opts...)
	if err != nil {
		return nil, err
	}

	return &SnakeScreen{
		deps:  deps,
		prep:  prep,
		eng:   eng,
		board: board,
		sched: sched,
	}, nil
}

func (s *SnakeScreen) Init() tea.Cmd {
	s.eng.Start()
	return tea.Batch(s.sched.drain(), s.tickCmd())
}

func (s *SnakeScreen) Title() string {
	return "Snake"
}

func (s *SnakeScreen) HeaderStatus() string {
	return renderStatus(s.eng)
}

func (s *SnakeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓←→", Description: "Steer"},
		{Key: "p", Description: "Pause"},
		{Key: "Esc", Description: "Give up"},
	}
}

func (s *SnakeScreen) tickCmd() tea.Cmd {
	interval := s.eng.CurrentTier().TickInterval
	if interval <= 0 {
		interval = 350 * time.Millisecond
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return moveTickMsg{}
	})
}

func (s *SnakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case moveTickMsg:
		return s.handleTick()

	case timerMsg:
		s.sched.fire(msg.seq)
		return s.afterEngine(nil)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SnakeScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}
	if s.eng.State() == engine.StatePlaying && !s.eng.Resolved() {
		switch res := s.board.Step(); res.Outcome {
		case engine.StepCollision:
			s.eng.HandleMistake(engine.MistakeCollision, "")
		case engine.StepHit:
			if res.Correct {
				s.eng.HandleCorrect(res.Label)
			} else {
				s.eng.HandleMistake(engine.MistakeWrongPick, res.Label)
			}
		}
	}
	return s.afterEngine(s.tickCmd())
}

func (s *SnakeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		s.board.SetDirection(engine.DirUp)
	case "down", "j":
		s.board.SetDirection(engine.DirDown)
	case "left", "h":
		s.board.SetDirection(engine.DirLeft)
	case "right", "l":
		s.board.SetDirection(engine.DirRight)
	case "p":
		if s.eng.State() == engine.StatePaused {
			s.eng.Resume()
		} else {
			s.eng.Pause()
		}
		return s.afterEngine(nil)
	case "esc", "q":
		s.eng.Abort()
		return s.afterEngine(nil)
	}
	return s, nil
}

// afterEngine runs after every engine interaction: schedules any new
// timers and, once the game is over, hands off to the summary.
func (s *SnakeScreen) afterEngine(extra tea.Cmd) (screen.Screen, tea.Cmd) {
	cmds := []tea.Cmd{s.sched.drain()}
	if extra != nil && !s.done {
		cmds = append(cmds, extra)
	}
	if s.eng.State() == engine.StateFinished && !s.done {
		s.done = true
		cmds = append(cmds, finishGame(s.deps, "snake", s.eng, s.prep))
	}
	return s, tea.Batch(cmds...)
}

func (s *SnakeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(renderRoundCounter(s.eng))
	b.WriteString("\n")
	b.WriteString(renderPrompt(s.eng, width))
	b.WriteString("\n\n")
	b.WriteString(s.renderBoard())
	b.WriteString("\n")
	b.WriteString(s.renderLegend())

	if s.eng.State() == engine.StatePaused && !s.eng.Resolved() {
		b.WriteString("\n" + renderPausedBanner(width))
	} else if fb := renderFeedback(s.eng); fb != "" {
		b.WriteString("\n" + fb)
	}

	return layout.Centered(b.String(), width, height)
}

// renderBoard draws the grid. Labeled cells show an index marker; the
// legend below maps markers to words.
func (s *SnakeScreen) renderBoard() string {
	markers := s.labelMarkers()

	var rows []string
	for y := 0; y < snakeBoardHeight; y++ {
		var row strings.Builder
		for x := 0; x < snakeBoardWidth; x++ {
			cell := engine.Cell{X: x, Y: y}
			switch {
			case s.isHead(cell):
				row.WriteString(theme.SnakeBody.Render("◉"))
			case s.isBody(cell):
				row.WriteString(theme.SnakeBody.Render("●"))
			case markers[cell] != 0:
				row.WriteString(theme.BoardLabel.Render(string(markers[cell])))
			default:
				row.WriteString(theme.HoleEmpty.Render("·"))
			}
			row.WriteString(" ")
		}
		rows = append(rows, row.String())
	}

	board := strings.Join(rows, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(board)
}

// labelMarkers assigns a stable letter to each labeled cell.
func (s *SnakeScreen) labelMarkers() map[engine.Cell]rune {
	markers := make(map[engine.Cell]rune, len(s.board.Labels()))
	for _, cell := range s.sortedLabelCells() {
		markers[cell] = rune('A' + len(markers))
	}
	return markers
}

func (s *SnakeScreen) sortedLabelCells() []engine.Cell {
	labels := s.board.Labels()
	cells := make([]engine.Cell, 0, len(labels))
	for y := 0; y < snakeBoardHeight; y++ {
		for x := 0; x < snakeBoardWidth; x++ {
			c := engine.Cell{X: x, Y: y}
			if _, ok := labels[c]; ok {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

func (s *SnakeScreen) renderLegend() string {
	labels := s.board.Labels()
	var parts []string
	for i, cell := range s.sortedLabelCells() {
		marker := string(rune('A' + i))
		parts = append(parts, theme.BoardLabel.Render(marker)+" "+theme.Body.Render(labels[cell]))
	}
	return fmt.Sprintf("  %s", strings.Join(parts, "    "))
}

func (s *SnakeScreen) isHead(c engine.Cell) bool {
	body := s.board.Body()
	return len(body) > 0 && body[0] == c
}

func (s *SnakeScreen) isBody(c engine.Cell) bool {
	for _, b := range s.board.Body() {
		if b == c {
			return true
		}
	}
	return false
}
