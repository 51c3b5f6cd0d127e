package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalund/glosor/internal/engine"
	"github.com/evalund/glosor/internal/router"
	"github.com/evalund/glosor/internal/screen"
	"github.com/evalund/glosor/internal/ui/components"
	"github.com/evalund/glosor/internal/ui/layout"
	"github.com/evalund/glosor/internal/ui/theme"
)

// Result is everything the summary shows about a finished game.
type Result struct {
	Game         string
	Score        int
	BestScore    int // best before this game
	MaxStreak    int
	Correct      int
	Rounds       int
	FinishReason engine.FinishReason
	Results      []engine.RoundResult

	// SaveError is set when the session row could not be written; the
	// summary tells the player the score was not recorded.
	SaveError error
}

// SummaryScreen displays the end-of-game summary.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Game Over"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline(r.FinishReason)))
	b.WriteString("\n\n")

	scoreLine := fmt.Sprintf("Score: %d        Best streak: %d        Correct: %d/%d",
		r.Score, r.MaxStreak, r.Correct, r.Rounds)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(scoreLine))
	b.WriteString("\n")

	if r.SaveError != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Could not save this game: " + r.SaveError.Error()))
		b.WriteString("\n")
	}

	if r.Score > r.BestScore && r.BestScore > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("New record! Previous best: %d", r.BestScore)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if r.Rounds > 0 {
		bar := components.NewProgressBar("Accuracy", float64(r.Correct)/float64(r.Rounds), true, min(width-8, 48))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Words")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, rr := range r.Results {
		mark := theme.Correct.Render("✓")
		if !rr.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		line := fmt.Sprintf("%s  %-20s %s", mark, rr.Term, truncate(rr.Definition, 44))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func headline(reason engine.FinishReason) string {
	switch reason {
	case engine.FinishCompleted:
		return "All rounds complete!"
	case engine.FinishLives:
		return "Out of lives!"
	default:
		return "Game over"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
