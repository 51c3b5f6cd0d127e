package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalund/glosor/internal/router"
	"github.com/evalund/glosor/internal/screen"
	"github.com/evalund/glosor/internal/store"
	"github.com/evalund/glosor/internal/ui/layout"
	"github.com/evalund/glosor/internal/ui/theme"
)

const maxSessions = 20

// sessionsMsg delivers the loaded session rows.
type sessionsMsg struct {
	sessions []store.GameSession
	err      error
}

// HistoryScreen lists recently played games.
type HistoryScreen struct {
	sessions *store.SessionRepo
	rows     []store.GameSession
	errMsg   string
	loaded   bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen.
func New(sessions *store.SessionRepo) *HistoryScreen {
	return &HistoryScreen{sessions: sessions}
}

func (h *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		rows, err := h.sessions.Recent(context.Background(), maxSessions)
		return sessionsMsg{sessions: rows, err: err}
	}
}

func (h *HistoryScreen) Title() string {
	return "History"
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsMsg:
		h.loaded = true
		if msg.err != nil {
			h.errMsg = msg.err.Error()
		} else {
			h.rows = msg.sessions
		}
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return h, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Recent games"))
	b.WriteString("\n\n")

	switch {
	case h.errMsg != "":
		b.WriteString(theme.Incorrect.Render("  " + h.errMsg))
	case h.loaded && len(h.rows) == 0:
		b.WriteString(theme.Hint.Render("  Nothing played yet. Go win something."))
	default:
		for _, s := range h.rows {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderRow(s)))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func renderRow(s store.GameSession) string {
	name := "Snake"
	if s.Game == "whack" {
		name = "Whack-a-Term"
	}
	line := fmt.Sprintf("%s  %-13s %4d pts   %d/%d correct   streak %d",
		s.PlayedAt.Local().Format("2006-01-02 15:04"),
		name, s.Score, s.Correct, s.Rounds, s.MaxStreak)
	return theme.Body.Render(line)
}
