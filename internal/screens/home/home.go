package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalund/glosor/internal/content"
	"github.com/evalund/glosor/internal/router"
	"github.com/evalund/glosor/internal/screen"
	"github.com/evalund/glosor/internal/screens/game"
	"github.com/evalund/glosor/internal/screens/history"
	"github.com/evalund/glosor/internal/screens/materials"
	"github.com/evalund/glosor/internal/screens/setup"
	"github.com/evalund/glosor/internal/store"
	"github.com/evalund/glosor/internal/tuning"
	"github.com/evalund/glosor/internal/ui/components"
	"github.com/evalund/glosor/internal/ui/layout"
	"github.com/evalund/glosor/internal/ui/theme"
)

// Deps is everything the home screen and the screens it spawns need.
type Deps struct {
	Materials *store.MaterialRepo
	Sessions  *store.SessionRepo
	Mistakes  *store.MistakeRepo
	Profile   *store.ProfileRepo
	Preparer  *content.Preparer
	Tuning    *tuning.Tuning
}

// statsMsg carries the dashboard numbers loaded off the update loop.
type statsMsg struct {
	materialCount int
	bestSnake     int
	bestWhack     int
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps  Deps
	menu  components.Menu
	stats statsMsg
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "PLAY SNAKE", Action: func() tea.Cmd { return h.pushSetup("snake") }},
		{Label: "PLAY WHACK-A-TERM", Action: func() tea.Cmd { return h.pushSetup("whack") }},
		{Label: "MATERIALS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: materials.New(deps.Materials)}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Sessions)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

// pushSetup loads the current material list and opens the setup flow.
func (h *HomeScreen) pushSetup(gameName string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var options []setup.MaterialOption
		if h.deps.Materials != nil {
			mats, err := h.deps.Materials.Materials(ctx)
			if err == nil {
				for _, m := range mats {
					options = append(options, setup.MaterialOption{ID: m.ID, Title: m.Title})
				}
			}
		}

		grade := store.DefaultGrade
		if h.deps.Profile != nil {
			if g, err := h.deps.Profile.Grade(ctx); err == nil {
				grade = g
			}
		}

		gameDeps := game.Deps{Sessions: h.deps.Sessions, Mistakes: h.deps.Mistakes}
		s := setup.New(gameName, h.deps.Preparer, h.deps.Tuning, gameDeps, options, grade)
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var msg statsMsg
		if h.deps.Materials != nil {
			if mats, err := h.deps.Materials.Materials(ctx); err == nil {
				msg.materialCount = len(mats)
			}
		}
		if h.deps.Sessions != nil {
			msg.bestSnake, _ = h.deps.Sessions.BestScore(ctx, "snake")
			msg.bestWhack, _ = h.deps.Sessions.BestScore(ctx, "whack")
		}
		return msg
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		h.stats = msg
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "q" {
			return h, tea.Quit
		}
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("GLOSOR"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Learn your words by playing"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))
	b.WriteString("\n")

	stats := fmt.Sprintf("%d materials   ·   snake best %d   ·   whack best %d",
		h.stats.materialCount, h.stats.bestSnake, h.stats.bestWhack)
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(stats))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
