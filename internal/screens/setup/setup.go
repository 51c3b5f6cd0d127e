package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalund/glosor/internal/content"
	"github.com/evalund/glosor/internal/router"
	"github.com/evalund/glosor/internal/screen"
	"github.com/evalund/glosor/internal/screens/game"
	"github.com/evalund/glosor/internal/terms"
	"github.com/evalund/glosor/internal/tuning"
	"github.com/evalund/glosor/internal/ui/components"
	"github.com/evalund/glosor/internal/ui/layout"
	"github.com/evalund/glosor/internal/ui/theme"
)

type phase int

const (
	phaseScope phase = iota
	phaseMaterials
	phaseTopic
	phasePreparing
	phaseReview
	phaseError
)

// prepReadyMsg delivers the async preparation result.
type prepReadyMsg struct {
	Prep *content.Preparation
	Err  error
}

// MaterialOption is a selectable material row.
type MaterialOption struct {
	ID    string
	Title string
}

// SetupScreen walks the player through content selection for one game:
// scope, materials or topic, then an automatic preparation step with a
// review stop when generated content is present.
type SetupScreen struct {
	gameName string
	preparer *content.Preparer
	tuning   *tuning.Tuning
	gameDeps game.Deps
	grade    int

	materials []MaterialOption

	phase      phase
	scope      content.Scope
	scopeMenu  components.Menu
	picker     components.Picker
	topicInput components.TextInput
	prep       *content.Preparation
	lastReq    content.Request
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen for the given game ("snake" or "whack").
func New(gameName string, preparer *content.Preparer, tn *tuning.Tuning, gameDeps game.Deps, materials []MaterialOption, grade int) *SetupScreen {
	s := &SetupScreen{
		gameName:   gameName,
		preparer:   preparer,
		tuning:     tn,
		gameDeps:   gameDeps,
		grade:      grade,
		materials:  materials,
		topicInput: components.NewTextInput("e.g. fotosyntes, glosor v12...", 60),
	}

	s.scopeMenu = components.NewMenu([]components.MenuItem{
		{Label: "ONE MATERIAL", Disabled: len(materials) == 0, Action: func() tea.Cmd {
			s.enterMaterials(content.ScopeSingle)
			return nil
		}},
		{Label: "MIX MATERIALS", Disabled: len(materials) == 0, Action: func() tea.Cmd {
			s.enterMaterials(content.ScopeMulti)
			return nil
		}},
		{Label: "SURPRISE ME (AI)", Action: func() tea.Cmd {
			s.scope = content.ScopeGenerated
			s.phase = phaseTopic
			return s.topicInput.Focus()
		}},
	})
	return s
}

func (s *SetupScreen) enterMaterials(scope content.Scope) {
	s.scope = scope
	items := make([]components.PickerItem, len(s.materials))
	for i, m := range s.materials {
		items[i] = components.PickerItem{ID: m.ID, Label: m.Title}
	}
	s.picker = components.NewPicker(items, scope == content.ScopeMulti)
	s.phase = phaseMaterials
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	if s.gameName == "snake" {
		return "Snake Setup"
	}
	return "Whack-a-Term Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseMaterials:
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseTopic:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseReview:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Looks good, play"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseError:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case prepReadyMsg:
		return s.handlePrepReady(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseTopic {
		var cmd tea.Cmd
		s.topicInput, cmd = s.topicInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseScope:
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		s.scopeMenu, cmd = s.scopeMenu.Update(msg)
		return s, cmd

	case phaseMaterials:
		switch key {
		case "enter":
			return s.startPreparation()
		case "esc":
			s.phase = phaseScope
			return s, nil
		}
		var cmd tea.Cmd
		s.picker, cmd = s.picker.Update(msg)
		return s, cmd

	case phaseTopic:
		switch key {
		case "enter":
			return s.startPreparation()
		case "esc":
			s.phase = phaseScope
			return s, nil
		}
		var cmd tea.Cmd
		s.topicInput, cmd = s.topicInput.Update(msg)
		return s, cmd

	case phaseReview:
		switch key {
		case "enter":
			return s.launchGame()
		case "esc":
			s.phase = phaseScope
			s.prep = nil
			return s, nil
		}

	case phaseError:
		switch key {
		case "r":
			s.phase = phasePreparing
			return s, s.prepareCmd(s.lastReq)
		case "esc":
			s.phase = phaseScope
			s.errMsg = ""
			return s, nil
		}
	}
	return s, nil
}

// startPreparation builds the request from the current selections and
// kicks off the async pipeline.
func (s *SetupScreen) startPreparation() (screen.Screen, tea.Cmd) {
	req := content.Request{
		Scope:          s.scope,
		MinTerms:       s.tuning.MinTerms,
		MaxDistractors: s.tuning.MaxDistractors,
		Grade:          s.grade,
	}

	switch s.scope {
	case content.ScopeSingle, content.ScopeMulti:
		req.MaterialIDs = s.picker.SelectedIDs()
	case content.ScopeGenerated:
		req.TopicHint = strings.TrimSpace(s.topicInput.Value())
	}

	s.lastReq = req
	s.phase = phasePreparing
	return s, s.prepareCmd(req)
}

func (s *SetupScreen) prepareCmd(req content.Request) tea.Cmd {
	return func() tea.Msg {
		prep, err := s.preparer.Prepare(context.Background(), req)
		return prepReadyMsg{Prep: prep, Err: err}
	}
}

func (s *SetupScreen) handlePrepReady(msg prepReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = friendlyError(msg.Err)
		s.phase = phaseError
		return s, nil
	}

	s.prep = msg.Prep
	if s.prep.NeedsReview {
		s.phase = phaseReview
		return s, nil
	}
	return s.launchGame()
}

// launchGame replaces this screen with the game, so the summary later
// unwinds straight back to home.
func (s *SetupScreen) launchGame() (screen.Screen, tea.Cmd) {
	var gs screen.Screen
	var err error
	if s.gameName == "snake" {
		gs, err = game.NewSnake(s.prep, s.tuning.SnakeConfig(), s.gameDeps)
	} else {
		gs, err = game.NewWhack(s.prep, s.tuning.WhackConfig(), s.gameDeps)
	}
	if err != nil {
		s.errMsg = err.Error()
		s.phase = phaseError
		return s, nil
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: gs}
	}
}

// friendlyError maps preparation errors onto actionable messages.
func friendlyError(err error) string {
	var notFound *content.MaterialNotFoundError
	var genErr *content.GenerationError
	switch {
	case errors.Is(err, content.ErrNoMaterialSelected):
		return "Pick a material first."
	case errors.Is(err, content.ErrNoMaterialsSelected):
		return "Pick at least one material."
	case errors.Is(err, content.ErrInsufficientContent):
		return "Not enough words to play with. Add more material or try a topic."
	case errors.As(err, &notFound):
		return fmt.Sprintf("Material %q no longer exists.", notFound.ID)
	case errors.As(err, &genErr):
		return "Word generation failed. Check your connection and retry."
	default:
		return err.Error()
	}
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	switch s.phase {
	case phaseScope:
		b.WriteString(theme.Title.Width(width).Render("Where should the words come from?"))
		b.WriteString("\n\n")
		b.WriteString(s.scopeMenu.View())

	case phaseMaterials:
		b.WriteString(theme.Title.Width(width).Render("Pick your material"))
		b.WriteString("\n\n")
		b.WriteString(s.picker.View())
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  Space toggles, Enter starts"))

	case phaseTopic:
		b.WriteString(theme.Title.Width(width).Render("What should the words be about?"))
		b.WriteString("\n\n")
		b.WriteString("  " + s.topicInput.View())
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("  Leave empty to let your materials decide"))

	case phasePreparing:
		b.WriteString(layout.Centered(
			theme.Subtitle.Render("Preparing your words..."), width, height))
		return b.String()

	case phaseReview:
		b.WriteString(s.renderReview(width))

	case phaseError:
		b.WriteString(layout.Centered(
			theme.Incorrect.Render(s.errMsg), width, height))
		return b.String()
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// renderReview lists the generated words for confirmation before play.
func (s *SetupScreen) renderReview(width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Check the generated words"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("These were made up by the AI. Do they look right?"))
	b.WriteString("\n\n")

	for _, gt := range s.prep.Terms {
		line := fmt.Sprintf("  %-20s %s", gt.Term.Term, truncate(gt.Definition, width-28))
		style := theme.Body
		if gt.Source == terms.SourceGenerated {
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	if n < 4 || len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
