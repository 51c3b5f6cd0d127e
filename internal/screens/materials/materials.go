package materials

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalund/glosor/internal/material"
	"github.com/evalund/glosor/internal/router"
	"github.com/evalund/glosor/internal/screen"
	"github.com/evalund/glosor/internal/store"
	"github.com/evalund/glosor/internal/ui/layout"
	"github.com/evalund/glosor/internal/ui/theme"
)

// materialsMsg delivers the loaded material rows.
type materialsMsg struct {
	materials []*material.Material
	err       error
}

// deletedMsg reports the outcome of a delete and triggers a reload.
type deletedMsg struct {
	err error
}

// MaterialsScreen lists imported materials and lets the player remove
// ones they are done with. Importing happens via the CLI.
type MaterialsScreen struct {
	repo *store.MaterialRepo

	rows      []*material.Material
	cursor    int
	confirmID string
	errMsg    string
	loaded    bool
}

var _ screen.Screen = (*MaterialsScreen)(nil)
var _ screen.KeyHintProvider = (*MaterialsScreen)(nil)

// New creates the materials screen.
func New(repo *store.MaterialRepo) *MaterialsScreen {
	return &MaterialsScreen{repo: repo}
}

func (m *MaterialsScreen) Init() tea.Cmd {
	return m.load()
}

func (m *MaterialsScreen) load() tea.Cmd {
	return func() tea.Msg {
		rows, err := m.repo.Materials(context.Background())
		return materialsMsg{materials: rows, err: err}
	}
}

func (m *MaterialsScreen) Title() string {
	return "Materials"
}

func (m *MaterialsScreen) KeyHints() []layout.KeyHint {
	if m.confirmID != "" {
		return []layout.KeyHint{
			{Key: "y", Description: "Delete"},
			{Key: "n", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "d", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (m *MaterialsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case materialsMsg:
		m.loaded = true
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.rows = msg.materials
			if m.cursor >= len(m.rows) {
				m.cursor = max(0, len(m.rows)-1)
			}
		}
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *MaterialsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if m.confirmID != "" {
		switch key {
		case "y":
			id := m.confirmID
			m.confirmID = ""
			return m, func() tea.Msg {
				return deletedMsg{err: m.repo.Delete(context.Background(), id)}
			}
		case "n", "esc":
			m.confirmID = ""
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "d":
		if m.cursor < len(m.rows) {
			m.confirmID = m.rows[m.cursor].ID
		}
	case "esc", "q":
		return m, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return m, nil
}

func (m *MaterialsScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Your materials"))
	b.WriteString("\n\n")

	switch {
	case m.errMsg != "":
		b.WriteString(theme.Incorrect.Render("  " + m.errMsg))
	case m.loaded && len(m.rows) == 0:
		b.WriteString(theme.Hint.Render("  No materials yet. Import one with: glosor import <file.json>"))
	default:
		for i, row := range m.rows {
			b.WriteString(m.renderRow(i, row))
			b.WriteString("\n")
		}
	}

	if m.confirmID != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render("  Delete this material and its mistake history? (y/n)"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m *MaterialsScreen) renderRow(i int, row *material.Material) string {
	terms := len(row.Glossary) + len(row.Concepts)
	line := fmt.Sprintf("%-28s %s   %d entries", truncate(row.Title, 28), row.Language, terms)

	style := theme.Body
	prefix := "   "
	if i == m.cursor {
		style = theme.Selected
		prefix = " ▸ "
	}
	return style.Render(prefix + line)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
