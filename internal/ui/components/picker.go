package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalund/glosor/internal/ui/theme"
)

// PickerItem is one selectable row in a multi-select list.
type PickerItem struct {
	ID    string
	Label string
}

// Picker is a checkbox list used for selecting materials. Space toggles
// the cursor row; navigation mirrors Menu.
type Picker struct {
	Items   []PickerItem
	Cursor  int
	checked map[string]bool

	// Multi enables multiple selections; otherwise toggling a row
	// clears all others.
	Multi bool
}

// NewPicker creates a picker over the given items.
func NewPicker(items []PickerItem, multi bool) Picker {
	return Picker{
		Items:   items,
		checked: make(map[string]bool),
		Multi:   multi,
	}
}

// Update handles navigation and toggling.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "down", "j":
		if p.Cursor < len(p.Items)-1 {
			p.Cursor++
		}
	case "space", " ":
		if p.Cursor < len(p.Items) {
			id := p.Items[p.Cursor].ID
			if !p.Multi {
				was := p.checked[id]
				p.checked = make(map[string]bool)
				if !was {
					p.checked[id] = true
				}
			} else {
				p.checked[id] = !p.checked[id]
			}
		}
	}
	return p, nil
}

// SelectedIDs returns the checked ids in item order.
func (p Picker) SelectedIDs() []string {
	var out []string
	for _, item := range p.Items {
		if p.checked[item.ID] {
			out = append(out, item.ID)
		}
	}
	return out
}

// View renders the picker.
func (p Picker) View() string {
	var s string
	for i, item := range p.Items {
		box := "[ ]"
		if p.checked[item.ID] {
			box = "[x]"
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "   "
		if i == p.Cursor {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			prefix = " ▸ "
		}
		s += style.Render(prefix+box+" "+item.Label) + "\n"
	}
	if len(p.Items) == 0 {
		s = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   (no materials yet)") + "\n"
	}
	return s
}
