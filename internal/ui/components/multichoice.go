package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillcheck/internal/ui/theme"
)

// ChoiceList is a keyboard-driven single-choice selector. Options are shown
// as given by the service, which already labels them ("A) ...").
type ChoiceList struct {
	Options  []string
	Selected int
	Disabled bool
}

// NewChoiceList creates a selector with the cursor on selected, or on the
// first option when selected is out of range.
func NewChoiceList(options []string, selected int) ChoiceList {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return ChoiceList{Options: options, Selected: selected}
}

// Update moves the cursor with arrows or j/k and jumps with 1-9.
func (m ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if m.Disabled || len(m.Options) == 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
			}
		}
	}

	return m, nil
}

// View renders the options, wrapping each to width.
func (m ChoiceList) View(width int) string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Disabled:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
			if i == m.Selected {
				prefix = "▸ "
			}
		case i == m.Selected:
			prefix = "▸ "
			style = theme.Selected
		}
		if width > 4 {
			style = style.Width(width - 2)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, prefix, style.Render(opt))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
