package wizard

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/tailor/internal/tui/theme"
)

// newInput creates a text input styled with the current theme.
func newInput(prompt, placeholder string, width int) textinput.Model {
	t := theme.Current()
	c := lipgloss.Color

	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(c(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
			Prompt:      lipgloss.NewStyle().Foreground(c(t.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(c(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: c(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	input.SetWidth(width)
	return input
}
