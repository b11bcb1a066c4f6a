package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style
	HeaderHint  lipgloss.Style

	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style

	StepDone    lipgloss.Style
	StepCurrent lipgloss.Style
	StepTodo    lipgloss.Style

	ItemNormal   lipgloss.Style
	ItemCursor   lipgloss.Style
	ItemSelected lipgloss.Style
	ItemDetail   lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	Label   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Price   lipgloss.Style
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)

	return &Styles{
		HeaderTitle: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		HeaderHint:  lipgloss.NewStyle().Foreground(c(t.FgMuted)),

		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Secondary)).
			Background(c(t.BgBase)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),

		StepDone:    lipgloss.NewStyle().Foreground(c(t.Success)),
		StepCurrent: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		StepTodo:    lipgloss.NewStyle().Foreground(c(t.FgMuted)),

		ItemNormal:   lipgloss.NewStyle().Foreground(c(t.FgBase)),
		ItemCursor:   lipgloss.NewStyle().Foreground(c(t.BgBase)).Background(c(t.Secondary)).Bold(true),
		ItemSelected: lipgloss.NewStyle().Foreground(c(t.Success)).Bold(true),
		ItemDetail:   lipgloss.NewStyle().Foreground(c(t.FgSubtle)),

		ButtonNormal:   button.Foreground(c(t.FgBase)).Background(c(t.BgSurface0)),
		ButtonDisabled: button.Foreground(c(t.FgMuted)).Background(c(t.BgMantle)),
		ButtonFocused:  button.Foreground(c(t.BgBase)).Background(c(t.Secondary)).Bold(true),

		HintKey:       lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().Foreground(c(t.BgSurface2)),

		Label:   lipgloss.NewStyle().Foreground(c(t.Secondary)).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		Error:   lipgloss.NewStyle().Foreground(c(t.Error)),
		Success: lipgloss.NewStyle().Foreground(c(t.Success)),
		Price:   lipgloss.NewStyle().Foreground(c(t.Warning)).Bold(true),
	}
}
