package wizard

import "github.com/charmbracelet/lipgloss"

// Theme is the wizard's colour palette. Colours are ANSI 256 codes.
type Theme struct {
	Prompt    lipgloss.Style
	Step      lipgloss.Style
	Option    lipgloss.Style
	Selected  lipgloss.Style
	ScaleCell lipgloss.Style
	ScaleSel  lipgloss.Style
	Faint     lipgloss.Style
	Done      lipgloss.Style
	Frame     lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Prompt:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).MarginBottom(1),
		Step:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Option:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(2),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")).PaddingLeft(1).PaddingRight(1),
		ScaleCell: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		ScaleSel:  lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1),
		Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Done:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")).MarginBottom(1),
		Frame:     lipgloss.NewStyle().Padding(1, 2),
	}
}
