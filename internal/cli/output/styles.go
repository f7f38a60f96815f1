package output

import "github.com/charmbracelet/lipgloss"

// Styles is the lipgloss style set shared by CLI commands.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Header1 lipgloss.Style
	Header2 lipgloss.Style

	// ParamName styles geometric parameter identifiers in listings.
	ParamName lipgloss.Style
}

// NewStyles returns the default style set.
func NewStyles() *Styles {
	return &Styles{
		Bold:      lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Header1:   lipgloss.NewStyle().Bold(true).Underline(true),
		Header2:   lipgloss.NewStyle().Bold(true),
		ParamName: lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	}
}
