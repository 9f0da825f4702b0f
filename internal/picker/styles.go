package picker

import "github.com/charmbracelet/lipgloss"

// Styles contains the style definitions for the picker
type Styles struct {
	Title       lipgloss.Style
	Chip        lipgloss.Style
	ChipRemove  lipgloss.Style
	Cursor      lipgloss.Style
	Selected    lipgloss.Style
	Dim         lipgloss.Style
	Filter      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1).
			MarginRight(1),
		ChipRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Dim:         lipgloss.NewStyle().Faint(true),
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}
