package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Section       lipgloss.Style
	Dim           lipgloss.Style
	Shortcut      lipgloss.Style
	Run           lipgloss.Style
	HighlightBg   lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	StatusBusy    lipgloss.Style
	Message       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Section:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Dim:      lipgloss.NewStyle().Faint(true),
		Shortcut: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		Run:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		HighlightBg: lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("226")).
			Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusPending: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusBusy:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Message:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}
