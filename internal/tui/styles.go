// Package tui is the terminal front end: a Bubble Tea program with a list page
// and a create page, routed by App.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#38A169")
	colorMuted   = lipgloss.Color("#718096")
	colorDanger  = lipgloss.Color("#E53E3E")
	colorWarning = lipgloss.Color("#D69E2E")
	colorBorder  = lipgloss.Color("#4A5568")
)

// Styles groups the lipgloss styles used by every page.
type Styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Dialog    lipgloss.Style
	Help      lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Label:     lipgloss.NewStyle().Foreground(colorMuted),
		Error:     lipgloss.NewStyle().Foreground(colorDanger),
		Warning:   lipgloss.NewStyle().Foreground(colorWarning),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Dialog:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(1, 2),
		Help:      lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
		Highlight: lipgloss.NewStyle().Bold(true),
	}
}
