package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Accent (soft teal): titles, paths, notebook names
// - Muted (gray): secondary info, dates, counts

var (
	// Accent style for titles, file paths, and notebook names.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#5EEAD4"))

	// Muted style for secondary info, dates, hints.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis.
	Bold = lipgloss.NewStyle().Bold(true)
)

// ConfigureAccent overrides the accent color (ANSI code or #RRGGBB).
func ConfigureAccent(color string) {
	if color == "" {
		return
	}
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
