// Package ui provides terminal styling and the interactive repo picker.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	colorsEnabled = true
)

// EnableColors turns colored output on or off process-wide. Colors are
// disabled when stdout is not a terminal or --no-color is set.
func EnableColors(on bool) {
	colorsEnabled = on
}

// Good renders s in the success color.
func Good(s string) string {
	if !colorsEnabled {
		return s
	}
	return goodStyle.Render(s)
}

// Warn renders s in the failure color.
func Warn(s string) string {
	if !colorsEnabled {
		return s
	}
	return warnStyle.Render(s)
}
