// Package styles defines shared lipgloss styles for terminal output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage
	warningColor   = lipgloss.Color("#D7AF5F") // Amber
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta

	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// LabelStyle for field names in summaries
	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	// SuccessStyle for completed counts and confirmations
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// WarningStyle for in-progress counts
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// ErrorStyle for blocker counts and errors
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)
