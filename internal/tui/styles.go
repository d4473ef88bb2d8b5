package tui

import "github.com/charmbracelet/lipgloss"

// Color constants.
const (
	primaryColor = "#2563EB" // Blue
	successColor = "#10B981" // Green
	warningColor = "#F59E0B" // Amber
	errorColor   = "#EF4444" // Red
	dimColor     = "#6B7280" // Gray
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// ElapsedStyle renders the big elapsed-time line.
	ElapsedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(successColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(successColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// SelectedStyle highlights the selected list row.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)
)
