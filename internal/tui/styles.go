package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	accentColor  = lipgloss.Color("#10B981") // Green
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	errorColor   = lipgloss.Color("#EF4444") // Red
	fgColor      = lipgloss.Color("#F9FAFB") // Light

	// Layout styles
	AppStyle    = lipgloss.NewStyle().Padding(1, 2)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	StatusStyle = lipgloss.NewStyle().Foreground(mutedColor)

	// Transcript bubbles
	UserLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	BotLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	UserTextStyle  = lipgloss.NewStyle().Foreground(fgColor)
	BotTextStyle   = lipgloss.NewStyle().Foreground(fgColor)
	ThinkingStyle  = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	ErrorStyle     = lipgloss.NewStyle().Foreground(errorColor)

	// Input line
	PromptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)

	// Help bar
	HelpStyle    = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
)
