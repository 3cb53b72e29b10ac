package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	alertFg   = lipgloss.Color("#F87171")
	borderCol = lipgloss.Color("#243141")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	alertStyle  = boxStyle.BorderForeground(alertFg)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
)
