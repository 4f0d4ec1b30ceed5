package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors for light and dark terminals. Light mode colors tuned for
// contrast on white backgrounds.
var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	ColorBgSubtle = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	headerInfoStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext).
			Background(ColorBgSubtle).
			Padding(0, 1)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorDanger).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorInfo)

	detailBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorMuted).
				Padding(0, 1)

	noDataStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true).
			Padding(1, 2)
)
