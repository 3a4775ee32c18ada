package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	headerBg = lipgloss.Color("235")
	statusBg = lipgloss.Color("236")
	dimColor = lipgloss.Color("8")

	errorColor = lipgloss.Color("9")  // Red
	warnColor  = lipgloss.Color("11") // Yellow
	infoColor  = lipgloss.Color("10") // Green
	debugColor = lipgloss.Color("8")  // Gray
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Background(headerBg).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(statusBg).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	errorLevelStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	warnLevelStyle  = lipgloss.NewStyle().Foreground(warnColor)
	infoLevelStyle  = lipgloss.NewStyle().Foreground(infoColor)
	debugLevelStyle = lipgloss.NewStyle().Foreground(debugColor)

	defaultLevelStyle = lipgloss.NewStyle()
)

// levelStyle returns the style for a severity label
func levelStyle(level string) lipgloss.Style {
	switch strings.ToUpper(level) {
	case "ERROR", "CRITICAL", "FATAL":
		return errorLevelStyle
	case "WARN", "WARNING":
		return warnLevelStyle
	case "INFO":
		return infoLevelStyle
	case "DEBUG", "TRACE":
		return debugLevelStyle
	default:
		return defaultLevelStyle
	}
}
