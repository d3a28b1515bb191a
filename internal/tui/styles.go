package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset.
var (
	colorText     = lipgloss.Color("#cdd6f4")
	colorSubtext0 = lipgloss.Color("#a6adc8")
	colorOverlay1 = lipgloss.Color("#7f849c")
	colorSurface0 = lipgloss.Color("#313244")
	colorMantle   = lipgloss.Color("#181825")
	colorMauve    = lipgloss.Color("#cba6f7")
	colorGreen    = lipgloss.Color("#a6e3a1")
	colorRed      = lipgloss.Color("#f38ba8")
	colorYellow   = lipgloss.Color("#f9e2af")
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText).Padding(1, 2)

	headerStyle = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)

	activeTabStyle = lipgloss.NewStyle().
			Background(colorSurface0).
			Foreground(colorMauve).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Background(colorMantle).
				Foreground(colorOverlay1).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtext0).Width(8)

	runningStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	pausedStyle  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	selectorStyle        = lipgloss.NewStyle().Foreground(colorSubtext0)
	focusedSelectorStyle = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)

	resultStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	pendingStyle = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)
	statusStyle  = lipgloss.NewStyle().Foreground(colorOverlay1)
)
