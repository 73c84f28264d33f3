package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("39")  // blue
	colorMuted   = lipgloss.Color("240") // dark gray
	colorSuccess = lipgloss.Color("34")  // green
	colorWarning = lipgloss.Color("214") // orange
	colorError   = lipgloss.Color("196") // red

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
	droppedStyle = numberStyle.Foreground(colorWarning)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	failureStyle = lipgloss.NewStyle().Foreground(colorError)
)

const (
	symbolCheck = "✓"
	symbolCross = "✗"
)
