package tui

import "github.com/charmbracelet/lipgloss"

// Dracula color scheme.
var (
	Background  = lipgloss.Color("#282a36")
	CurrentLine = lipgloss.Color("#44475a")
	Foreground  = lipgloss.Color("#f8f8f2")
	Comment     = lipgloss.Color("#6272a4")
	Cyan        = lipgloss.Color("#8be9fd")
	Green       = lipgloss.Color("#50fa7b")
	Pink        = lipgloss.Color("#ff79c6")
	Purple      = lipgloss.Color("#bd93f9")
)

var (
	titleStyle    = lipgloss.NewStyle().Background(CurrentLine).Foreground(Purple).Bold(true).Padding(0, 1)
	subtitleStyle = lipgloss.NewStyle().Foreground(Comment).Padding(0, 1)

	selfStyle  = lipgloss.NewStyle().Padding(0, 1).Background(Background).Foreground(Pink)
	otherStyle = lipgloss.NewStyle().Padding(0, 1).Background(Background).Foreground(Cyan)
	timeStyle  = lipgloss.NewStyle().Foreground(Comment)

	sendStyle         = lipgloss.NewStyle().Background(Purple).Foreground(Background).Bold(true).Padding(0, 1)
	sendDisabledStyle = lipgloss.NewStyle().Background(CurrentLine).Foreground(Comment).Padding(0, 1)
	helpStyle         = lipgloss.NewStyle().Foreground(Comment)
)
