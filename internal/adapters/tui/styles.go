package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/lift/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Accent).
			Foreground(style.White)

	failureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(style.Red).
				Foreground(style.White)

	statusStyle = lipgloss.NewStyle().Bold(true)

	taskRunningStyle = lipgloss.NewStyle().
				Foreground(style.Accent)

	taskDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	taskErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	mutedStyle = lipgloss.NewStyle().
			Foreground(style.Muted)
)
