package console

import "github.com/charmbracelet/lipgloss"

var (
	Lavender = lipgloss.Color("#b4befe")

	Name = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
)
