package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("1")

	headerStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("15")).Background(accent).Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	tagStyle      = lipgloss.NewStyle().Foreground(accent)
	tagActive     = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	searchStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	toolStyle     = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	holeStyle     = lipgloss.NewStyle().Foreground(accent).Italic(true)
	statusStyle   = lipgloss.NewStyle().Foreground(accent)
)
