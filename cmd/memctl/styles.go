package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/memkit/pkg/command"
)

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#383838")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	usedStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	freeStyle = lipgloss.NewStyle().
			Foreground(successColor)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	promptStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)
)

// renderStatus formats occupancy as "[X]"/"[-]" cells, colored unless disabled.
func renderStatus(flags []bool, color bool) string {
	if !color {
		return command.Render(flags)
	}
	var sb strings.Builder
	for _, f := range flags {
		if f {
			sb.WriteString(usedStyle.Render("[X]"))
		} else {
			sb.WriteString(freeStyle.Render("[-]"))
		}
	}
	return sb.String()
}
