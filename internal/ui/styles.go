package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#7aa2f7")
	mutedColor  = lipgloss.Color("#565f89")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#c0caf5")).
			Padding(0, 1)
	slideNameStyle = lipgloss.NewStyle().
			Foreground(accentColor)
	dotActiveStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	dotInactiveStyle = lipgloss.NewStyle().Foreground(mutedColor)
	counterStyle     = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c0caf5")).
				Background(lipgloss.Color("#283457")).
				Padding(0, 1)
	autoPlayOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1b26")).
			Background(accentColor).
			Padding(0, 1)
	autoPlayOffStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Padding(0, 1)
	hintStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b")).Padding(0, 1)
	helpBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Background(lipgloss.Color("#1f2335"))
	searchBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#a9b1d6")).
			Background(lipgloss.Color("#1f2335"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Padding(0, 1)
)
