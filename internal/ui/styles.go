package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Johannes-Berggren/kiki/internal/health"
)

var severityIcons = map[health.Severity]string{
	health.SeverityPass:    "✔",
	health.SeverityWarning: "⚠",
	health.SeverityError:   "✖",
}

var severityColors = map[health.Severity]lipgloss.Color{
	health.SeverityPass:    lipgloss.Color("34"),
	health.SeverityWarning: lipgloss.Color("214"),
	health.SeverityError:   lipgloss.Color("196"),
}

// LevelIcon maps a health level to its glyph.
func LevelIcon(level health.Level) string {
	return severityIcons[level.Severity()]
}

func LevelStyle(level health.Level) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(severityColors[level.Severity()]).
		Bold(true)
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("cyan")).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("green")).
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("white"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	aheadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true)

	behindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)
