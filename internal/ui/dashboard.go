package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Johannes-Berggren/kiki/internal/health"
	"github.com/Johannes-Berggren/kiki/internal/models"
)

// DetailView shows the health breakdown of the selected branch and, once
// requested, its rebase conflict forecast.
type DetailView struct {
	preview *previewMsg
}

func NewDetailView() *DetailView {
	return &DetailView{}
}

type previewMsg struct {
	branch    string
	base      string
	preview   models.ConflictPreview
	forcePush bool
}

func (d *DetailView) SetPreview(p previewMsg) {
	d.preview = &p
}

func (d *DetailView) View(entry *health.Entry) string {
	if entry == nil {
		return ""
	}

	h := health.Calculate(entry.Status)
	if entry.Health != nil {
		h = *entry.Health
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(severityColors[h.Level.Severity()]).
		Padding(1, 2).
		MarginLeft(2)

	sections := []string{
		activeStyle.Render("🌿 " + entry.Status.Name),
		health.Describe(entry.Status, h),
	}

	if entry.Status.PR != nil {
		sections = append(sections, mutedStyle.Render(entry.Status.PR.Title+"\n"+entry.Status.PR.URL))
	}

	if d.preview != nil && d.preview.branch == entry.Status.Name {
		sections = append(sections, d.renderPreview())
	}

	return boxStyle.Render(strings.Join(sections, "\n\n"))
}

func (d *DetailView) renderPreview() string {
	p := d.preview.preview

	var lines []string
	lines = append(lines, headerStyle.Render(fmt.Sprintf("Rebase onto %s", d.preview.base)))

	switch {
	case p.Unavailable:
		lines = append(lines, behindStyle.Render("⚠ "+p.Summary))
	case p.HasConflicts:
		lines = append(lines, LevelStyle(health.Critical).Render("⚠ "+p.Summary))
		shown := p.ConflictedFiles
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, f := range shown {
			lines = append(lines, "  • "+f)
		}
		if rest := len(p.ConflictedFiles) - len(shown); rest > 0 {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("  ... and %d more", rest)))
		}
	default:
		lines = append(lines, aheadStyle.Render("✔ "+p.Summary))
	}

	if d.preview.forcePush {
		lines = append(lines, behindStyle.Render("⚠ This will require a force push to update the remote branch."))
	}

	return strings.Join(lines, "\n")
}
