package ui

import (
	"fmt"
	"strings"

	"github.com/Johannes-Berggren/kiki/internal/health"
)

// RenderReport renders entries, already in display order, as a plain list.
func RenderReport(entries []health.Entry, base string) string {
	var out strings.Builder

	out.WriteString(headerStyle.Render(fmt.Sprintf("Branches (%d local) vs %s", len(entries), base)) + "\n\n")
	if len(entries) == 0 {
		out.WriteString(mutedStyle.Render("No local branches.") + "\n")
		return out.String()
	}

	for _, e := range entries {
		out.WriteString(renderEntryLine(e) + "\n")
		if e.Health == nil {
			continue
		}
		for _, issue := range e.Health.Issues {
			out.WriteString("      " + mutedStyle.Render("• "+issue) + "\n")
		}
	}

	return out.String()
}

// renderEntryLine is "<icon> <name> <score> ↑ahead ↓behind [PR #n]".
func renderEntryLine(e health.Entry) string {
	st := e.Status

	icon, score := " ", mutedStyle.Render("  -")
	if e.Health != nil {
		style := LevelStyle(e.Health.Level)
		icon = style.Render(LevelIcon(e.Health.Level))
		score = style.Render(fmt.Sprintf("%3d", e.Health.Score))
	}

	marker := "  "
	name := nameStyle.Render(st.Name)
	if st.IsActive {
		marker = "* "
		name = activeStyle.Render(st.Name)
	}

	line := fmt.Sprintf("%s%s %s %s %s", marker, icon, score, name,
		aheadStyle.Render(fmt.Sprintf("↑%d", st.Ahead))+" "+behindStyle.Render(fmt.Sprintf("↓%d", st.Behind)))

	if st.PR != nil {
		line += " " + mutedStyle.Render(fmt.Sprintf("[%s #%d %s]", st.PR.Platform, st.PR.Number, st.PR.State))
	}
	return line
}
