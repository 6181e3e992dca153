package health

import (
	"fmt"
	"strings"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

// Describe renders the multi-line explanation shown next to a branch.
func Describe(b models.BranchStatus, h Health) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Branch Health: %s (%d/100)", h.Level.Title(), h.Score))

	if len(h.Issues) > 0 {
		lines = append(lines, "", "Issues:")
		for _, issue := range h.Issues {
			lines = append(lines, "  • "+issue)
		}
	}

	lines = append(lines, "", "Status:")
	if behind := b.BehindDevelop(); behind > 0 {
		lines = append(lines, fmt.Sprintf("  • %d %s behind develop", behind, commits(behind)))
	}
	if ahead := b.AheadDevelop(); ahead > 0 {
		lines = append(lines, fmt.Sprintf("  • %d %s ahead of develop", ahead, commits(ahead)))
	}
	if b.PR != nil {
		lines = append(lines, fmt.Sprintf("  • PR: %s (#%d)", strings.ToUpper(string(b.PR.State)), b.PR.Number))
	}

	var targets []string
	if b.MergedIntoDevelop() {
		targets = append(targets, "develop")
	}
	if b.MergedIntoMain() {
		targets = append(targets, "main")
	}
	if len(targets) > 0 {
		lines = append(lines, "  • Merged into "+strings.Join(targets, " and "))
	}

	return strings.Join(lines, "\n")
}
