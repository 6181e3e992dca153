package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

func TestSimplifyDeleteError(t *testing.T) {
	tests := []struct {
		in     string
		expect string
	}{
		{
			in:     "error: The branch 'feature/x' is not fully merged.\nIf you are sure you want to delete it, run 'git branch -D feature/x'.",
			expect: "branch is not fully merged (use --force to delete anyway)",
		},
		{
			in:     "error: cannot delete branch 'feature/x' used by worktree at '/tmp/wt'",
			expect: "error: cannot delete branch 'feature/x' used by worktree at '/tmp/wt'",
		},
		{
			in:     "error: Cannot delete branch 'feature/x' checked out at '/tmp/wt'",
			expect: "branch is checked out in another worktree",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, simplifyDeleteError(tt.in))
	}
}

func TestPrintPrunePreview(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)

	preview := models.BatchDeletePreview{
		Deletable: []models.MergedBranchCandidate{
			{Name: "feature/done", MergedIntoDevelop: true, MergedAtDevelop: &yesterday},
		},
		Protected: []models.MergedBranchCandidate{
			{Name: "develop", MergedIntoMain: true, IsProtected: true, Reason: models.ReasonProtected},
		},
		Active: []models.MergedBranchCandidate{
			{Name: "feature/here", MergedIntoDevelop: true, IsActive: true, Reason: models.ReasonActive},
		},
		TotalMergedBranches: 3,
	}

	var buf bytes.Buffer
	printPrunePreview(&buf, preview, now)

	assert.Equal(t, "3 merged branch(es)\n"+
		"\nDeletable:\n"+
		"  • feature/done (merged into develop) [1 day ago]\n"+
		"\nKept:\n"+
		"  • feature/here (merged into develop) (currently checked out)\n"+
		"  • develop (merged into main) (protected branch)\n", buf.String())
}

func TestPrintPruneResult(t *testing.T) {
	var buf bytes.Buffer
	printPruneResult(&buf, models.BatchDeleteResult{
		Succeeded: []string{"a", "b"},
		Failed:    []models.FailedDeletion{{Name: "c", Error: "error: The branch 'c' is not fully merged."}},
	})

	assert.Equal(t, "✔ deleted a\n✔ deleted b\n✖ c: branch is not fully merged (use --force to delete anyway)\n", buf.String())
}
