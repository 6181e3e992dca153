package git

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

func TestPreviewDeleteMergedBranches(t *testing.T) {
	mergedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	merged := &models.Comparison{Ref: "origin/develop", Merged: true, MergedAt: &mergedAt}
	unmerged := &models.Comparison{Ref: "origin/develop", Ahead: 2}

	statuses := []models.BranchStatus{
		{Name: "feature/done", Develop: merged},
		{Name: "feature/wip", Develop: unmerged},
		{Name: "develop", Develop: merged},
		{Name: "feature/current", IsActive: true, Develop: merged},
		{Name: "main", IsActive: true, Main: &models.Comparison{Ref: "origin/main", Merged: true}},
		{Name: "hotfix/old", Main: &models.Comparison{Ref: "origin/main", Merged: true}},
		{Name: "no-targets"},
	}

	preview := PreviewDeleteMergedBranches(statuses)

	assert.Equal(t, 5, preview.TotalMergedBranches)
	assert.Equal(t, []string{"feature/done", "hotfix/old"}, preview.DeletableNames())

	require.Len(t, preview.Protected, 1)
	assert.Equal(t, "develop", preview.Protected[0].Name)
	assert.Equal(t, models.ReasonProtected, preview.Protected[0].Reason)

	require.Len(t, preview.Active, 2)
	assert.Equal(t, "feature/current", preview.Active[0].Name)
	assert.Equal(t, "main", preview.Active[1].Name, "active takes precedence over protected")
	assert.True(t, preview.Active[1].IsProtected)
	assert.Equal(t, models.ReasonActive, preview.Active[1].Reason)

	done := preview.Deletable[0]
	assert.True(t, done.MergedIntoDevelop)
	assert.False(t, done.MergedIntoMain)
	require.NotNil(t, done.MergedAtDevelop)
	assert.True(t, done.MergedAtDevelop.Equal(mergedAt))
	assert.Nil(t, done.MergedAtMain)
	assert.Empty(t, done.Reason)
}

func TestPreviewDeleteMergedBranchesEmpty(t *testing.T) {
	preview := PreviewDeleteMergedBranches(nil)

	assert.Equal(t, 0, preview.TotalMergedBranches)
	assert.NotNil(t, preview.Deletable)
	assert.NotNil(t, preview.Protected)
	assert.NotNil(t, preview.Active)
}

func TestBatchDeleteBranches(t *testing.T) {
	f := newFakeRunner().
		on("branch -d feature/a", "Deleted branch feature/a (was abc1234).").
		fail("branch -d feature/b", "error: The branch 'feature/b' is not fully merged.").
		on("branch -d feature/c", "Deleted branch feature/c (was def5678).")

	result := newTestRepo(f).BatchDeleteBranches(context.Background(), []string{"feature/a", "feature/b", "feature/c"}, false)

	assert.Equal(t, []string{"feature/a", "feature/c"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "feature/b", result.Failed[0].Name)
	assert.Equal(t, "error: The branch 'feature/b' is not fully merged.", result.Failed[0].Error)
}

func TestBatchDeleteBranchesForce(t *testing.T) {
	f := newFakeRunner().on("branch -D feature/b", "Deleted branch feature/b (was abc1234).")

	result := newTestRepo(f).BatchDeleteBranches(context.Background(), []string{"feature/b"}, true)

	assert.Equal(t, []string{"feature/b"}, result.Succeeded)
	assert.Empty(t, result.Failed)
	assert.False(t, f.called("branch -d feature/b"))
}

func TestBatchDeleteBranchesNothingToDo(t *testing.T) {
	f := newFakeRunner()

	result := newTestRepo(f).BatchDeleteBranches(context.Background(), nil, false)

	assert.NotNil(t, result.Succeeded)
	assert.NotNil(t, result.Failed)
	assert.Empty(t, f.calls)
}
