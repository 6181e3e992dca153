package git

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

type stubResolver map[string]*models.PullRequest

func (s stubResolver) ResolveReviewRequest(_ context.Context, branch string) (*models.PullRequest, error) {
	if branch == "feature/b" {
		return nil, errors.New("gh: rate limited")
	}
	return s[branch], nil
}

func scriptedStatusRunner() *fakeRunner {
	return newFakeRunner().
		on("for-each-ref --format=%(refname:short) refs/heads", "main\nfeature/a\nfeature/b\nbroken").
		on("symbolic-ref refs/remotes/origin/HEAD", "refs/remotes/origin/main").
		on("rev-parse --verify origin/develop", "d1").
		on("rev-parse --verify origin/main", "m1").
		on("branch --show-current", "feature/a").
		// main
		on("rev-list --left-right --count origin/main...main", "0\t0").
		on("rev-list --left-right --count origin/develop...main", "2\t1").
		on("merge-base --is-ancestor main origin/main", "").
		on("log --format=%cI --reverse --ancestry-path main..origin/main", "2024-01-02T03:04:05Z\n2024-02-01T00:00:00Z").
		// feature/a
		on("rev-list --left-right --count origin/main...feature/a", "4\t2").
		on("rev-list --left-right --count origin/develop...feature/a", "1\t2").
		// feature/b
		on("rev-list --left-right --count origin/main...feature/b", "0\t0").
		on("rev-list --left-right --count origin/develop...feature/b", "0\t0").
		on("merge-base --is-ancestor feature/b origin/develop", "").
		// broken
		on("rev-list --left-right --count origin/main...broken", "garbage")
}

func TestBranchStatuses(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			f := scriptedStatusRunner()
			pr := &models.PullRequest{Number: 7, State: models.PRStateOpen, Platform: models.PlatformGitHub}
			repo := newTestRepo(f, WithWorkers(workers), WithReviewResolver(stubResolver{"feature/a": pr}))

			statuses, err := repo.BranchStatuses(context.Background())
			require.NoError(t, err)
			require.Len(t, statuses, 3)

			names := []string{statuses[0].Name, statuses[1].Name, statuses[2].Name}
			assert.Equal(t, []string{"main", "feature/a", "feature/b"}, names)

			main := statuses[0]
			assert.Equal(t, 0, main.Ahead)
			assert.Equal(t, 0, main.Behind)
			assert.False(t, main.NeedsRebase)
			assert.False(t, main.IsActive)
			require.NotNil(t, main.Develop)
			assert.Equal(t, "origin/develop", main.Develop.Ref)
			assert.Equal(t, 1, main.Develop.Ahead)
			assert.Equal(t, 2, main.Develop.Behind)
			assert.False(t, main.Develop.Merged)
			assert.Nil(t, main.Develop.MergedAt)
			require.NotNil(t, main.Main)
			assert.True(t, main.Main.Merged)
			require.NotNil(t, main.Main.MergedAt)
			assert.True(t, main.Main.MergedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
			assert.Nil(t, main.PR)

			featA := statuses[1]
			assert.Equal(t, 2, featA.Ahead)
			assert.Equal(t, 4, featA.Behind)
			assert.True(t, featA.NeedsRebase)
			assert.True(t, featA.IsActive)
			assert.Equal(t, 1, featA.BehindDevelop())
			assert.Equal(t, 2, featA.AheadDevelop())
			assert.Equal(t, pr, featA.PR)

			featB := statuses[2]
			assert.True(t, featB.MergedIntoDevelop())
			assert.False(t, featB.MergedIntoMain())
			assert.Nil(t, featB.Develop.MergedAt, "merge time is best effort")
			assert.Nil(t, featB.PR, "lookup errors leave the PR absent")
		})
	}
}

func TestAnalyzeResolvesBaseOnce(t *testing.T) {
	f := scriptedStatusRunner()

	report, err := newTestRepo(f).Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "origin/main", report.Base)
	assert.Len(t, report.Branches, 3)

	symbolic := 0
	for _, c := range f.calls {
		if c == "symbolic-ref refs/remotes/origin/HEAD" {
			symbolic++
		}
	}
	assert.Equal(t, 1, symbolic)
}

func TestBranchStatusesNeedsRebaseInvariant(t *testing.T) {
	tests := []struct {
		counts      string
		needsRebase bool
	}{
		{"0\t0", false},
		{"3\t0", false},
		{"0\t3", false},
		{"1\t1", true},
	}

	for _, tt := range tests {
		t.Run(tt.counts, func(t *testing.T) {
			f := newFakeRunner().
				on("for-each-ref --format=%(refname:short) refs/heads", "topic").
				on("rev-parse --verify origin/main", "m1").
				on("rev-list --left-right --count origin/main...topic", tt.counts).
				on("branch --show-current", "")

			statuses, err := newTestRepo(f).BranchStatuses(context.Background())
			require.NoError(t, err)
			require.Len(t, statuses, 1)

			st := statuses[0]
			assert.Equal(t, tt.needsRebase, st.NeedsRebase)
			assert.Equal(t, st.Ahead > 0 && st.Behind > 0, st.NeedsRebase)
			assert.False(t, st.IsActive, "detached HEAD marks nothing active")
			assert.Nil(t, st.Develop)
			require.NotNil(t, st.Main)
		})
	}
}

func TestBranchStatusesLogsSkippedBranches(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := scriptedStatusRunner().fail("fetch --quiet", "fatal: unable to access remote")
	repo := newTestRepo(f, WithLogger(zap.New(core)), WithFetch(true))

	statuses, err := repo.BranchStatuses(context.Background())
	require.NoError(t, err)
	assert.Len(t, statuses, 3)

	assert.True(t, f.called("fetch --quiet"))
	assert.Equal(t, 1, logs.FilterMessage("Failed to fetch from remote (continuing anyway)").Len())
	skipped := logs.FilterMessage("Skipping branch").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "broken", skipped[0].ContextMap()["branch"])
}

func TestBranchStatusesCurrentBranchFailure(t *testing.T) {
	f := newFakeRunner().
		on("for-each-ref --format=%(refname:short) refs/heads", "topic").
		on("rev-list --left-right --count main...topic", "0\t1").
		on("rev-parse --verify main", "m1").
		fail("branch --show-current", "fatal: not a git repository")

	statuses, err := newTestRepo(f).BranchStatuses(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.False(t, statuses[0].IsActive)
	assert.Equal(t, 1, statuses[0].Ahead)
}

func TestBranchStatusesEnumerationFailure(t *testing.T) {
	f := newFakeRunner().fail("for-each-ref --format=%(refname:short) refs/heads", "fatal: not a git repository")

	_, err := newTestRepo(f).BranchStatuses(context.Background())
	require.Error(t, err)
	assert.True(t, IsCommandError(err))
}

func TestParseCounts(t *testing.T) {
	tests := []struct {
		name   string
		output string
		ahead  int
		behind int
		ok     bool
	}{
		{"tab separated", "3\t5", 5, 3, true},
		{"space separated", "0 2", 2, 0, true},
		{"single field", "3", 0, 0, false},
		{"not a number", "x\t1", 0, 0, false},
		{"negative", "-1\t1", 0, 0, false},
		{"empty", "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ahead, behind, err := parseCounts(tt.output)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ahead, ahead)
			assert.Equal(t, tt.behind, behind)
		})
	}
}

func TestFirstCommitTime(t *testing.T) {
	got := firstCommitTime("2024-03-04T05:06:07+02:00\n2024-03-05T00:00:00Z")
	require.NotNil(t, got)
	assert.True(t, got.Equal(time.Date(2024, 3, 4, 3, 6, 7, 0, time.UTC)))

	assert.Nil(t, firstCommitTime(""))
	assert.Nil(t, firstCommitTime("yesterday"))
}
