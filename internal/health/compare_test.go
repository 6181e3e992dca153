package health

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Status.Name)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	entries := Evaluate([]models.BranchStatus{
		developStatus("feature/x", 3, 0),
		developStatus("main", 0, 0),
	})

	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].Health)
	assert.Equal(t, 90, entries[0].Health.Score)
	assert.Equal(t, 100, entries[1].Health.Score)
	assert.Equal(t, []string{"feature/x", "main"}, names(entries))
}

func TestCompareOrdering(t *testing.T) {
	active := developStatus("feature/mine", 0, 30)
	active.IsActive = true

	withPR := func(b models.BranchStatus, state models.PRState) models.BranchStatus {
		b.PR = &models.PullRequest{State: state}
		return b
	}

	entries := Evaluate([]models.BranchStatus{
		developStatus("feature/healthy", 3, 0),                        // 90 healthy
		withPR(developStatus("feature/attention", 0, 1), "open"),      // 70 attention
		developStatus("feature/stale", 0, 25),                         // 20 critical
		withPR(developStatus("bugfix/closed", 2, 8), "closed"),        // 45 critical
		developStatus("feature/topic", 2, 3),                          // 65 attention
		developStatus("develop", 0, 0),                                // protected
		active,                                                        // active
		withPR(developStatus("feature/healthy-behind", 0, 2), "open"), // 70 attention
	})

	slices.SortStableFunc(entries, Compare)

	assert.Equal(t, []string{
		"feature/mine",
		"develop",
		"feature/stale",
		"bugfix/closed",
		"feature/topic",
		"feature/healthy-behind",
		"feature/attention",
		"feature/healthy",
	}, names(entries))
}

func TestCompareWithoutHealth(t *testing.T) {
	a := Entry{Status: developStatus("a", 0, 2)}
	b := Entry{Status: developStatus("b", 0, 9)}
	h := Calculate(b.Status)
	c := Entry{Status: developStatus("c", 0, 5), Health: &h}

	entries := []Entry{a, b, c}
	slices.SortStableFunc(entries, Compare)

	assert.Equal(t, []string{"b", "c", "a"}, names(entries))
	assert.Positive(t, Compare(a, b))
	assert.Zero(t, Compare(a, a))
}
