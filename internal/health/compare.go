package health

import (
	"cmp"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

// Entry pairs a status with its health, which may not be computed yet.
type Entry struct {
	Status models.BranchStatus `json:"status"`
	Health *Health             `json:"health,omitempty"`
}

// Evaluate computes the health of every status.
func Evaluate(statuses []models.BranchStatus) []Entry {
	entries := make([]Entry, 0, len(statuses))
	for _, st := range statuses {
		h := Calculate(st)
		entries = append(entries, Entry{Status: st, Health: &h})
	}
	return entries
}

// Compare orders entries for display, for use with slices.SortFunc:
// the active branch, then protected branches, then by level (critical
// first), then by ascending score, then by descending commits behind
// develop. Without health on either side only the behind count is used.
func Compare(a, b Entry) int {
	if a.Status.IsActive != b.Status.IsActive {
		if a.Status.IsActive {
			return -1
		}
		return 1
	}

	aProtected := models.IsProtectedBranch(a.Status.Name)
	bProtected := models.IsProtectedBranch(b.Status.Name)
	if aProtected != bProtected {
		if aProtected {
			return -1
		}
		return 1
	}

	moreBehindFirst := cmp.Compare(b.Status.BehindDevelop(), a.Status.BehindDevelop())

	if a.Health == nil || b.Health == nil {
		return moreBehindFirst
	}

	if c := cmp.Compare(a.Health.Level.rank(), b.Health.Level.rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Health.Score, b.Health.Score); c != 0 {
		return c
	}
	return moreBehindFirst
}
