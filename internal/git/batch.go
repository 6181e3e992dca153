package git

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

// PreviewDeleteMergedBranches partitions the branches merged into develop or
// main into deletable, protected and currently checked-out sets.
func PreviewDeleteMergedBranches(statuses []models.BranchStatus) models.BatchDeletePreview {
	preview := models.BatchDeletePreview{
		Deletable: []models.MergedBranchCandidate{},
		Protected: []models.MergedBranchCandidate{},
		Active:    []models.MergedBranchCandidate{},
	}

	for _, status := range statuses {
		if !status.Merged() {
			continue
		}

		candidate := models.MergedBranchCandidate{
			Name:              status.Name,
			MergedIntoDevelop: status.MergedIntoDevelop(),
			MergedIntoMain:    status.MergedIntoMain(),
			IsActive:          status.IsActive,
			IsProtected:       models.IsProtectedBranch(status.Name),
		}
		if status.Develop != nil {
			candidate.MergedAtDevelop = status.Develop.MergedAt
		}
		if status.Main != nil {
			candidate.MergedAtMain = status.Main.MergedAt
		}

		switch {
		case candidate.IsActive:
			candidate.Reason = models.ReasonActive
			preview.Active = append(preview.Active, candidate)
		case candidate.IsProtected:
			candidate.Reason = models.ReasonProtected
			preview.Protected = append(preview.Protected, candidate)
		default:
			preview.Deletable = append(preview.Deletable, candidate)
		}
	}

	preview.TotalMergedBranches = len(preview.Deletable) + len(preview.Protected) + len(preview.Active)
	return preview
}

// BatchDeleteBranches deletes each branch in turn. A failure is recorded with
// git's raw diagnostic and does not stop the remaining deletions.
func (r *Repo) BatchDeleteBranches(ctx context.Context, names []string, force bool) models.BatchDeleteResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := models.BatchDeleteResult{
		Succeeded: []string{},
		Failed:    []models.FailedDeletion{},
	}

	for _, name := range names {
		if err := r.deleteBranch(ctx, name, force); err != nil {
			r.log.Warn("Failed to delete branch", zap.String("branch", name), zap.Error(err))
			result.Failed = append(result.Failed, models.FailedDeletion{
				Name:  name,
				Error: diagnostic(err),
			})
			continue
		}
		r.log.Debug("Deleted branch", zap.String("branch", name))
		result.Succeeded = append(result.Succeeded, name)
	}

	return result
}

func diagnostic(err error) string {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Diagnostic()
	}
	return err.Error()
}
