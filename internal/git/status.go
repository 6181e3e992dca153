package git

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

// Integration branches compared against in addition to the base.
const (
	DevelopBranch = "develop"
	MainBranch    = "main"
)

type statusTargets struct {
	base    string
	develop string // empty when <remote>/develop does not resolve
	main    string
	current string
}

// BranchStatuses computes the status of every local branch. A branch whose
// queries fail is logged and left out; it never aborts the others. The
// result keeps the enumeration order.
func (r *Repo) BranchStatuses(ctx context.Context) ([]models.BranchStatus, error) {
	report, err := r.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	return report.Branches, nil
}

// Analyze is BranchStatuses plus the base branch the counts were taken
// against, resolved once for the whole pass.
func (r *Repo) Analyze(ctx context.Context) (*models.BranchReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.fetch {
		if _, err := r.run(ctx, "fetch", "--quiet"); err != nil {
			r.log.Warn("Failed to fetch from remote (continuing anyway)", zap.Error(err))
		}
	}

	branches, err := r.LocalBranches(ctx)
	if err != nil {
		return nil, err
	}

	targets := r.resolveTargets(ctx)

	results := make([]*models.BranchStatus, len(branches))
	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, branch := range branches {
		g.Go(func() error {
			status, err := r.branchStatus(ctx, branch, targets)
			if err != nil {
				r.log.Warn("Skipping branch", zap.String("branch", branch), zap.Error(err))
				return nil
			}
			status.PR = r.resolveReview(ctx, branch)
			results[i] = status
			return nil
		})
	}
	_ = g.Wait()

	statuses := make([]models.BranchStatus, 0, len(results))
	for _, st := range results {
		if st != nil {
			statuses = append(statuses, *st)
		}
	}
	return &models.BranchReport{Base: targets.base, Branches: statuses}, nil
}

func (r *Repo) resolveTargets(ctx context.Context) statusTargets {
	t := statusTargets{base: r.BaseBranch(ctx)}

	if ref := r.remoteRef(DevelopBranch); r.refExists(ctx, ref) {
		t.develop = ref
	}
	if ref := r.remoteRef(MainBranch); r.refExists(ctx, ref) {
		t.main = ref
	}

	current, err := r.CurrentBranch(ctx)
	if err != nil {
		r.log.Warn("Failed to get current branch", zap.Error(err))
	}
	t.current = current

	return t
}

func (r *Repo) branchStatus(ctx context.Context, branch string, t statusTargets) (*models.BranchStatus, error) {
	ahead, behind, err := r.divergence(ctx, t.base, branch)
	if err != nil {
		return nil, err
	}

	status := &models.BranchStatus{
		Name:        branch,
		Ahead:       ahead,
		Behind:      behind,
		NeedsRebase: ahead > 0 && behind > 0,
		IsActive:    t.current != "" && branch == t.current,
	}

	if t.develop != "" {
		if status.Develop, err = r.compare(ctx, branch, t.develop); err != nil {
			return nil, err
		}
	}
	if t.main != "" {
		if status.Main, err = r.compare(ctx, branch, t.main); err != nil {
			return nil, err
		}
	}

	return status, nil
}

// compare computes branch's position relative to target, including the
// merge-ancestry test and, when merged, the merge time.
func (r *Repo) compare(ctx context.Context, branch, target string) (*models.Comparison, error) {
	ahead, behind, err := r.divergence(ctx, target, branch)
	if err != nil {
		return nil, err
	}

	cmp := &models.Comparison{
		Ref:    target,
		Ahead:  ahead,
		Behind: behind,
		Merged: r.IsMergedInto(ctx, branch, target),
	}
	if cmp.Merged {
		cmp.MergedAt = r.MergedAt(ctx, branch, target)
	}
	return cmp, nil
}

// divergence returns how many commits branch has that ref lacks (ahead) and
// vice versa (behind).
func (r *Repo) divergence(ctx context.Context, ref, branch string) (ahead, behind int, err error) {
	output, err := r.run(ctx, "rev-list", "--left-right", "--count", ref+"..."+branch)
	if err != nil {
		return 0, 0, err
	}
	return parseCounts(output)
}

// parseCounts parses "<behind>\t<ahead>" as printed by
// rev-list --left-right --count <ref>...<branch>.
func parseCounts(output string) (ahead, behind int, err error) {
	parts := strings.Fields(output)
	if len(parts) != 2 {
		return 0, 0, errors.Newf("unexpected rev-list output %q", output)
	}

	behind, err = strconv.Atoi(parts[0])
	if err != nil || behind < 0 {
		return 0, 0, errors.Newf("invalid behind count %q", parts[0])
	}
	ahead, err = strconv.Atoi(parts[1])
	if err != nil || ahead < 0 {
		return 0, 0, errors.Newf("invalid ahead count %q", parts[1])
	}

	return ahead, behind, nil
}

// IsMergedInto reports whether every commit of branch is reachable from target.
func (r *Repo) IsMergedInto(ctx context.Context, branch, target string) bool {
	_, err := r.run(ctx, "merge-base", "--is-ancestor", branch, target)
	return err == nil
}

func (r *Repo) resolveReview(ctx context.Context, branch string) *models.PullRequest {
	if r.reviews == nil {
		return nil
	}
	pr, err := r.reviews.ResolveReviewRequest(ctx, branch)
	if err != nil {
		r.log.Warn("Review request lookup failed", zap.String("branch", branch), zap.Error(err))
		return nil
	}
	return pr
}
