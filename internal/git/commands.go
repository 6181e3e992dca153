package git

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// The operations below mutate the checkout. Each holds the write lock so
// that none of them interleaves with a status or conflict analysis.

// Checkout switches the working copy to branch.
func (r *Repo) Checkout(ctx context.Context, branch string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.run(ctx, "checkout", branch); err != nil {
		return errors.Wrapf(err, "failed to switch to %s", branch)
	}
	return nil
}

// DeleteBranch deletes a local branch; force uses -D instead of -d.
func (r *Repo) DeleteBranch(ctx context.Context, branch string, force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.deleteBranch(ctx, branch, force)
}

func (r *Repo) deleteBranch(ctx context.Context, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := r.run(ctx, "branch", flag, branch)
	return err
}

// Rebase checks out branch and rebases it onto base.
func (r *Repo) Rebase(ctx context.Context, branch, base string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.run(ctx, "checkout", branch); err != nil {
		return errors.Wrapf(err, "failed to switch to %s", branch)
	}
	if _, err := r.run(ctx, "rebase", base); err != nil {
		return errors.Wrapf(err, "failed to rebase %s onto %s", branch, base)
	}
	return nil
}

// Push pushes branch, optionally setting its upstream on the configured remote.
func (r *Repo) Push(ctx context.Context, branch string, setUpstream bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	args := []string{"push"}
	if setUpstream {
		args = append(args, "--set-upstream", r.remote)
	}
	args = append(args, branch)
	if _, err := r.run(ctx, args...); err != nil {
		return errors.Wrapf(err, "failed to push %s", branch)
	}
	return nil
}

// Pull checks out branch and pulls from its upstream.
func (r *Repo) Pull(ctx context.Context, branch string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.run(ctx, "checkout", branch); err != nil {
		return errors.Wrapf(err, "failed to switch to %s", branch)
	}
	if _, err := r.run(ctx, "pull"); err != nil {
		return errors.Wrapf(err, "failed to pull %s", branch)
	}
	return nil
}

// Merge merges source into the currently checked-out branch.
func (r *Repo) Merge(ctx context.Context, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.run(ctx, "merge", source); err != nil {
		return errors.Wrapf(err, "failed to merge %s", source)
	}
	return nil
}

// MergeDevelop fetches, checks out branch unless it is current and merges
// <remote>/develop into it.
func (r *Repo) MergeDevelop(ctx context.Context, branch string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fetch {
		if _, err := r.run(ctx, "fetch", "--quiet"); err != nil {
			r.log.Warn("Failed to fetch from remote (continuing anyway)", zap.Error(err))
		}
	}

	develop := r.remoteRef(DevelopBranch)
	if !r.refExists(ctx, develop) {
		return errors.Newf("remote branch %s not found", develop)
	}

	current, err := r.CurrentBranch(ctx)
	if err != nil || current != branch {
		if _, err := r.run(ctx, "checkout", branch); err != nil {
			return errors.Wrapf(err, "failed to switch to %s", branch)
		}
	}

	if _, err := r.run(ctx, "merge", develop); err != nil {
		return errors.Wrapf(err, "failed to merge %s into %s", develop, branch)
	}
	return nil
}

// CreateBranch creates name from base and checks it out.
func (r *Repo) CreateBranch(ctx context.Context, name, base string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.run(ctx, "checkout", "-b", name, base); err != nil {
		return errors.Wrapf(err, "failed to create %s from %s", name, base)
	}
	return nil
}
