package git

import (
	"bufio"
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

// LocalBranches returns the short names of all local branches, deduplicated
// and in the order git lists them.
func (r *Repo) LocalBranches(ctx context.Context) ([]string, error) {
	output, err := r.run(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list branches")
	}

	return parseBranchNames(output), nil
}

func parseBranchNames(output string) []string {
	var branches []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		branches = append(branches, name)
	}

	return branches
}

// CurrentBranch returns the checked-out branch, or "" on a detached HEAD.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	output, err := r.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", errors.Wrap(err, "failed to get current branch")
	}
	return output, nil
}
