package git

import (
	"bufio"
	"context"
	"strings"
	"time"
)

// MergedAt returns the commit time of the first commit on target's ancestry
// path from branch, i.e. where branch's history landed on target. It returns
// nil when this cannot be determined.
//
// Squash and octopus merges are not modelled; the result is best-effort for
// non-linear histories.
func (r *Repo) MergedAt(ctx context.Context, branch, target string) *time.Time {
	output, err := r.run(ctx, "log", "--format=%cI", "--reverse", "--ancestry-path", branch+".."+target)
	if err != nil {
		return nil
	}
	return firstCommitTime(output)
}

// firstCommitTime parses the first line of a %cI (strict ISO 8601) log.
func firstCommitTime(output string) *time.Time {
	scanner := bufio.NewScanner(strings.NewReader(output))
	if !scanner.Scan() {
		return nil
	}

	line := strings.TrimSpace(scanner.Text())
	if line == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, line)
	if err != nil {
		return nil
	}
	return &t
}
