package git

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// FallbackBaseBranch is returned when no candidate resolves. It may not exist.
const FallbackBaseBranch = "main"

var baseCandidates = []string{"main", "develop", "master"}

// BaseBranch resolves the canonical integration branch. It never fails:
// the remote's symbolic HEAD wins, then remote candidates, then local
// candidates, then FallbackBaseBranch.
func (r *Repo) BaseBranch(ctx context.Context) string {
	if base, ok := r.symbolicBase(ctx); ok {
		return base
	}

	for _, name := range baseCandidates {
		if ref := r.remoteRef(name); r.refExists(ctx, ref) {
			return ref
		}
	}

	for _, name := range baseCandidates {
		if r.refExists(ctx, name) {
			return name
		}
	}

	r.log.Warn("No base branch found, defaulting",
		zap.String("fallback", FallbackBaseBranch),
		zap.String("dir", r.dir))
	return FallbackBaseBranch
}

// symbolicBase reads refs/remotes/<remote>/HEAD, e.g. "origin/main".
func (r *Repo) symbolicBase(ctx context.Context) (string, bool) {
	out, err := r.run(ctx, "symbolic-ref", "refs/remotes/"+r.remote+"/HEAD")
	if err != nil {
		return "", false
	}
	name := strings.TrimPrefix(out, "refs/remotes/")
	if !strings.HasPrefix(name, r.remote+"/") {
		return "", false
	}
	return name, true
}
