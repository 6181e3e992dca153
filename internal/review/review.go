// Package review resolves the review request (pull/merge request) attached
// to a branch on an external code-review platform.
package review

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

// Resolver looks up the review request for one branch. A nil request with a
// nil error means the branch has none on this platform.
type Resolver interface {
	ResolveReviewRequest(ctx context.Context, branch string) (*models.PullRequest, error)
}

// Chain queries resolvers in priority order and returns the first request
// found. A failing resolver is logged and skipped.
type Chain struct {
	resolvers []Resolver
	log       *zap.Logger
}

func NewChain(log *zap.Logger, resolvers ...Resolver) *Chain {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chain{resolvers: resolvers, log: log}
}

func (c *Chain) ResolveReviewRequest(ctx context.Context, branch string) (*models.PullRequest, error) {
	for _, r := range c.resolvers {
		pr, err := r.ResolveReviewRequest(ctx, branch)
		if err != nil {
			c.log.Debug("Review lookup failed", zap.String("branch", branch), zap.Error(err))
			continue
		}
		if pr != nil {
			return pr, nil
		}
	}
	return nil, nil
}

func (c *Chain) Len() int {
	return len(c.resolvers)
}

var ErrUnknownPlatform = errors.New("unknown review platform")

// ForPlatforms builds a chain from platform names in priority order.
func ForPlatforms(log *zap.Logger, repoDir string, platforms []string) (*Chain, error) {
	var resolvers []Resolver
	for _, p := range platforms {
		switch models.Platform(strings.ToLower(strings.TrimSpace(p))) {
		case models.PlatformGitHub:
			resolvers = append(resolvers, NewGitHubCLI(repoDir))
		case models.PlatformGitLab:
			resolvers = append(resolvers, NewGitLabCLI(repoDir))
		default:
			return nil, errors.Wrapf(ErrUnknownPlatform, "%q", p)
		}
	}
	return NewChain(log, resolvers...), nil
}

// runCommand executes a platform CLI in dir and returns its stdout.
var runCommand = func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, errors.Wrapf(err, "%s not installed", name)
	}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrapf(err, "%s: %s", name, msg)
		}
		return nil, errors.Wrap(err, name)
	}
	return out, nil
}
