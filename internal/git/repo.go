package git

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	"go.uber.org/zap"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

var ErrNotRepository = errors.New("not a git repository")

const DefaultRemote = "origin"

// FindRepoRoot returns the top-level directory of the working copy that
// contains dir.
func FindRepoRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", dir)
	}
	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true, EnableDotGitCommonDir: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", errors.Wrapf(ErrNotRepository, "%s", abs)
		}
		return "", errors.Wrapf(err, "open repository at %s", abs)
	}
	wt, err := repo.Worktree()
	if err != nil {
		// bare repositories have no checkout to analyze
		return "", errors.Wrapf(ErrNotRepository, "%s: %v", abs, err)
	}
	return wt.Filesystem.Root(), nil
}

// Repo is the analysis engine bound to one working copy. It holds no
// analysis state; every call recomputes from the current VCS state.
type Repo struct {
	dir     string
	runner  Runner
	log     *zap.Logger
	remote  string
	fetch   bool
	workers int

	reviews ReviewResolver

	// mu serializes checkout mutations against analysis of the same working copy.
	mu sync.RWMutex
}

// ReviewResolver looks up the review request for a branch. A nil result
// with a nil error means the branch has none.
type ReviewResolver interface {
	ResolveReviewRequest(ctx context.Context, branch string) (*models.PullRequest, error)
}

type Option func(*Repo)

func WithRunner(r Runner) Option {
	return func(repo *Repo) { repo.runner = r }
}

func WithLogger(log *zap.Logger) Option {
	return func(repo *Repo) {
		if log != nil {
			repo.log = log
		}
	}
}

// WithRemote sets the remote namespace used for base, develop and main refs.
func WithRemote(remote string) Option {
	return func(repo *Repo) {
		if remote != "" {
			repo.remote = remote
		}
	}
}

// WithFetch toggles the best-effort fetch that precedes status analysis.
func WithFetch(enabled bool) Option {
	return func(repo *Repo) { repo.fetch = enabled }
}

// WithWorkers bounds how many branches are analyzed concurrently.
func WithWorkers(n int) Option {
	return func(repo *Repo) {
		if n > 0 {
			repo.workers = n
		}
	}
}

func WithReviewResolver(r ReviewResolver) Option {
	return func(repo *Repo) { repo.reviews = r }
}

func NewRepo(dir string, opts ...Option) *Repo {
	repo := &Repo{
		dir:     dir,
		runner:  ExecRunner{},
		log:     zap.NewNop(),
		remote:  DefaultRemote,
		fetch:   true,
		workers: 1,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

func (r *Repo) Dir() string {
	return r.dir
}

func (r *Repo) Remote() string {
	return r.remote
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	return r.runner.Run(ctx, r.dir, args...)
}

// refExists reports whether git can resolve ref to a concrete revision.
func (r *Repo) refExists(ctx context.Context, ref string) bool {
	_, err := r.run(ctx, "rev-parse", "--verify", ref)
	return err == nil
}

func (r *Repo) remoteRef(name string) string {
	return r.remote + "/" + name
}
