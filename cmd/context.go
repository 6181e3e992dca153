package cmd

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/Johannes-Berggren/kiki/internal/config"
	"github.com/Johannes-Berggren/kiki/internal/git"
	"github.com/Johannes-Berggren/kiki/internal/logging"
	"github.com/Johannes-Berggren/kiki/internal/review"
)

var (
	flagVerbose bool
	flagNoFetch bool
	flagRepo    string
)

// session is the wiring shared by every command.
type session struct {
	root string
	cfg  *config.Config
	log  *zap.Logger
	repo *git.Repo
}

func openSession() (*session, error) {
	dir := flagRepo
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to determine working directory")
		}
		dir = wd
	}

	root, err := git.FindRepoRoot(dir)
	if err != nil {
		return nil, err
	}

	cfg, _, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	level, err := resolveLogLevel(cfg.LogLevel, os.Getenv("LOG_LEVEL"), flagVerbose)
	if err != nil {
		return nil, err
	}
	log := logging.New(level, os.Stderr)

	opts := []git.Option{
		git.WithLogger(log),
		git.WithRemote(cfg.Remote),
		git.WithFetch(cfg.FetchEnabled() && !flagNoFetch),
		git.WithWorkers(cfg.Workers),
	}

	if cfg.Review.Enabled {
		chain, err := review.ForPlatforms(log, root, cfg.Review.Platforms)
		if err != nil {
			return nil, err
		}
		if chain.Len() > 0 {
			opts = append(opts, git.WithReviewResolver(chain))
		}
	}

	return &session{
		root: root,
		cfg:  cfg,
		log:  log,
		repo: git.NewRepo(root, opts...),
	}, nil
}

func (s *session) close() {
	_ = s.log.Sync()
}

// resolveLogLevel applies LOG_LEVEL and --verbose over the configured level.
func resolveLogLevel(configured, env string, verbose bool) (string, error) {
	if verbose {
		return "debug", nil
	}
	if env == "" {
		return configured, nil
	}
	if !logging.ValidLevel(env) {
		return "", errors.Wrapf(config.ErrInvalid, "unknown log level %q in LOG_LEVEL", env)
	}
	return env, nil
}
