package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/Johannes-Berggren/kiki/internal/logging"
)

const (
	RepoConfigFile   = ".kiki.yaml"
	GlobalConfigDir  = ".kiki"
	GlobalConfigFile = "config.yaml"
)

var ErrInvalid = errors.New("invalid configuration")

var knownPlatforms = []string{"github", "gitlab"}

type Config struct {
	Remote   string       `yaml:"remote,omitempty" json:"remote"`
	Fetch    *bool        `yaml:"fetch,omitempty" json:"fetch"`
	Workers  int          `yaml:"workers,omitempty" json:"workers"`
	LogLevel string       `yaml:"logLevel,omitempty" json:"logLevel"`
	Review   ReviewConfig `yaml:"review,omitempty" json:"review"`
}

type ReviewConfig struct {
	Enabled   bool     `yaml:"enabled,omitempty" json:"enabled"`
	Platforms []string `yaml:"platforms,omitempty" json:"platforms"`
}

func DefaultConfig() *Config {
	fetch := true
	return &Config{
		Remote:   "origin",
		Fetch:    &fetch,
		Workers:  4,
		LogLevel: "warn",
		Review: ReviewConfig{
			Enabled:   false,
			Platforms: []string{"github", "gitlab"},
		},
	}
}

// FetchEnabled reports whether analysis should fetch first.
func (c *Config) FetchEnabled() bool {
	return c.Fetch == nil || *c.Fetch
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.Wrapf(ErrInvalid, "workers must be at least 1, got %d", c.Workers)
	}
	if c.Remote == "" {
		return errors.Wrap(ErrInvalid, "remote must not be empty")
	}
	if !logging.ValidLevel(c.LogLevel) {
		return errors.Wrapf(ErrInvalid, "unknown log level %q", c.LogLevel)
	}
	for _, p := range c.Review.Platforms {
		if !slices.Contains(knownPlatforms, p) {
			return errors.Wrapf(ErrInvalid, "unknown review platform %q", p)
		}
	}
	return nil
}

// Load returns the configuration for the repository at repoRoot. The
// repository file wins over the global one; with neither the defaults are
// used. Keys missing from a file keep their default values.
func Load(repoRoot string) (*Config, string, error) {
	paths := []string{filepath.Join(repoRoot, RepoConfigFile)}
	if global, err := GlobalConfigPath(); err == nil {
		paths = append(paths, global)
	}

	for _, path := range paths {
		cfg, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, path, err
		}
		return cfg, path, nil
	}

	return DefaultConfig(), "", nil
}

// LoadFile reads one YAML file overlaid on the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := ensureConfigDirExists(path); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}

	return os.WriteFile(path, data, 0644)
}

func GlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, GlobalConfigDir, GlobalConfigFile), nil
}

func ensureConfigDirExists(configPath string) error {
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create config directory %s", configDir)
	}

	return nil
}
