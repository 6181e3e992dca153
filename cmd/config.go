package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/Johannes-Berggren/kiki/internal/config"
	"github.com/Johannes-Berggren/kiki/internal/git"
)

var flagConfigGlobal bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage kiki configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil {
			return errors.Newf("config file already exists: %s", path)
		}

		if err := config.Save(path, config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()
		return writeJSON(cmd.OutOrStdout(), s.cfg)
	},
}

func configPath() (string, error) {
	if flagConfigGlobal {
		return config.GlobalConfigPath()
	}

	dir := flagRepo
	if dir == "" {
		dir = "."
	}
	root, err := git.FindRepoRoot(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, config.RepoConfigFile), nil
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigGlobal, "global", false, "write the per-user file instead of the repository one")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
