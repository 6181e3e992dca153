package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/Johannes-Berggren/kiki/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "kiki",
	Short: "Branch health for Git repositories",
	Long: `kiki - inspects every local branch of a Git repository, scores its health
against the integration branches and forecasts rebase conflicts`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		p := tea.NewProgram(ui.NewModel(cmd.Context(), s.repo), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return errors.Wrap(err, "error running app")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&flagRepo, "repo", "C", "", "path inside the repository (default: working directory)")
	rootCmd.PersistentFlags().BoolVar(&flagNoFetch, "no-fetch", false, "skip fetching from the remote before analysis")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
