package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Johannes-Berggren/kiki/internal/models"
)

var flagPreviewBase string

var previewCmd = &cobra.Command{
	Use:   "preview <branch>",
	Short: "Forecast the conflicts of rebasing a branch onto the base",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		ctx := cmd.Context()
		branch := args[0]
		base := flagPreviewBase
		if base == "" {
			base = s.repo.BaseBranch(ctx)
		}

		preview := s.repo.PreviewRebaseConflicts(ctx, branch, base)
		forcePush := s.repo.WouldRequireForcePush(ctx, branch)

		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), struct {
				Branch    string                 `json:"branch"`
				Base      string                 `json:"base"`
				Preview   models.ConflictPreview `json:"preview"`
				ForcePush bool                   `json:"forcePush"`
			}{branch, base, preview, forcePush})
		}

		printPreview(cmd.OutOrStdout(), branch, base, preview, forcePush)
		return nil
	},
}

func printPreview(out io.Writer, branch, base string, p models.ConflictPreview, forcePush bool) {
	fmt.Fprintf(out, "Rebase %s onto %s: %s\n", branch, base, p.Summary)
	for _, f := range p.ConflictedFiles {
		fmt.Fprintf(out, "  • %s\n", f)
	}
	if forcePush {
		fmt.Fprintln(out, "This will require a force push to update the remote branch.")
	}
}

func init() {
	previewCmd.Flags().StringVar(&flagPreviewBase, "base", "", "branch to rebase onto (default: detected base branch)")
	previewCmd.Flags().BoolVar(&flagJSON, "json", false, "print the forecast as JSON")
	rootCmd.AddCommand(previewCmd)
}
