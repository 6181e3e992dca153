package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/Johannes-Berggren/kiki/internal/git"
	"github.com/Johannes-Berggren/kiki/internal/models"
)

var (
	flagPruneYes   bool
	flagPruneForce bool
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete local branches merged into develop or main",
	Long: `prune lists the local branches already merged into develop or main.
The checked-out branch and protected branches are never deleted. Nothing is
removed unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		statuses, err := s.repo.BranchStatuses(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to analyze branches")
		}

		preview := git.PreviewDeleteMergedBranches(statuses)
		printPrunePreview(out, preview, time.Now())

		if len(preview.Deletable) == 0 || !flagPruneYes {
			if len(preview.Deletable) > 0 {
				fmt.Fprintln(out, "\nRun again with --yes to delete them.")
			}
			return nil
		}

		result := s.repo.BatchDeleteBranches(ctx, preview.DeletableNames(), flagPruneForce)
		printPruneResult(out, result)
		if len(result.Failed) > 0 {
			return errors.Newf("%d of %d branches could not be deleted",
				len(result.Failed), len(result.Failed)+len(result.Succeeded))
		}
		return nil
	},
}

func printPrunePreview(out io.Writer, p models.BatchDeletePreview, now time.Time) {
	fmt.Fprintf(out, "%d merged branch(es)\n", p.TotalMergedBranches)

	section := func(title string, items []models.MergedBranchCandidate) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(out, "\n%s:\n", title)
		for _, c := range items {
			line := "  • " + c.Describe(now)
			if c.Reason != "" {
				line += " (" + c.Reason + ")"
			}
			fmt.Fprintln(out, line)
		}
	}

	section("Deletable", p.Deletable)
	section("Kept", append(append([]models.MergedBranchCandidate{}, p.Active...), p.Protected...))
}

func printPruneResult(out io.Writer, r models.BatchDeleteResult) {
	for _, name := range r.Succeeded {
		fmt.Fprintf(out, "✔ deleted %s\n", name)
	}
	for _, f := range r.Failed {
		fmt.Fprintf(out, "✖ %s: %s\n", f.Name, simplifyDeleteError(f.Error))
	}
}

// simplifyDeleteError turns the common git branch -d refusals into hints.
func simplifyDeleteError(msg string) string {
	switch {
	case strings.Contains(msg, "not fully merged"):
		return "branch is not fully merged (use --force to delete anyway)"
	case strings.Contains(msg, "checked out at"):
		return "branch is checked out in another worktree"
	default:
		return msg
	}
}

func init() {
	pruneCmd.Flags().BoolVarP(&flagPruneYes, "yes", "y", false, "delete the listed branches")
	pruneCmd.Flags().BoolVarP(&flagPruneForce, "force", "f", false, "delete with -D even when not fully merged")
	rootCmd.AddCommand(pruneCmd)
}
