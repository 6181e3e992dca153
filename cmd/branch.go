package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/Johannes-Berggren/kiki/internal/git"
)

var (
	flagRebaseOnto   string
	flagRebaseAnyway bool
	flagSetUpstream  bool
	flagCreateFrom   string
	flagDeleteForce  bool
	flagMergeDevelop bool
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <branch>",
	Short: "Switch to a branch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(s *session) error {
			if err := s.repo.Checkout(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s\n", args[0])
			return nil
		})
	},
}

var rebaseCmd = &cobra.Command{
	Use:   "rebase <branch>",
	Short: "Rebase a branch onto the base after forecasting conflicts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(s *session) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			branch := args[0]

			base := flagRebaseOnto
			if base == "" {
				base = s.repo.BaseBranch(ctx)
			}

			preview := s.repo.PreviewRebaseConflicts(ctx, branch, base)
			forcePush := s.repo.WouldRequireForcePush(ctx, branch)
			printPreview(out, branch, base, preview, forcePush)

			if preview.HasConflicts && !flagRebaseAnyway {
				return errors.Newf("rebase of %s onto %s would conflict; use --anyway to proceed", branch, base)
			}

			if err := s.repo.Rebase(ctx, branch, base); err != nil {
				return err
			}
			fmt.Fprintf(out, "Rebased %s onto %s\n", branch, base)
			return nil
		})
	},
}

var pushCmd = &cobra.Command{
	Use:   "push <branch>",
	Short: "Push a branch to the remote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(s *session) error {
			if err := s.repo.Push(cmd.Context(), args[0], flagSetUpstream); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s to %s\n", args[0], s.repo.Remote())
			return nil
		})
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull <branch>",
	Short: "Check out a branch and pull it from its upstream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(s *session) error {
			if err := s.repo.Pull(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pulled %s\n", args[0])
			return nil
		})
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch into the current branch",
	Long: `Merge a branch into the current branch.

With --develop the argument is the target instead: it is checked out and
<remote>/develop is merged into it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(s *session) error {
			out := cmd.OutOrStdout()
			if flagMergeDevelop {
				if err := s.repo.MergeDevelop(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Merged %s/%s into %s\n", s.repo.Remote(), git.DevelopBranch, args[0])
				return nil
			}

			if err := s.repo.Merge(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Merged %s\n", args[0])
			return nil
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a branch from the base and switch to it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(s *session) error {
			ctx := cmd.Context()
			from := flagCreateFrom
			if from == "" {
				from = s.repo.BaseBranch(ctx)
			}
			if err := s.repo.CreateBranch(ctx, args[0], from); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s from %s\n", args[0], from)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <branch>",
	Short: "Delete a local branch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(s *session) error {
			err := s.repo.DeleteBranch(cmd.Context(), args[0], flagDeleteForce)
			var cmdErr *git.CommandError
			if errors.As(err, &cmdErr) {
				return errors.Newf("cannot delete %s: %s", args[0], simplifyDeleteError(cmdErr.Diagnostic()))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		})
	},
}

func withRepo(fn func(s *session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}

func init() {
	rebaseCmd.Flags().StringVar(&flagRebaseOnto, "onto", "", "branch to rebase onto (default: detected base branch)")
	rebaseCmd.Flags().BoolVar(&flagRebaseAnyway, "anyway", false, "rebase even when conflicts are predicted")
	pushCmd.Flags().BoolVarP(&flagSetUpstream, "set-upstream", "u", false, "set the remote branch as upstream")
	createCmd.Flags().StringVar(&flagCreateFrom, "from", "", "start point (default: detected base branch)")
	mergeCmd.Flags().BoolVar(&flagMergeDevelop, "develop", false, "merge the remote develop branch into <branch>")
	deleteCmd.Flags().BoolVarP(&flagDeleteForce, "force", "f", false, "delete even when not fully merged")

	rootCmd.AddCommand(checkoutCmd, rebaseCmd, pushCmd, pullCmd, mergeCmd, createCmd, deleteCmd)
}
