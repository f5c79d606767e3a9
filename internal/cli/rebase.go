package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/graft/internal/actions"
	"stackit.dev/graft/internal/runtime"
)

// newRebaseCmd creates the rebase command
func newRebaseCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rebase <prefix> [target]",
		Short: "Rebase all stacks under a branch prefix onto a target",
		Long: `Rebase every stack of branches whose names start with <prefix> onto
[target] (default: the configured trunk). Stacks that have fully landed in
the target are skipped and offered for deletion; conflicting stacks are
aborted and reported while the rest of the batch continues.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.NewContext(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			target := ""
			if len(args) > 1 {
				target = args[1]
			}

			return actions.Rebase(ctx, actions.RebaseOptions{
				Prefix: args[0],
				Target: target,
				Force:  force,
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Don't prompt for confirmation before deleting merged branches")

	return cmd
}
