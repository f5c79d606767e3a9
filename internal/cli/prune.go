package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/graft/internal/actions"
	"stackit.dev/graft/internal/runtime"
)

// newPruneLocalCmd creates the prune-local command
func newPruneLocalCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune-local",
		Short: "Delete local branches whose upstream is gone",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := runtime.NewContext(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.PruneLocal(ctx, actions.PruneLocalOptions{DryRun: dryRun})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Only report what would be deleted")

	return cmd
}

// newPruneRemoteCmd creates the prune-remote command
func newPruneRemoteCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune-remote <prefix> [target]",
		Short: "Delete remote branches already landed in the remote target",
		Args:  cobra.RangeArgs(1, 2),
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

			return actions.PruneRemote(ctx, actions.PruneRemoteOptions{
				Prefix: args[0],
				Target: target,
				DryRun: dryRun,
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Only report what would be deleted")

	return cmd
}
