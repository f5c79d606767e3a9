package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/graft/internal/actions"
	"stackit.dev/graft/internal/runtime"
)

// newPushCmd creates the push command
func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <prefix> [-- <push-option>...]",
		Short: "Push all branches under a prefix",
		Long: `Push every local branch whose name starts with <prefix>. Branches whose
tip matches the cached remote-tracking ref are skipped. Arguments after --
are passed to git push verbatim (e.g. --force-with-lease).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.NewContext(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.Push(ctx, actions.PushOptions{
				Prefix:   args[0],
				PushOpts: args[1:],
			})
		},
	}

	return cmd
}
