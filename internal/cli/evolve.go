package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/graft/internal/actions"
	"stackit.dev/graft/internal/runtime"
)

// newEvolveCmd creates the evolve command
func newEvolveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "evolve [old-hash]",
		Short: "Replay dependent branches after an in-place amend",
		Long: `After amending or resetting the current branch, branches that were
stacked on top of it are left behind on the old commit. Evolve finds them
and replays them onto the amended head. The pre-amend commit is taken from
[old-hash], or from the reflog when omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.NewContext(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			oldHash := ""
			if len(args) > 0 {
				oldHash = args[0]
			}

			return actions.Evolve(ctx, actions.EvolveOptions{
				OldHash: oldHash,
				Force:   force,
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Don't prompt for confirmation before rebasing")

	return cmd
}
