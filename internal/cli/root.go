// Package cli wires the cobra command tree for the graft binary.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "graft",
		Short: "Graft keeps stacked branches rebased onto a moving trunk",
		Long: `Graft maintains stacked diffs: chains and trees of dependent branches
layered on top of a shared trunk. It detects branches whose content has
already landed upstream (merge, squash merge, cherry-pick, revert-then-
reapply), finds the boundary where unique work begins, and replays each
stack onto the new trunk exactly once - including forking stacks that
share a prefix.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newRebaseCmd())
	rootCmd.AddCommand(newEvolveCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newPruneLocalCmd())
	rootCmd.AddCommand(newPruneRemoteCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "graft %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
