package actions

import (
	"fmt"

	"stackit.dev/graft/internal/runtime"
)

// PushOptions configures the batch push action.
type PushOptions struct {
	Prefix   string
	PushOpts []string
}

// Push pushes every local branch under prefix whose tip differs from its
// cached remote-tracking ref. Up-to-date branches are skipped without
// contacting the remote.
func Push(ctx *runtime.Context, opts PushOptions) error {
	gw := ctx.Gateway
	gctx := ctx.Context

	branches, err := gw.ListBranches(gctx, opts.Prefix)
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		ctx.Splog.Info("No branches found under prefix %q.", opts.Prefix)
		return nil
	}

	remote := gw.Remote(gctx)

	var toPush []string
	for _, branch := range branches {
		local, err := gw.Resolve(gctx, branch)
		if err != nil {
			return err
		}
		if gw.RemoteTrackingRef(gctx, remote, branch) == local {
			ctx.Splog.Debug("%s is up to date on %s", branch, remote)
			continue
		}
		toPush = append(toPush, branch)
	}

	if len(toPush) == 0 {
		ctx.Splog.Info("All %d branch(es) already up to date on %s.", len(branches), remote)
		return nil
	}

	ctx.Splog.Info("Pushing %d branch(es) to %s...", len(toPush), remote)
	if err := gw.Push(gctx, remote, toPush, opts.PushOpts); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	for _, branch := range toPush {
		ctx.Splog.Info("Pushed %s", branch)
	}
	return nil
}
