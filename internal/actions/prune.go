package actions

import (
	"fmt"

	"stackit.dev/graft/internal/engine"
	"stackit.dev/graft/internal/runtime"
)

// PruneLocalOptions configures pruning of local branches.
type PruneLocalOptions struct {
	DryRun bool
}

// PruneLocal deletes local branches whose remote tracking ref has vanished,
// as reported by git after a pruning fetch.
func PruneLocal(ctx *runtime.Context, opts PruneLocalOptions) error {
	gw := ctx.Gateway
	gctx := ctx.Context

	if err := gw.Fetch(gctx, gw.Remote(gctx), true); err != nil {
		return err
	}

	gone, err := gw.BranchesWithGoneUpstream(gctx)
	if err != nil {
		return err
	}
	if len(gone) == 0 {
		ctx.Splog.Info("No local branches with gone upstreams.")
		return nil
	}

	current, err := gw.CurrentBranch(gctx)
	if err != nil {
		current = ""
	}

	for _, branch := range gone {
		if branch == current {
			ctx.Splog.Warn("skipping %s: currently checked out", branch)
			continue
		}
		if opts.DryRun {
			ctx.Splog.Info("Would delete %s", branch)
			continue
		}
		if err := gw.DeleteBranch(gctx, branch); err != nil {
			ctx.Splog.Error("failed to delete %s: %v", branch, err)
			continue
		}
		ctx.Splog.Info("Deleted %s", branch)
	}
	return nil
}

// PruneRemoteOptions configures pruning of obsolete remote branches.
type PruneRemoteOptions struct {
	Prefix string
	Target string
	DryRun bool
}

// PruneRemote deletes remote branches under prefix whose content has already
// landed in the remote target.
func PruneRemote(ctx *runtime.Context, opts PruneRemoteOptions) error {
	gw := ctx.Gateway
	gctx := ctx.Context

	target := opts.Target
	if target == "" {
		target = ctx.Config.GetTrunk()
	}

	remote := gw.Remote(gctx)
	if err := gw.Fetch(gctx, remote, true); err != nil {
		return err
	}

	remoteTarget := remote + "/" + target
	if !gw.RefExists(gctx, remoteTarget) {
		return fmt.Errorf("remote target %s does not exist", remoteTarget)
	}

	branches, err := gw.ListRemoteBranches(gctx, remote, opts.Prefix)
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		ctx.Splog.Info("No remote branches found under prefix %q.", opts.Prefix)
		return nil
	}

	q := engine.NewQueries(gw)
	oracle := engine.NewOracle(q, ctx.Config.GetScanWindow())

	var obsolete []string
	for _, branch := range branches {
		if branch == target {
			continue
		}
		merged, err := oracle.IsObsolete(gctx, remote+"/"+branch, remoteTarget)
		if err != nil {
			ctx.Splog.Error("failed to check %s: %v", branch, err)
			continue
		}
		if merged {
			obsolete = append(obsolete, branch)
		}
	}

	if len(obsolete) == 0 {
		ctx.Splog.Info("No obsolete remote branches under prefix %q.", opts.Prefix)
		return nil
	}

	if opts.DryRun {
		for _, branch := range obsolete {
			ctx.Splog.Info("Would delete %s/%s", remote, branch)
		}
		return nil
	}

	if err := gw.DeleteRemoteBranches(gctx, remote, obsolete); err != nil {
		return err
	}
	for _, branch := range obsolete {
		ctx.Splog.Info("Deleted %s/%s", remote, branch)
	}
	return nil
}
