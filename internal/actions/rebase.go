package actions

import (
	"errors"

	"stackit.dev/graft/internal/engine"
	grafterrors "stackit.dev/graft/internal/errors"
	"stackit.dev/graft/internal/output"
	"stackit.dev/graft/internal/runtime"
)

// RebaseOptions configures the rebase action.
type RebaseOptions struct {
	Prefix string
	Target string
	Force  bool
}

// Rebase runs the prefix batch rebase and renders the outcome.
// Returns ErrRebaseConflict when any stack failed.
func Rebase(ctx *runtime.Context, opts RebaseOptions) error {
	target := opts.Target
	if target == "" {
		target = ctx.Config.GetTrunk()
	}

	eng := engine.New(ctx.Gateway, ctx.Splog, ctx.Config.GetScanWindow())
	result, err := eng.RebasePrefix(ctx.Context, opts.Prefix, target, ConfirmPrompt(ctx, opts.Force))
	if err != nil {
		return err
	}

	renderBatch(ctx, &result.Log)
	for _, deleted := range result.Deleted {
		ctx.Splog.Info("Deleted %s", deleted)
	}

	if result.Log.HasFailures() {
		return grafterrors.ErrRebaseConflict
	}
	return nil
}

// EvolveOptions configures the evolve action.
type EvolveOptions struct {
	OldHash string
	Force   bool
}

// Evolve replays stranded dependents after an in-place amend.
func Evolve(ctx *runtime.Context, opts EvolveOptions) error {
	eng := engine.New(ctx.Gateway, ctx.Splog, ctx.Config.GetScanWindow())
	result, err := eng.Evolve(ctx.Context, opts.OldHash, ConfirmPrompt(ctx, opts.Force))
	if err != nil {
		if errors.Is(err, grafterrors.ErrCancelled) {
			ctx.Splog.Info("Evolve cancelled.")
			return nil
		}
		return err
	}

	renderBatch(ctx, &result.Log)
	if result.Log.HasFailures() {
		return grafterrors.ErrRebaseConflict
	}
	return nil
}

func renderBatch(ctx *runtime.Context, log *engine.ResultLog) {
	splog := ctx.Splog
	if len(log.Updated) > 0 {
		splog.Newline()
		splog.Info("%s", output.ColorHeading("updated", "Updated:"))
		for _, tree := range log.Updated {
			splog.Page(tree.Render())
		}
	}
	if len(log.Skipped) > 0 {
		splog.Newline()
		splog.Info("%s", output.ColorHeading("skipped", "Skipped (fully merged):"))
		for _, tree := range log.Skipped {
			splog.Page(tree.Render())
		}
	}
	if len(log.Failed) > 0 {
		splog.Newline()
		splog.Info("%s", output.ColorHeading("failed", "Manual intervention required:"))
		for _, tree := range log.Failed {
			splog.Page(tree.Render())
		}
	}
}
