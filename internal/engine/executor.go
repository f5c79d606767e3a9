package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	grafterrors "stackit.dev/graft/internal/errors"
	"stackit.dev/graft/internal/git"
	"stackit.dev/graft/internal/output"
)

// ConfirmFunc asks the user a yes/no question. Implementations answer false
// when stdin is closed or the session is non-interactive, unless the caller
// waived confirmation up front (the --force flag), in which case they answer
// true.
type ConfirmFunc func(prompt string) bool

// Engine runs batch rebase operations over stacks of branches.
type Engine struct {
	gw     git.Gateway
	splog  *output.Splog
	window int
}

// New creates an engine. window bounds the obsolescence tree scan and the
// cut-point walk.
func New(gw git.Gateway, splog *output.Splog, window int) *Engine {
	return &Engine{gw: gw, splog: splog, window: window}
}

// BatchResult is the outcome of one RebasePrefix or Evolve invocation.
type BatchResult struct {
	Log     ResultLog
	Deleted []string
}

// RebasePrefix rebases every stack of branches under prefix onto target.
// Stacks whose content already landed in target are skipped and offered for
// deletion; conflicting stacks are aborted and reported; the rest of the
// batch continues. The starting branch is restored on every exit path.
func (e *Engine) RebasePrefix(ctx context.Context, prefix, target string, confirm ConfirmFunc) (*BatchResult, error) {
	if err := e.gw.CheckVersion(ctx); err != nil {
		return nil, err
	}

	startBranch, err := e.gw.CurrentBranch(ctx)
	if err != nil {
		return nil, grafterrors.NewPreconditionError("cannot determine the current branch", err)
	}

	if !e.gw.RefExists(ctx, target) {
		return nil, grafterrors.NewPreconditionError(fmt.Sprintf("target branch %s does not exist", target), grafterrors.ErrBranchNotFound)
	}

	result := &BatchResult{}
	defer e.restoreStartBranch(ctx, startBranch, target)

	if err := e.updateTarget(ctx, target); err != nil {
		return nil, err
	}

	// Discovery
	all, err := e.gw.ListBranches(ctx, prefix)
	if err != nil {
		return nil, err
	}
	all = remove(all, target)
	if len(all) == 0 {
		e.splog.Info("No branches found under prefix %q.", prefix)
		return result, nil
	}

	q := NewQueries(e.gw)
	oracle := NewOracle(q, e.window)

	// Snapshot before any mutation; all mid-batch ancestry reasoning uses
	// these hashes.
	initial, err := CaptureSnapshot(ctx, q, all)
	if err != nil {
		return nil, err
	}

	tips, err := FindTips(ctx, q, all)
	if err != nil {
		return nil, err
	}

	inSet := make(map[string]bool, len(all))
	for _, b := range all {
		inSet[b] = true
	}

	candidateDelete := make(map[string]bool)
	kept := make(map[string]bool)

	for _, tip := range tips {
		members, err := e.stackMembers(ctx, q, tip, prefix, inSet)
		if err != nil {
			result.Log.Record(StackFailed, output.StackTree{Tip: tip})
			e.splog.Error("failed to inspect stack %s: %v", tip, err)
			continue
		}
		tree := output.StackTree{Tip: tip, Members: members}

		obsolete, err := oracle.IsObsolete(ctx, tip, target)
		if err != nil {
			result.Log.Record(StackFailed, tree)
			e.splog.Error("failed to check %s against %s: %v", tip, target, err)
			kept[tip] = true
			for _, m := range members {
				kept[m] = true
			}
			continue
		}
		if obsolete {
			result.Log.Record(StackSkipped, tree)
			candidateDelete[tip] = true
			for _, m := range members {
				candidateDelete[m] = true
			}
			continue
		}

		kept[tip] = true
		for _, m := range members {
			kept[m] = true
		}

		outcome := e.rebaseTip(ctx, q, oracle, tip, target, all, initial, git.RebaseOptions{Upstream: target})
		result.Log.Record(outcome, tree)
		if outcome == StackFailed {
			// a failed stack keeps its branches; never delete them
			kept[tip] = true
		}
	}

	e.deleteMergedStacks(ctx, result, candidateDelete, kept, confirm)
	return result, nil
}

// rebaseTip picks the strategy for one tip and runs it. Priority is fixed:
// sync point, then cut point, then the plain fallback. A sync point must win
// over a cut point because a cut-point rebase against the bare target would
// replay the shared prefix that has already been re-anchored elsewhere.
func (e *Engine) rebaseTip(ctx context.Context, q *Queries, oracle *Oracle, tip, target string, all []string, initial RefSnapshot, plain git.RebaseOptions) StackOutcome {
	opts := plain

	sync, err := FindSyncPoint(ctx, q, tip, all, initial)
	if err != nil {
		e.splog.Error("sync-point search for %s failed: %v", tip, err)
		return StackFailed
	}
	if sync != nil {
		e.splog.Debug("rebasing %s onto moved ancestor %s", tip, sync.Branch)
		opts = git.RebaseOptions{Onto: sync.NewHash, Upstream: sync.OldHash}
	} else {
		cut, err := FindCutPoint(ctx, q, oracle, tip, target, e.window)
		if err != nil {
			e.splog.Error("cut-point search for %s failed: %v", tip, err)
			return StackFailed
		}
		if cut != "" {
			e.splog.Debug("rebasing %s past absorbed commit %s", tip, cut)
			opts = git.RebaseOptions{Onto: target, Upstream: cut}
		}
	}

	rr, err := e.gw.RebaseUpdateRefs(ctx, tip, opts)
	if err != nil {
		e.splog.Error("rebase of %s failed: %v", tip, err)
		e.abortIfInProgress(ctx)
		return StackFailed
	}
	if rr == git.RebaseConflict {
		e.splog.Warn("conflict while rebasing %s; aborting that stack", tip)
		e.abortIfInProgress(ctx)
		return StackFailed
	}
	return StackUpdated
}

// stackMembers lists the branches of tip's stack other than the tip itself,
// ordered nearest to the tip first.
func (e *Engine) stackMembers(ctx context.Context, q *Queries, tip, prefix string, inSet map[string]bool) ([]string, error) {
	merged, err := e.gw.BranchesMergedInto(ctx, tip, prefix)
	if err != nil {
		return nil, err
	}

	type memberDist struct {
		name string
		dist int
	}
	var members []memberDist
	for _, m := range merged {
		if m == tip || !inSet[m] {
			continue
		}
		dist, err := q.RevListCount(ctx, m, tip)
		if err != nil {
			return nil, err
		}
		members = append(members, memberDist{name: m, dist: dist})
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].dist != members[j].dist {
			return members[i].dist < members[j].dist
		}
		return members[i].name < members[j].name
	})

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.name
	}
	return names, nil
}

// deleteMergedStacks prompts for and performs deletion of fully merged
// branches. A branch that also appears in a kept or failed stack is a shared
// base and must survive.
func (e *Engine) deleteMergedStacks(ctx context.Context, result *BatchResult, candidates, kept map[string]bool, confirm ConfirmFunc) {
	var deletable []string
	for b := range candidates {
		if !kept[b] {
			deletable = append(deletable, b)
		}
	}
	if len(deletable) == 0 {
		return
	}
	sort.Strings(deletable)

	prompt := fmt.Sprintf("Delete %d fully merged branch(es)? (%s)", len(deletable), strings.Join(deletable, ", "))
	if confirm == nil || !confirm(prompt) {
		e.splog.Info("Keeping merged branches.")
		return
	}

	for _, b := range deletable {
		if err := e.gw.DeleteBranch(ctx, b); err != nil {
			e.splog.Error("failed to delete %s: %v", b, err)
			continue
		}
		result.Deleted = append(result.Deleted, b)
	}
}

// updateTarget checks out the target and pulls it when it tracks an upstream.
func (e *Engine) updateTarget(ctx context.Context, target string) error {
	if err := e.gw.Checkout(ctx, target); err != nil {
		return grafterrors.NewPreconditionError(fmt.Sprintf("cannot check out %s", target), err)
	}
	upstream, err := e.gw.Upstream(ctx, target)
	if err != nil || upstream == "" {
		return nil
	}
	if err := e.gw.PullRebase(ctx); err != nil {
		return grafterrors.NewPreconditionError(fmt.Sprintf("failed to update %s from %s", target, upstream), err)
	}
	return nil
}

// restoreStartBranch returns to where the batch started. If a cleanup step
// deleted the starting branch, fall back to the target and warn.
func (e *Engine) restoreStartBranch(ctx context.Context, startBranch, fallback string) {
	e.abortIfInProgress(ctx)
	target := startBranch
	if !e.gw.RefExists(ctx, startBranch) {
		e.splog.Warn("starting branch %s no longer exists; checking out %s", startBranch, fallback)
		target = fallback
	}
	if err := e.gw.Checkout(ctx, target); err != nil {
		e.splog.Error("failed to restore branch %s: %v", target, err)
	}
}

func (e *Engine) abortIfInProgress(ctx context.Context) {
	if e.gw.RebaseInProgress(ctx) {
		if err := e.gw.RebaseAbort(ctx); err != nil {
			e.splog.Error("failed to abort in-progress rebase: %v", err)
		}
	}
}

func remove(list []string, item string) []string {
	out := list[:0]
	for _, v := range list {
		if v != item {
			out = append(out, v)
		}
	}
	return out
}
