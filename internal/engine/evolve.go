package engine

import (
	"context"
	"fmt"

	grafterrors "stackit.dev/graft/internal/errors"
	"stackit.dev/graft/internal/git"
	"stackit.dev/graft/internal/output"
)

// EvolvePlan describes what Evolve is about to do, rendered for the user
// before the confirmation prompt.
type EvolvePlan struct {
	OldHash string
	NewHash string
	Tips    []string
	Trees   []output.StackTree
}

// Evolve rescues branches stranded by an in-place amend of the current
// branch: every branch that still descends from the pre-amend commit is
// replayed onto the amended head. oldHash may be empty, in which case the
// previous head position is taken from the reflog.
func (e *Engine) Evolve(ctx context.Context, oldHash string, confirm ConfirmFunc) (*BatchResult, error) {
	if err := e.gw.CheckVersion(ctx); err != nil {
		return nil, err
	}

	startBranch, err := e.gw.CurrentBranch(ctx)
	if err != nil {
		return nil, grafterrors.NewPreconditionError("cannot determine the current branch", err)
	}

	newHash, err := e.gw.Resolve(ctx, "HEAD")
	if err != nil {
		return nil, grafterrors.NewPreconditionError("cannot resolve HEAD", err)
	}

	if oldHash == "" {
		oldHash, err = e.gw.PreviousHead(ctx)
		if err != nil {
			return nil, grafterrors.NewPreconditionError("cannot determine the pre-amend commit", err)
		}
	}
	oldHash, err = e.gw.Resolve(ctx, oldHash)
	if err != nil {
		return nil, grafterrors.NewPreconditionError("cannot resolve the pre-amend commit", err)
	}

	result := &BatchResult{}

	q := NewQueries(e.gw)
	oracle := NewOracle(q, e.window)

	candidates, err := e.evolveCandidates(ctx, q, startBranch, oldHash, newHash)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		e.splog.Info("Nothing to evolve.")
		return result, nil
	}

	initial, err := CaptureSnapshot(ctx, q, candidates)
	if err != nil {
		return nil, err
	}

	tips, err := FindTips(ctx, q, candidates)
	if err != nil {
		return nil, err
	}

	plan, err := e.buildEvolvePlan(ctx, q, oldHash, newHash, tips, candidates)
	if err != nil {
		return nil, err
	}
	e.renderEvolvePlan(plan)

	if confirm == nil || !confirm(fmt.Sprintf("Rebase %d stack(s) onto the amended %s?", len(tips), startBranch)) {
		return nil, grafterrors.ErrCancelled
	}

	defer e.restoreStartBranch(ctx, startBranch, startBranch)

	for i, tip := range tips {
		// plain fallback replays the range (old, tip] onto the amended head
		outcome := e.rebaseTip(ctx, q, oracle, tip, newHash, candidates, initial,
			git.RebaseOptions{Onto: newHash, Upstream: oldHash})
		result.Log.Record(outcome, plan.Trees[i])
	}

	return result, nil
}

// evolveCandidates lists the branches stranded on the pre-amend commit:
// those containing oldHash, except the current branch and anything already
// descending from the new head.
func (e *Engine) evolveCandidates(ctx context.Context, q *Queries, current, oldHash, newHash string) ([]string, error) {
	containing, err := e.gw.BranchesContaining(ctx, oldHash)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, branch := range containing {
		if branch == current {
			continue
		}
		descends, err := q.IsAncestor(ctx, newHash, branch)
		if err != nil {
			return nil, err
		}
		if descends {
			continue
		}
		candidates = append(candidates, branch)
	}
	return candidates, nil
}

func (e *Engine) buildEvolvePlan(ctx context.Context, q *Queries, oldHash, newHash string, tips, candidates []string) (*EvolvePlan, error) {
	inSet := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		inSet[c] = true
	}

	plan := &EvolvePlan{OldHash: oldHash, NewHash: newHash, Tips: tips}
	for _, tip := range tips {
		members, err := e.stackMembers(ctx, q, tip, "", inSet)
		if err != nil {
			return nil, err
		}
		plan.Trees = append(plan.Trees, output.StackTree{Tip: tip, Members: members})
	}
	return plan, nil
}

func (e *Engine) renderEvolvePlan(plan *EvolvePlan) {
	e.splog.Info("Branches to evolve onto %s:", abbrev(plan.NewHash))
	for _, tree := range plan.Trees {
		e.splog.Page(tree.Render())
	}
}

func abbrev(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
