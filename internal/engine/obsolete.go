package engine

import (
	"context"
	"fmt"
)

// Oracle decides whether a commit's content has already landed in a target
// by any means: rebase, merge, squash merge, cherry-pick, or a revert that
// was later reapplied.
type Oracle struct {
	q      *Queries
	window int

	// trees of the last window commits of each target, fetched lazily
	targetTrees map[string]map[string]bool
}

// NewOracle creates an obsolescence oracle. window bounds the historical
// tree scan.
func NewOracle(q *Queries, window int) *Oracle {
	return &Oracle{
		q:           q,
		window:      window,
		targetTrees: make(map[string]map[string]bool),
	}
}

// IsObsolete reports whether applying commit on top of target would introduce
// no content that is not already in target's history.
//
// Three checks, cheapest first; the first positive answer wins:
//  1. patch-id equivalence: every commit of the range has an equivalent in
//     target (classical rebase or merge)
//  2. merge-tree equality: merging commit into target reproduces target's
//     tree exactly (squash merge)
//  3. historical tree match: commit's tree equals the tree of one of the
//     last N commits of target (revert-then-reapply, tree-preserving squash)
func (o *Oracle) IsObsolete(ctx context.Context, commit, target string) (bool, error) {
	entries, err := o.q.gw.Cherry(ctx, target, commit)
	if err != nil {
		return false, fmt.Errorf("cherry %s %s: %w", target, commit, err)
	}
	allEquivalent := true
	for _, entry := range entries {
		if !entry.Equivalent {
			allEquivalent = false
			break
		}
	}
	if allEquivalent {
		return true, nil
	}

	mergedTree, clean, err := o.q.gw.MergeTree(ctx, target, commit)
	if err != nil {
		return false, fmt.Errorf("merge-tree %s %s: %w", target, commit, err)
	}
	if clean {
		targetTree, err := o.q.TreeOf(ctx, target)
		if err != nil {
			return false, err
		}
		if mergedTree == targetTree {
			return true, nil
		}
	}

	commitTree, err := o.q.TreeOf(ctx, commit)
	if err != nil {
		return false, err
	}
	trees, err := o.treesOf(ctx, target)
	if err != nil {
		return false, err
	}
	return trees[commitTree], nil
}

// treesOf returns the set of trees of the last window commits of target.
func (o *Oracle) treesOf(ctx context.Context, target string) (map[string]bool, error) {
	if trees, ok := o.targetTrees[target]; ok {
		return trees, nil
	}
	commits, err := o.q.gw.RevList(ctx, "", target, o.window)
	if err != nil {
		return nil, fmt.Errorf("rev-list %s: %w", target, err)
	}
	trees := make(map[string]bool, len(commits))
	for _, commit := range commits {
		tree, err := o.q.TreeOf(ctx, commit)
		if err != nil {
			return nil, err
		}
		trees[tree] = true
	}
	o.targetTrees[target] = trees
	return trees, nil
}
