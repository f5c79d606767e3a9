// Package engine implements the stack rebase engine: obsolescence detection,
// tip and cut-point discovery, sync-point selection, and the batch executor
// that replays stacks onto a moving target.
package engine

import (
	"context"

	"stackit.dev/graft/internal/git"
)

// Queries answers graph questions through the gateway, memoizing within one
// invocation. The cache is safe because the engine only asks about commit
// hashes (immutable) or refs it has not yet moved.
type Queries struct {
	gw git.Gateway

	ancestry map[string]bool
	counts   map[string]int
	trees    map[string]string
	resolved map[string]string
}

// NewQueries creates a query cache over a gateway.
func NewQueries(gw git.Gateway) *Queries {
	return &Queries{
		gw:       gw,
		ancestry: make(map[string]bool),
		counts:   make(map[string]int),
		trees:    make(map[string]string),
		resolved: make(map[string]string),
	}
}

// Gateway returns the underlying gateway.
func (q *Queries) Gateway() git.Gateway {
	return q.gw
}

// Resolve resolves a ref to a commit hash, caching the answer.
// Refs the engine is about to move must be resolved through the gateway
// directly; this cache is for the initial graph.
func (q *Queries) Resolve(ctx context.Context, ref string) (string, error) {
	if hash, ok := q.resolved[ref]; ok {
		return hash, nil
	}
	hash, err := q.gw.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	q.resolved[ref] = hash
	return hash, nil
}

// IsAncestor reports whether ancestor is reachable from descendant.
func (q *Queries) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	key := ancestor + "\x00" + descendant
	if answer, ok := q.ancestry[key]; ok {
		return answer, nil
	}
	answer, err := q.gw.IsAncestor(ctx, ancestor, descendant)
	if err != nil {
		return false, err
	}
	q.ancestry[key] = answer
	return answer, nil
}

// RevListCount counts commits reachable from included but not excluded.
func (q *Queries) RevListCount(ctx context.Context, excluded, included string) (int, error) {
	key := excluded + "\x00" + included
	if count, ok := q.counts[key]; ok {
		return count, nil
	}
	count, err := q.gw.RevListCount(ctx, excluded, included)
	if err != nil {
		return 0, err
	}
	q.counts[key] = count
	return count, nil
}

// TreeOf returns the tree hash of a commit.
func (q *Queries) TreeOf(ctx context.Context, commit string) (string, error) {
	if tree, ok := q.trees[commit]; ok {
		return tree, nil
	}
	tree, err := q.gw.TreeOf(ctx, commit)
	if err != nil {
		return "", err
	}
	q.trees[commit] = tree
	return tree, nil
}
