package engine

import (
	"context"
	"fmt"
)

// RefSnapshot maps branch names to the commit hashes they pointed at when a
// batch started. It is captured once, before any rebase executes, and never
// mutated afterwards: ancestry and distance questions during the batch are
// asked against these hashes, not against live branch names.
type RefSnapshot map[string]string

// CaptureSnapshot records the current hash of every branch.
func CaptureSnapshot(ctx context.Context, q *Queries, branches []string) (RefSnapshot, error) {
	snapshot := make(RefSnapshot, len(branches))
	for _, branch := range branches {
		hash, err := q.gw.Resolve(ctx, branch)
		if err != nil {
			return nil, fmt.Errorf("failed to snapshot %s: %w", branch, err)
		}
		snapshot[branch] = hash
	}
	return snapshot, nil
}
