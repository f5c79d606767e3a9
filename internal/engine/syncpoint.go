package engine

import (
	"context"
	"sort"
)

// SyncPoint names an ancestor branch that has already been rebased earlier in
// the current batch. Rebasing the range (OldHash, tip] onto NewHash re-anchors
// the tip on the moved ancestor instead of replaying the shared prefix again.
type SyncPoint struct {
	Branch  string
	OldHash string
	NewHash string
}

// FindSyncPoint locates the nearest branch that (a) was an ancestor of tip on
// the initial graph and (b) has already moved in this batch. Ancestry and
// distance are both measured against the initial snapshot: after partial
// progress the live graph no longer reflects the original dependency
// structure. Candidates are scanned in sorted order and only a strictly
// smaller distance replaces the current best, so equal distances resolve to
// the lexicographically first branch.
func FindSyncPoint(ctx context.Context, q *Queries, tip string, all []string, initial RefSnapshot) (*SyncPoint, error) {
	tipInitial, ok := initial[tip]
	if !ok {
		return nil, nil
	}

	candidates := append([]string(nil), all...)
	sort.Strings(candidates)

	best := -1
	var result *SyncPoint
	for _, candidate := range candidates {
		if candidate == tip {
			continue
		}
		old, ok := initial[candidate]
		if !ok {
			continue
		}

		ancestor, err := q.IsAncestor(ctx, old, tipInitial)
		if err != nil {
			return nil, err
		}
		if !ancestor {
			continue
		}

		// resolve live: the whole point is detecting refs that moved
		curr, err := q.gw.Resolve(ctx, candidate)
		if err != nil {
			continue
		}
		if curr == old {
			continue
		}

		dist, err := q.RevListCount(ctx, old, tipInitial)
		if err != nil {
			return nil, err
		}
		if best < 0 || dist < best {
			best = dist
			result = &SyncPoint{Branch: candidate, OldHash: old, NewHash: curr}
		}
	}
	return result, nil
}
