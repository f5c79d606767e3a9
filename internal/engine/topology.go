package engine

import (
	"context"
	"sort"
)

// FindTips reduces a set of branches to the tips that dominate the rest:
// a branch is a tip iff no other branch in the set strictly descends from it.
// When two branches point at the same commit, the lexicographically first
// name is kept as the tip. The result is sorted and deduplicated.
func FindTips(ctx context.Context, q *Queries, branches []string) ([]string, error) {
	sorted := append([]string(nil), branches...)
	sort.Strings(sorted)

	var tips []string
	for _, branch := range sorted {
		branchHash, err := q.Resolve(ctx, branch)
		if err != nil {
			return nil, err
		}

		isTip := true
		for _, other := range sorted {
			if other == branch {
				continue
			}
			descendant, err := q.IsAncestor(ctx, branch, other)
			if err != nil {
				return nil, err
			}
			if !descendant {
				continue
			}
			otherHash, err := q.Resolve(ctx, other)
			if err != nil {
				return nil, err
			}
			if otherHash == branchHash && branch < other {
				// same commit, this name wins the tie
				continue
			}
			isTip = false
			break
		}
		if isTip && (len(tips) == 0 || tips[len(tips)-1] != branch) {
			tips = append(tips, branch)
		}
	}
	return tips, nil
}

// FindCutPoint walks the commits of tip that target does not have, newest to
// oldest, and returns the first one that is already obsolete in target: the
// boundary past which unique work begins. Returns "" when no commit in the
// window qualifies.
func FindCutPoint(ctx context.Context, q *Queries, oracle *Oracle, tip, target string, window int) (string, error) {
	commits, err := q.gw.RevList(ctx, target, tip, window)
	if err != nil {
		return "", err
	}
	for _, commit := range commits {
		obsolete, err := oracle.IsObsolete(ctx, commit, target)
		if err != nil {
			return "", err
		}
		if obsolete {
			return commit, nil
		}
	}
	return "", nil
}
