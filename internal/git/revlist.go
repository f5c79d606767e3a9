package git

import (
	"context"
	"fmt"
	"strconv"
)

// IsAncestor reports whether ancestor is reachable from descendant.
func IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	_, err := RunGitCommandWithContext(ctx, "merge-base", "--is-ancestor", ancestor, descendant)
	if err == nil {
		return true, nil
	}
	// merge-base --is-ancestor answers via the exit code; exit 1 means "no".
	// Distinguish that from hard failures by probing that both refs resolve.
	if _, rerr := ResolveRef(ctx, ancestor); rerr != nil {
		return false, rerr
	}
	if _, rerr := ResolveRef(ctx, descendant); rerr != nil {
		return false, rerr
	}
	return false, nil
}

// RevList returns commits reachable from included but not excluded, newest
// first, at most max entries. max <= 0 means no bound; an empty excluded
// walks the full history of included.
func RevList(ctx context.Context, excluded, included string, max int) ([]string, error) {
	args := []string{"rev-list"}
	if max > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", max))
	}
	args = append(args, included)
	if excluded != "" {
		args = append(args, "^"+excluded)
	}
	lines, err := RunGitCommandLinesWithContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to rev-list %s ^%s: %w", included, excluded, err)
	}
	return lines, nil
}

// RevListCount returns the number of commits reachable from included but not
// excluded.
func RevListCount(ctx context.Context, excluded, included string) (int, error) {
	output, err := RunGitCommandWithContext(ctx, "rev-list", "--count", included, "^"+excluded)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s ^%s: %w", included, excluded, err)
	}
	count, err := strconv.Atoi(output)
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list --count output %q: %w", output, err)
	}
	return count, nil
}
