package git

import (
	"context"
	"errors"
	"strings"

	grafterrors "stackit.dev/graft/internal/errors"
)

// MergeTree computes the tree that merging head into base would produce,
// without touching the working tree. Returns the tree hash and whether the
// merge was clean. Requires git >= 2.38 for --write-tree, which the version
// preflight already guarantees.
func MergeTree(ctx context.Context, base, head string) (tree string, clean bool, err error) {
	output, cmdErr := RunGitCommandRawWithContext(ctx, "merge-tree", "--write-tree", base, head)
	if cmdErr != nil {
		// merge-tree exits 1 on conflicts while still printing the tree
		// on stdout; any other failure is a real error.
		var gitErr *grafterrors.GitCommandError
		if errors.As(cmdErr, &gitErr) {
			if line := firstLine(gitErr.Stdout); isHexHash(line) {
				return line, false, nil
			}
		}
		return "", false, cmdErr
	}
	line := firstLine(output)
	if !isHexHash(line) {
		return "", false, errors.New("unexpected merge-tree output: " + line)
	}
	return line, true, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func isHexHash(s string) bool {
	if len(s) < 40 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
