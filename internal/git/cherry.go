package git

import (
	"context"
	"fmt"
	"strings"
)

// CherryEntry is one line of `git cherry` output: a commit on the head side
// and whether an equivalent patch already exists upstream.
type CherryEntry struct {
	Commit     string
	Equivalent bool // '-' marker: patch-id already present upstream
}

// ParseCherry parses the output of `git cherry <upstream> <head>`.
func ParseCherry(output string) ([]CherryEntry, error) {
	if output == "" {
		return []CherryEntry{}, nil
	}
	lines := strings.Split(output, "\n")
	entries := make([]CherryEntry, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || (fields[0] != "+" && fields[0] != "-") {
			return nil, fmt.Errorf("unrecognized cherry line %q", line)
		}
		entries = append(entries, CherryEntry{
			Commit:     fields[1],
			Equivalent: fields[0] == "-",
		})
	}
	return entries, nil
}

// Cherry lists the commits of head not merged into upstream, with per-commit
// patch-id equivalence markers.
func Cherry(ctx context.Context, upstream, head string) ([]CherryEntry, error) {
	output, err := RunGitCommandWithContext(ctx, "cherry", upstream, head)
	if err != nil {
		return nil, fmt.Errorf("failed to run cherry %s %s: %w", upstream, head, err)
	}
	return ParseCherry(output)
}
