package git

import (
	"context"
	"fmt"
	"strings"
)

// GetRemote returns the default remote name (usually "origin")
func GetRemote(ctx context.Context) string {
	remotes, err := RunGitCommandLinesWithContext(ctx, "remote")
	if err != nil || len(remotes) == 0 {
		return "origin"
	}
	for _, r := range remotes {
		if r == "origin" {
			return r
		}
	}
	return remotes[0]
}

// GetRemoteTrackingRef returns the commit hash of the remote-tracking ref for
// a branch, or "" when no such ref is cached locally.
func GetRemoteTrackingRef(ctx context.Context, remote, branch string) string {
	output, err := RunGitCommandWithContext(ctx, "rev-parse", "--verify", "--quiet",
		fmt.Sprintf("refs/remotes/%s/%s", remote, branch))
	if err != nil {
		return ""
	}
	return output
}

// PushBranches pushes the given branches to the remote with any extra push
// options appended (e.g. --force-with-lease).
func PushBranches(ctx context.Context, remote string, branches []string, pushOpts []string) error {
	args := []string{"push", remote}
	args = append(args, pushOpts...)
	args = append(args, branches...)
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", strings.Join(branches, " "), err)
	}
	return nil
}

// DeleteRemoteBranches deletes branches on the remote.
func DeleteRemoteBranches(ctx context.Context, remote string, branches []string) error {
	args := []string{"push", remote, "--delete"}
	args = append(args, branches...)
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to delete remote branches: %w", err)
	}
	return nil
}

// Fetch updates remote-tracking refs, optionally pruning refs that no longer
// exist on the remote.
func Fetch(ctx context.Context, remote string, prune bool) error {
	args := []string{"fetch", remote}
	if prune {
		args = append(args, "--prune")
	}
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	return nil
}

// PullRebase runs `git pull --rebase` on the current branch.
func PullRebase(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "pull", "--rebase")
	if err != nil {
		return fmt.Errorf("pull --rebase failed: %w", err)
	}
	return nil
}

// BranchesWithGoneUpstream returns local branches whose configured upstream
// no longer exists, as reported by git after a pruning fetch.
func BranchesWithGoneUpstream(ctx context.Context) ([]string, error) {
	lines, err := RunGitCommandLinesWithContext(ctx, "for-each-ref",
		"--format=%(refname:short) %(upstream:track)", "refs/heads")
	if err != nil {
		return nil, fmt.Errorf("failed to inspect upstream state: %w", err)
	}
	var gone []string
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == "[gone]" {
			gone = append(gone, fields[0])
		}
	}
	return gone, nil
}
