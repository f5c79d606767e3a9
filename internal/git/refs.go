package git

import (
	"context"
	"fmt"
	"sort"
	"strings"

	grafterrors "stackit.dev/graft/internal/errors"
)

// GetCurrentBranch returns the name of the checked-out branch.
// Returns ErrNotOnBranch when HEAD is detached.
func GetCurrentBranch(ctx context.Context) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil || output == "" {
		return "", grafterrors.ErrNotOnBranch
	}
	return output, nil
}

// ResolveRef resolves a ref name to a commit hash.
func ResolveRef(ctx context.Context, ref string) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil || output == "" {
		return "", grafterrors.NewUnknownRefError(ref)
	}
	return output, nil
}

// RefExists reports whether a ref resolves to a commit.
func RefExists(ctx context.Context, ref string) bool {
	_, err := ResolveRef(ctx, ref)
	return err == nil
}

// GetTree returns the tree hash of a commit.
func GetTree(ctx context.Context, commit string) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "rev-parse", commit+"^{tree}")
	if err != nil {
		return "", fmt.Errorf("failed to get tree of %s: %w", commit, err)
	}
	return output, nil
}

// ListBranches returns local branch names matching the given prefix,
// sorted lexicographically. An empty prefix matches every branch.
func ListBranches(ctx context.Context, prefix string) ([]string, error) {
	// for-each-ref matches patterns by whole path components, so list every
	// branch and filter on the plain string prefix here.
	lines, err := RunGitCommandLinesWithContext(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	branches := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			branches = append(branches, line)
		}
	}
	sort.Strings(branches)
	return branches, nil
}

// ListRemoteBranches returns branch names under the remote matching the given
// prefix, without the remote qualifier (e.g. "feature/login", not
// "origin/feature/login").
func ListRemoteBranches(ctx context.Context, remote, prefix string) ([]string, error) {
	refPrefix := fmt.Sprintf("refs/remotes/%s/", remote)
	lines, err := RunGitCommandLinesWithContext(ctx, "for-each-ref", "--format=%(refname:short)", refPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote branches: %w", err)
	}
	branches := make([]string, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimPrefix(line, remote+"/")
		if name == "HEAD" || name == "" || !strings.HasPrefix(name, prefix) {
			continue
		}
		branches = append(branches, name)
	}
	sort.Strings(branches)
	return branches, nil
}

// BranchesMergedInto returns local branches whose tips are reachable from the
// given ref, filtered to the prefix when one is provided.
func BranchesMergedInto(ctx context.Context, ref, prefix string) ([]string, error) {
	args := []string{"branch", "--format=%(refname:short)", "--merged", ref}
	if prefix != "" {
		args = append(args, "--list", prefix+"*")
	}
	lines, err := RunGitCommandLinesWithContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches merged into %s: %w", ref, err)
	}
	sort.Strings(lines)
	return lines, nil
}

// BranchesContaining returns local branches whose history contains the commit.
func BranchesContaining(ctx context.Context, commit string) ([]string, error) {
	lines, err := RunGitCommandLinesWithContext(ctx, "branch", "--format=%(refname:short)", "--contains", commit)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches containing %s: %w", commit, err)
	}
	sort.Strings(lines)
	return lines, nil
}

// GetUpstream returns the upstream tracking ref of a branch, or "" when none
// is configured.
func GetUpstream(ctx context.Context, branch string) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", branch+"@{upstream}")
	if err != nil {
		return "", nil
	}
	return output, nil
}

// PreviousHead returns the commit HEAD pointed at before the last ref update,
// from the reflog.
func PreviousHead(ctx context.Context) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "rev-parse", "--verify", "--quiet", "HEAD@{1}")
	if err != nil || output == "" {
		return "", fmt.Errorf("no previous HEAD position in the reflog")
	}
	return output, nil
}

// CheckoutBranch checks out an existing branch
func CheckoutBranch(ctx context.Context, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "checkout", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteBranch force-deletes a local branch
func DeleteBranch(ctx context.Context, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "branch", "-D", branchName)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}
