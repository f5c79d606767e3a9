package git

import (
	"context"
)

// Gateway defines the git operations used by the engine.
// This allows the engine to be used with both real git and mock implementations.
type Gateway interface {
	// Preflight
	CheckVersion(ctx context.Context) error

	// Refs and graph structure
	CurrentBranch(ctx context.Context) (string, error)
	Resolve(ctx context.Context, ref string) (string, error)
	RefExists(ctx context.Context, ref string) bool
	TreeOf(ctx context.Context, commit string) (string, error)
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)
	RevList(ctx context.Context, excluded, included string, max int) ([]string, error)
	RevListCount(ctx context.Context, excluded, included string) (int, error)
	ListBranches(ctx context.Context, prefix string) ([]string, error)
	ListRemoteBranches(ctx context.Context, remote, prefix string) ([]string, error)
	BranchesMergedInto(ctx context.Context, ref, prefix string) ([]string, error)
	BranchesContaining(ctx context.Context, commit string) ([]string, error)
	Upstream(ctx context.Context, branch string) (string, error)
	PreviousHead(ctx context.Context) (string, error)

	// Content comparison
	Cherry(ctx context.Context, upstream, head string) ([]CherryEntry, error)
	MergeTree(ctx context.Context, base, head string) (tree string, clean bool, err error)

	// Mutations
	RebaseUpdateRefs(ctx context.Context, branch string, opts RebaseOptions) (RebaseResult, error)
	RebaseInProgress(ctx context.Context) bool
	RebaseAbort(ctx context.Context) error
	Checkout(ctx context.Context, branch string) error
	DeleteBranch(ctx context.Context, branch string) error
	PullRebase(ctx context.Context) error

	// Remote interaction (all through the git executable)
	Remote(ctx context.Context) string
	RemoteTrackingRef(ctx context.Context, remote, branch string) string
	Push(ctx context.Context, remote string, branches, pushOpts []string) error
	DeleteRemoteBranches(ctx context.Context, remote string, branches []string) error
	Fetch(ctx context.Context, remote string, prune bool) error
	BranchesWithGoneUpstream(ctx context.Context) ([]string, error)
}

// NewGateway returns the standard Gateway backed by the git executable.
func NewGateway() Gateway {
	return &realGateway{}
}

// realGateway implements Gateway by calling the package-level git functions
type realGateway struct{}

func (g *realGateway) CheckVersion(ctx context.Context) error {
	return CheckVersion(ctx)
}

func (g *realGateway) CurrentBranch(ctx context.Context) (string, error) {
	return GetCurrentBranch(ctx)
}

func (g *realGateway) Resolve(ctx context.Context, ref string) (string, error) {
	return ResolveRef(ctx, ref)
}

func (g *realGateway) RefExists(ctx context.Context, ref string) bool {
	return RefExists(ctx, ref)
}

func (g *realGateway) TreeOf(ctx context.Context, commit string) (string, error) {
	return GetTree(ctx, commit)
}

func (g *realGateway) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	return IsAncestor(ctx, ancestor, descendant)
}

func (g *realGateway) RevList(ctx context.Context, excluded, included string, max int) ([]string, error) {
	return RevList(ctx, excluded, included, max)
}

func (g *realGateway) RevListCount(ctx context.Context, excluded, included string) (int, error) {
	return RevListCount(ctx, excluded, included)
}

func (g *realGateway) ListBranches(ctx context.Context, prefix string) ([]string, error) {
	return ListBranches(ctx, prefix)
}

func (g *realGateway) ListRemoteBranches(ctx context.Context, remote, prefix string) ([]string, error) {
	return ListRemoteBranches(ctx, remote, prefix)
}

func (g *realGateway) BranchesMergedInto(ctx context.Context, ref, prefix string) ([]string, error) {
	return BranchesMergedInto(ctx, ref, prefix)
}

func (g *realGateway) BranchesContaining(ctx context.Context, commit string) ([]string, error) {
	return BranchesContaining(ctx, commit)
}

func (g *realGateway) Upstream(ctx context.Context, branch string) (string, error) {
	return GetUpstream(ctx, branch)
}

func (g *realGateway) PreviousHead(ctx context.Context) (string, error) {
	return PreviousHead(ctx)
}

func (g *realGateway) Cherry(ctx context.Context, upstream, head string) ([]CherryEntry, error) {
	return Cherry(ctx, upstream, head)
}

func (g *realGateway) MergeTree(ctx context.Context, base, head string) (string, bool, error) {
	return MergeTree(ctx, base, head)
}

func (g *realGateway) RebaseUpdateRefs(ctx context.Context, branch string, opts RebaseOptions) (RebaseResult, error) {
	return RebaseUpdateRefs(ctx, branch, opts)
}

func (g *realGateway) RebaseInProgress(ctx context.Context) bool {
	return IsRebaseInProgress(ctx)
}

func (g *realGateway) RebaseAbort(ctx context.Context) error {
	return RebaseAbort(ctx)
}

func (g *realGateway) Checkout(ctx context.Context, branch string) error {
	return CheckoutBranch(ctx, branch)
}

func (g *realGateway) DeleteBranch(ctx context.Context, branch string) error {
	return DeleteBranch(ctx, branch)
}

func (g *realGateway) PullRebase(ctx context.Context) error {
	return PullRebase(ctx)
}

func (g *realGateway) Remote(ctx context.Context) string {
	return GetRemote(ctx)
}

func (g *realGateway) RemoteTrackingRef(ctx context.Context, remote, branch string) string {
	return GetRemoteTrackingRef(ctx, remote, branch)
}

func (g *realGateway) Push(ctx context.Context, remote string, branches, pushOpts []string) error {
	return PushBranches(ctx, remote, branches, pushOpts)
}

func (g *realGateway) DeleteRemoteBranches(ctx context.Context, remote string, branches []string) error {
	return DeleteRemoteBranches(ctx, remote, branches)
}

func (g *realGateway) Fetch(ctx context.Context, remote string, prune bool) error {
	return Fetch(ctx, remote, prune)
}

func (g *realGateway) BranchesWithGoneUpstream(ctx context.Context) ([]string, error) {
	return BranchesWithGoneUpstream(ctx)
}
