package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"stackit.dev/graft/internal/git"
)

// fakeGateway is a scripted in-memory git.Gateway. It models a commit graph
// with parent edges, branch refs, per-commit trees and patch ids, and a
// faithful simulation of rebase --update-refs: the replayed range gets new
// commits, and every branch ref pointing into the range is moved along.
type fakeGateway struct {
	parents  map[string][]string
	trees    map[string]string
	patchIDs map[string]string
	refs     map[string]string
	upstream map[string]string

	currentBranch string
	prevHead      string

	// scripted merge-tree answers, keyed "base\x00head"
	mergeTrees map[string]mergeTreeAnswer
	// branches whose rebase conflicts
	conflicts map[string]bool

	remoteRefs map[string]string
	goneLocal  []string

	inProgress bool
	pullErr    error

	rebaseCalls []rebaseCall
	aborts      int
	pulls       int
	checkouts   []string
	deleted     []string
	pushed      [][]string
	remoteDel   []string
}

type mergeTreeAnswer struct {
	tree  string
	clean bool
}

type rebaseCall struct {
	branch string
	opts   git.RebaseOptions
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		parents:    map[string][]string{},
		trees:      map[string]string{},
		patchIDs:   map[string]string{},
		refs:       map[string]string{},
		upstream:   map[string]string{},
		mergeTrees: map[string]mergeTreeAnswer{},
		conflicts:  map[string]bool{},
		remoteRefs: map[string]string{},
	}
}

// commit adds a commit with the given parents. Tree and patch id default to
// values derived from the commit name.
func (f *fakeGateway) commit(name string, parents ...string) {
	f.parents[name] = parents
	if _, ok := f.trees[name]; !ok {
		f.trees[name] = "tree-" + name
	}
	if _, ok := f.patchIDs[name]; !ok {
		f.patchIDs[name] = "patch-" + name
	}
}

func (f *fakeGateway) branch(name, commit string) {
	f.refs[name] = commit
}

func (f *fakeGateway) resolve(ref string) (string, error) {
	if ref == "HEAD" {
		ref = f.currentBranch
	}
	if hash, ok := f.refs[ref]; ok {
		return hash, nil
	}
	if _, ok := f.parents[ref]; ok {
		return ref, nil
	}
	return "", fmt.Errorf("unknown ref %s", ref)
}

func (f *fakeGateway) reachable(from string) map[string]bool {
	seen := map[string]bool{}
	var visit func(string)
	visit = func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		for _, p := range f.parents[c] {
			visit(p)
		}
	}
	visit(from)
	return seen
}

// revList lists commits reachable from included but not excluded, newest
// first along parent edges.
func (f *fakeGateway) revList(excluded, included string) []string {
	var stop map[string]bool
	if excluded != "" {
		stop = f.reachable(excluded)
	} else {
		stop = map[string]bool{}
	}
	var result []string
	seen := map[string]bool{}
	var visit func(string)
	visit = func(c string) {
		if c == "" || seen[c] || stop[c] {
			return
		}
		seen[c] = true
		result = append(result, c)
		for _, p := range f.parents[c] {
			visit(p)
		}
	}
	visit(included)
	return result
}

// Gateway implementation

func (f *fakeGateway) CheckVersion(ctx context.Context) error { return nil }

func (f *fakeGateway) CurrentBranch(ctx context.Context) (string, error) {
	return f.currentBranch, nil
}

func (f *fakeGateway) Resolve(ctx context.Context, ref string) (string, error) {
	return f.resolve(ref)
}

func (f *fakeGateway) RefExists(ctx context.Context, ref string) bool {
	_, err := f.resolve(ref)
	return err == nil
}

func (f *fakeGateway) TreeOf(ctx context.Context, commit string) (string, error) {
	hash, err := f.resolve(commit)
	if err != nil {
		return "", err
	}
	return f.trees[hash], nil
}

func (f *fakeGateway) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	a, err := f.resolve(ancestor)
	if err != nil {
		return false, err
	}
	d, err := f.resolve(descendant)
	if err != nil {
		return false, err
	}
	return f.reachable(d)[a], nil
}

func (f *fakeGateway) RevList(ctx context.Context, excluded, included string, max int) ([]string, error) {
	var ex string
	if excluded != "" {
		hash, err := f.resolve(excluded)
		if err != nil {
			return nil, err
		}
		ex = hash
	}
	in, err := f.resolve(included)
	if err != nil {
		return nil, err
	}
	list := f.revList(ex, in)
	if max > 0 && len(list) > max {
		list = list[:max]
	}
	return list, nil
}

func (f *fakeGateway) RevListCount(ctx context.Context, excluded, included string) (int, error) {
	list, err := f.RevList(ctx, excluded, included, 0)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func (f *fakeGateway) ListBranches(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	for name := range f.refs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeGateway) ListRemoteBranches(ctx context.Context, remote, prefix string) ([]string, error) {
	var names []string
	for name := range f.remoteRefs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeGateway) BranchesMergedInto(ctx context.Context, ref, prefix string) ([]string, error) {
	tip, err := f.resolve(ref)
	if err != nil {
		return nil, err
	}
	within := f.reachable(tip)
	var names []string
	for name, hash := range f.refs {
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		if within[hash] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeGateway) BranchesContaining(ctx context.Context, commit string) ([]string, error) {
	hash, err := f.resolve(commit)
	if err != nil {
		return nil, err
	}
	var names []string
	for name, tip := range f.refs {
		if f.reachable(tip)[hash] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeGateway) Upstream(ctx context.Context, branch string) (string, error) {
	return f.upstream[branch], nil
}

func (f *fakeGateway) PreviousHead(ctx context.Context) (string, error) {
	if f.prevHead == "" {
		return "", fmt.Errorf("no previous HEAD position in the reflog")
	}
	return f.prevHead, nil
}

func (f *fakeGateway) Cherry(ctx context.Context, upstream, head string) ([]git.CherryEntry, error) {
	up, err := f.resolve(upstream)
	if err != nil {
		return nil, err
	}
	h, err := f.resolve(head)
	if err != nil {
		return nil, err
	}
	known := map[string]bool{}
	for c := range f.reachable(up) {
		known[f.patchIDs[c]] = true
	}
	var entries []git.CherryEntry
	for _, c := range f.revList(up, h) {
		entries = append(entries, git.CherryEntry{
			Commit:     c,
			Equivalent: known[f.patchIDs[c]],
		})
	}
	return entries, nil
}

func (f *fakeGateway) MergeTree(ctx context.Context, base, head string) (string, bool, error) {
	b, err := f.resolve(base)
	if err != nil {
		return "", false, err
	}
	h, err := f.resolve(head)
	if err != nil {
		return "", false, err
	}
	if answer, ok := f.mergeTrees[b+"\x00"+h]; ok {
		return answer.tree, answer.clean, nil
	}
	if f.reachable(b)[h] {
		return f.trees[b], true, nil
	}
	return "merged-" + b + "-" + h, true, nil
}

func (f *fakeGateway) RebaseUpdateRefs(ctx context.Context, branch string, opts git.RebaseOptions) (git.RebaseResult, error) {
	f.rebaseCalls = append(f.rebaseCalls, rebaseCall{branch: branch, opts: opts})

	if f.conflicts[branch] {
		f.inProgress = true
		return git.RebaseConflict, nil
	}

	onto := opts.Onto
	if onto == "" {
		onto = opts.Upstream
	}
	ontoHash, err := f.resolve(onto)
	if err != nil {
		return git.RebaseConflict, err
	}
	upstreamHash, err := f.resolve(opts.Upstream)
	if err != nil {
		return git.RebaseConflict, err
	}
	tipHash, err := f.resolve(branch)
	if err != nil {
		return git.RebaseConflict, err
	}

	replayed := f.revList(upstreamHash, tipHash)
	rewritten := map[string]string{}
	cursor := ontoHash
	for i := len(replayed) - 1; i >= 0; i-- {
		old := replayed[i]
		rebased := old + "'"
		f.parents[rebased] = []string{cursor}
		f.trees[rebased] = f.trees[old] + "'"
		f.patchIDs[rebased] = f.patchIDs[old]
		rewritten[old] = rebased
		cursor = rebased
	}

	// --update-refs: every branch pointing into the replayed range moves
	for name, hash := range f.refs {
		if rebased, ok := rewritten[hash]; ok {
			f.refs[name] = rebased
		}
	}
	f.refs[branch] = cursor
	f.currentBranch = branch
	return git.RebaseDone, nil
}

func (f *fakeGateway) RebaseInProgress(ctx context.Context) bool {
	return f.inProgress
}

func (f *fakeGateway) RebaseAbort(ctx context.Context) error {
	f.aborts++
	f.inProgress = false
	return nil
}

func (f *fakeGateway) Checkout(ctx context.Context, branch string) error {
	if _, err := f.resolve(branch); err != nil {
		return err
	}
	f.checkouts = append(f.checkouts, branch)
	f.currentBranch = branch
	return nil
}

func (f *fakeGateway) DeleteBranch(ctx context.Context, branch string) error {
	if _, ok := f.refs[branch]; !ok {
		return fmt.Errorf("no such branch %s", branch)
	}
	delete(f.refs, branch)
	f.deleted = append(f.deleted, branch)
	return nil
}

func (f *fakeGateway) PullRebase(ctx context.Context) error {
	f.pulls++
	return f.pullErr
}

func (f *fakeGateway) Remote(ctx context.Context) string { return "origin" }

func (f *fakeGateway) RemoteTrackingRef(ctx context.Context, remote, branch string) string {
	return f.remoteRefs[branch]
}

func (f *fakeGateway) Push(ctx context.Context, remote string, branches, pushOpts []string) error {
	f.pushed = append(f.pushed, branches)
	return nil
}

func (f *fakeGateway) DeleteRemoteBranches(ctx context.Context, remote string, branches []string) error {
	f.remoteDel = append(f.remoteDel, branches...)
	return nil
}

func (f *fakeGateway) Fetch(ctx context.Context, remote string, prune bool) error { return nil }

func (f *fakeGateway) BranchesWithGoneUpstream(ctx context.Context) ([]string, error) {
	return f.goneLocal, nil
}

var _ git.Gateway = (*fakeGateway)(nil)
