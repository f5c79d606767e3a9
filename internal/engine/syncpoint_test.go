package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindSyncPoint(t *testing.T) {
	ctx := context.Background()
	all := []string{"f/a", "f/b", "f/c"}

	t.Run("nil when nothing has moved", func(t *testing.T) {
		f := chainFixture()
		q := NewQueries(f)
		initial, err := CaptureSnapshot(ctx, q, all)
		require.NoError(t, err)

		sync, err := FindSyncPoint(ctx, q, "f/c", all, initial)
		require.NoError(t, err)
		require.Nil(t, sync)
	})

	t.Run("finds a moved ancestor", func(t *testing.T) {
		f := chainFixture()
		q := NewQueries(f)
		initial, err := CaptureSnapshot(ctx, q, all)
		require.NoError(t, err)

		// f/a has been rebased onto main
		f.commit("a1'", "m1")
		f.branch("f/a", "a1'")

		sync, err := FindSyncPoint(ctx, q, "f/c", all, initial)
		require.NoError(t, err)
		require.NotNil(t, sync)
		require.Equal(t, "f/a", sync.Branch)
		require.Equal(t, "a1", sync.OldHash)
		require.Equal(t, "a1'", sync.NewHash)
	})

	t.Run("prefers the nearest moved ancestor", func(t *testing.T) {
		f := chainFixture()
		q := NewQueries(f)
		initial, err := CaptureSnapshot(ctx, q, all)
		require.NoError(t, err)

		// both f/a and f/b moved; f/b is closer to the tip
		f.commit("a1'", "m1")
		f.commit("b1'", "a1'")
		f.branch("f/a", "a1'")
		f.branch("f/b", "b1'")

		sync, err := FindSyncPoint(ctx, q, "f/c", all, initial)
		require.NoError(t, err)
		require.NotNil(t, sync)
		require.Equal(t, "f/b", sync.Branch)
		require.Equal(t, "b1", sync.OldHash)
		require.Equal(t, "b1'", sync.NewHash)
	})

	t.Run("skips non-ancestors", func(t *testing.T) {
		f := chainFixture()
		f.commit("d1", "m0")
		f.branch("f/d", "d1")
		withD := []string{"f/a", "f/b", "f/c", "f/d"}

		q := NewQueries(f)
		initial, err := CaptureSnapshot(ctx, q, withD)
		require.NoError(t, err)

		// f/d moved, but was never an ancestor of f/c
		f.commit("d1'", "m1")
		f.branch("f/d", "d1'")

		sync, err := FindSyncPoint(ctx, q, "f/c", withD, initial)
		require.NoError(t, err)
		require.Nil(t, sync)
	})

	t.Run("equal distances resolve to the lexicographically first branch", func(t *testing.T) {
		f := chainFixture()
		// f/b2 sits on the same commit as f/b
		f.branch("f/b2", "b1")
		withAlias := []string{"f/b", "f/b2", "f/c"}

		q := NewQueries(f)
		initial, err := CaptureSnapshot(ctx, q, withAlias)
		require.NoError(t, err)

		f.commit("b1'", "m1")
		f.branch("f/b", "b1'")
		f.branch("f/b2", "b1'")

		sync, err := FindSyncPoint(ctx, q, "f/c", withAlias, initial)
		require.NoError(t, err)
		require.NotNil(t, sync)
		require.Equal(t, "f/b", sync.Branch)
	})

	t.Run("ancestry is judged on the initial tip hash", func(t *testing.T) {
		f := chainFixture()
		q := NewQueries(f)
		initial, err := CaptureSnapshot(ctx, q, all)
		require.NoError(t, err)

		// f/a moved and f/c itself was already rebased elsewhere; the
		// snapshot keeps the answer stable regardless
		f.commit("a1'", "m1")
		f.branch("f/a", "a1'")
		f.commit("c1'", "a1'")
		f.branch("f/c", "c1'")

		sync, err := FindSyncPoint(ctx, q, "f/c", all, initial)
		require.NoError(t, err)
		require.NotNil(t, sync)
		require.Equal(t, "f/a", sync.Branch)
		require.Equal(t, "a1", sync.OldHash)
	})
}
