package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func chainFixture() *fakeGateway {
	f := newFakeGateway()
	f.commit("m0")
	f.commit("m1", "m0")
	f.commit("a1", "m0")
	f.commit("b1", "a1")
	f.commit("c1", "b1")
	f.branch("main", "m1")
	f.branch("f/a", "a1")
	f.branch("f/b", "b1")
	f.branch("f/c", "c1")
	f.currentBranch = "main"
	return f
}

func TestFindTips(t *testing.T) {
	ctx := context.Background()

	t.Run("reduces a chain to its tip", func(t *testing.T) {
		f := chainFixture()
		q := NewQueries(f)

		tips, err := FindTips(ctx, q, []string{"f/a", "f/b", "f/c"})
		require.NoError(t, err)
		require.Equal(t, []string{"f/c"}, tips)
	})

	t.Run("keeps both tips of a fork", func(t *testing.T) {
		f := chainFixture()
		f.commit("d1", "a1")
		f.branch("f/d", "d1")
		q := NewQueries(f)

		tips, err := FindTips(ctx, q, []string{"f/a", "f/b", "f/c", "f/d"})
		require.NoError(t, err)
		require.Equal(t, []string{"f/c", "f/d"}, tips)
	})

	t.Run("every branch is dominated by some tip", func(t *testing.T) {
		f := chainFixture()
		f.commit("d1", "a1")
		f.branch("f/d", "d1")
		q := NewQueries(f)

		branches := []string{"f/a", "f/b", "f/c", "f/d"}
		tips, err := FindTips(ctx, q, branches)
		require.NoError(t, err)

		for _, b := range branches {
			covered := false
			for _, tip := range tips {
				ok, err := q.IsAncestor(ctx, b, tip)
				require.NoError(t, err)
				if ok {
					covered = true
				}
			}
			require.True(t, covered, "branch %s is not dominated by any tip", b)
		}

		for _, tip := range tips {
			for _, other := range tips {
				if tip == other {
					continue
				}
				ok, err := q.IsAncestor(ctx, tip, other)
				require.NoError(t, err)
				require.False(t, ok, "tip %s is an ancestor of tip %s", tip, other)
			}
		}
	})

	t.Run("two branches on the same commit yield one tip", func(t *testing.T) {
		f := chainFixture()
		f.branch("f/c-alias", "c1")
		q := NewQueries(f)

		tips, err := FindTips(ctx, q, []string{"f/c", "f/c-alias"})
		require.NoError(t, err)
		require.Equal(t, []string{"f/c"}, tips)
	})
}

func TestFindCutPoint(t *testing.T) {
	ctx := context.Background()

	t.Run("finds the cherry-picked boundary", func(t *testing.T) {
		f := chainFixture()
		// m1 is a cherry-pick of a1: same patch id
		f.patchIDs["m1"] = f.patchIDs["a1"]
		q := NewQueries(f)
		oracle := NewOracle(q, 100)

		cut, err := FindCutPoint(ctx, q, oracle, "f/b", "main", 100)
		require.NoError(t, err)
		require.Equal(t, "a1", cut)
	})

	t.Run("returns empty when nothing is absorbed", func(t *testing.T) {
		f := chainFixture()
		q := NewQueries(f)
		oracle := NewOracle(q, 100)

		cut, err := FindCutPoint(ctx, q, oracle, "f/c", "main", 100)
		require.NoError(t, err)
		require.Equal(t, "", cut)
	})

	t.Run("returns the newest obsolete commit", func(t *testing.T) {
		f := chainFixture()
		// both a1 and b1 landed in main via cherry-picks
		f.commit("m2", "m1")
		f.branch("main", "m2")
		f.patchIDs["m1"] = f.patchIDs["a1"]
		f.patchIDs["m2"] = f.patchIDs["b1"]
		q := NewQueries(f)
		oracle := NewOracle(q, 100)

		cut, err := FindCutPoint(ctx, q, oracle, "f/c", "main", 100)
		require.NoError(t, err)
		require.Equal(t, "b1", cut)
	})
}
