package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCherry(t *testing.T) {
	t.Run("parses markers", func(t *testing.T) {
		output := "- 7a5ef24d8a50a5d1f1ccf07aa0aeb6eaa1d12aaa\n" +
			"+ 9f3b52c9e2b1ac2d7bb2a1f67e7a1b1c2d3e4f55"
		entries, err := ParseCherry(output)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.True(t, entries[0].Equivalent)
		require.Equal(t, "7a5ef24d8a50a5d1f1ccf07aa0aeb6eaa1d12aaa", entries[0].Commit)
		require.False(t, entries[1].Equivalent)
	})

	t.Run("empty output means no commits", func(t *testing.T) {
		entries, err := ParseCherry("")
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("rejects malformed lines", func(t *testing.T) {
		_, err := ParseCherry("? abc")
		require.Error(t, err)
	})
}
