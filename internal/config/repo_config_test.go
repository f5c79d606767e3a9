package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempRepoRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	return dir
}

func TestGetRepoConfig(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		root := tempRepoRoot(t)

		cfg, err := GetRepoConfig(root)
		require.NoError(t, err)
		require.Equal(t, "main", cfg.GetTrunk())
		require.Equal(t, DefaultScanWindow, cfg.GetScanWindow())
	})

	t.Run("reads configured values", func(t *testing.T) {
		root := tempRepoRoot(t)
		content := `{"trunk": "develop", "scanWindow": 250}`
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git", ".graft_config"), []byte(content), 0644))

		cfg, err := GetRepoConfig(root)
		require.NoError(t, err)
		require.Equal(t, "develop", cfg.GetTrunk())
		require.Equal(t, 250, cfg.GetScanWindow())
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		root := tempRepoRoot(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git", ".graft_config"), []byte("{nope"), 0644))

		_, err := GetRepoConfig(root)
		require.Error(t, err)
	})

	t.Run("round-trips through write", func(t *testing.T) {
		root := tempRepoRoot(t)
		trunk := "master"
		window := 50
		require.NoError(t, WriteRepoConfig(root, &RepoConfig{Trunk: &trunk, ScanWindow: &window}))

		cfg, err := GetRepoConfig(root)
		require.NoError(t, err)
		require.Equal(t, "master", cfg.GetTrunk())
		require.Equal(t, 50, cfg.GetScanWindow())
	})

	t.Run("non-positive window falls back to default", func(t *testing.T) {
		root := tempRepoRoot(t)
		content := `{"scanWindow": 0}`
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git", ".graft_config"), []byte(content), 0644))

		cfg, err := GetRepoConfig(root)
		require.NoError(t, err)
		require.Equal(t, DefaultScanWindow, cfg.GetScanWindow())
	})
}
