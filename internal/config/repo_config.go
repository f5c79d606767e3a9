// Package config provides repository configuration management for graft.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultScanWindow bounds the historical-tree scan and the cut-point walk.
const DefaultScanWindow = 100

// RepoConfig represents the repository configuration, stored as JSON at
// .git/.graft_config. A missing file means defaults.
type RepoConfig struct {
	Trunk      *string `json:"trunk,omitempty"`
	ScanWindow *int    `json:"scanWindow,omitempty"`
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	configPath := filepath.Join(repoRoot, ".git", ".graft_config")

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config doesn't exist - return default
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// GetTrunk returns the configured trunk branch name, or "main" as default.
func (c *RepoConfig) GetTrunk() string {
	if c.Trunk != nil && *c.Trunk != "" {
		return *c.Trunk
	}
	return "main"
}

// GetScanWindow returns the configured scan window, or the default.
func (c *RepoConfig) GetScanWindow() int {
	if c.ScanWindow != nil && *c.ScanWindow > 0 {
		return *c.ScanWindow
	}
	return DefaultScanWindow
}

// WriteRepoConfig writes the configuration back to the repository.
func WriteRepoConfig(repoRoot string, config *RepoConfig) error {
	configPath := filepath.Join(repoRoot, ".git", ".graft_config")

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize repo config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write repo config: %w", err)
	}

	return nil
}
