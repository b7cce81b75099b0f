// Package config loads treeforge settings from the user's config file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents treeforge configuration.
type Config struct {
	Create  CreateConfig  `json:"create"`
	Journal JournalConfig `json:"journal"`
	Color   ColorConfig   `json:"color"`
}

// CreateConfig holds defaults for the create command.
type CreateConfig struct {
	DirPerm  string `json:"dir_perm,omitempty"`  // octal, e.g. "0755"
	FilePerm string `json:"file_perm,omitempty"` // octal, e.g. "0644"
}

// JournalConfig controls run recording.
type JournalConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"` // defaults to ~/.treeforge/journal.db
}

// ColorConfig holds color settings.
type ColorConfig struct {
	UI bool `json:"ui"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Create: CreateConfig{
			DirPerm:  "0755",
			FilePerm: "0644",
		},
		Journal: JournalConfig{Enabled: true},
		Color:   ColorConfig{UI: true},
	}
}

// Path returns the location of the user config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".treeforgerc"), nil
}

// JournalPath resolves the journal database location, honoring the config
// override.
func (c *Config) JournalPath() (string, error) {
	if c.Journal.Path != "" {
		return c.Journal.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".treeforge", "journal.db"), nil
}

// Load reads the user config file. A missing file yields the defaults; a
// malformed file is an error rather than being silently ignored.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	path, err := Path()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config file with user-only permissions.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
