package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0755", cfg.Create.DirPerm)
	assert.Equal(t, "0644", cfg.Create.FilePerm)
	assert.True(t, cfg.Journal.Enabled)
	assert.True(t, cfg.Color.UI)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Color.UI = false
	cfg.Journal.Path = "/tmp/custom.db"
	require.NoError(t, cfg.Save())

	got, err := Load()
	require.NoError(t, err)
	assert.False(t, got.Color.UI)

	path, err := got.JournalPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", path)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".treeforgerc"), []byte("{not json"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestJournalPathDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	path, err := cfg.JournalPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".treeforge", "journal.db"), path)
}
