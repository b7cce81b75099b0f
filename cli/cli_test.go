package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treeforge/treeforge/internal/colors"
	"github.com/treeforge/treeforge/internal/config"
)

func TestTruncateToKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "répert", truncateTo("répertoire", 6))
	assert.Equal(t, "日本", truncateTo("日本語のパス", 2))
	assert.Equal(t, "ab", truncateTo("ab", 10))
	assert.Equal(t, "whole", truncateTo("whole", 5))
}

func TestRunsListWithoutJournalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// A read-only listing on a fresh install reports no runs and must not
	// create an empty database.
	require.NoError(t, runsCmd.RunE(runsCmd, nil))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(home, ".treeforge", "journal.db"))
}

func TestRunsShowWithoutJournalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := runsShowCmd.RunE(runsShowCmd, []string{"deadbeefdeadbeef"})
	assert.EqualError(t, err, "no runs recorded")
}

func TestApplyColorConfig(t *testing.T) {
	prev := colors.IsColorEnabled()
	defer colors.SetColorEnabled(prev)

	colors.SetColorEnabled(true)
	cfg := config.DefaultConfig()
	cfg.Color.UI = false
	applyColorConfig(cfg)
	assert.False(t, colors.IsColorEnabled())

	// Leaving the knob on keeps whatever autodetection decided.
	colors.SetColorEnabled(true)
	cfg.Color.UI = true
	applyColorConfig(cfg)
	assert.True(t, colors.IsColorEnabled())
}
