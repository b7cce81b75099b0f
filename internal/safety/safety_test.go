package safety

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	for _, name := range []string{"src", "main.py", ".gitkeep", "a b", "weird#name"} {
		assert.NoError(t, ValidateName(name), name)
	}
	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "/abs"} {
		assert.Error(t, ValidateName(name), name)
	}
}

func TestSafeJoin(t *testing.T) {
	p, err := SafeJoin("/tmp/out", "project", "src", "main.py")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/out", "project", "src", "main.py"), p)

	_, err = SafeJoin("/tmp/out", "..", "escape")
	assert.Error(t, err)

	_, err = SafeJoin("/tmp/out", "ok", "..", "..", "escape")
	assert.Error(t, err)
}
