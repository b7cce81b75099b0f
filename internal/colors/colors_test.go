package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetColorEnabled(t *testing.T) {
	prev := IsColorEnabled()
	defer SetColorEnabled(prev)

	SetColorEnabled(false)
	assert.Equal(t, "x", Created("x"))
	assert.Equal(t, "x", Failed("x"))
	assert.Equal(t, "x", Warning("x"))

	SetColorEnabled(true)
	assert.Equal(t, BrightGreen+"x"+ColorReset, Created("x"))
	assert.Equal(t, BrightRed+"x"+ColorReset, Failed("x"))
}
