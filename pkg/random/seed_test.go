package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewSource_Replays(t *testing.T) {
	a, b := NewSource(11), NewSource(11)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(6), b.Intn(6))
	}
}
