package theme

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPicker_CoversAllThemes(t *testing.T) {
	p := NewRandomPicker(rand.NewPCG(1, 2))

	seen := make(map[ID]int)
	for i := 0; i < 10000; i++ {
		id := p.Pick()
		require.True(t, Valid(id), "unexpected theme %q", id)
		seen[id]++
	}
	for _, id := range All {
		assert.Positive(t, seen[id], "theme %q never picked", id)
	}
}

func TestRandomPicker_NilSource(t *testing.T) {
	p := NewRandomPicker(nil)
	for i := 0; i < 100; i++ {
		assert.True(t, Valid(p.Pick()))
	}
}

func TestFixed(t *testing.T) {
	assert.Equal(t, Purple, Fixed(Purple).Pick())
	assert.False(t, Valid("magenta"))
}
