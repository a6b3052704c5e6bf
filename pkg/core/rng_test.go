package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for range 32 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestRNGBounds(t *testing.T) {
	r := NewRNG(7)
	assert.Zero(t, r.IntN(0))
	assert.Equal(t, 5, r.Between(5, 5))
	assert.Equal(t, 5, r.Between(5, 2))
	assert.False(t, r.Chance(0))
	assert.True(t, r.Chance(1))
	for range 100 {
		v := r.Between(2, 4)
		assert.True(t, v >= 2 && v <= 4, v)
	}
}
