package primes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirst(t *testing.T) {
	got, err := First(10)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, got)
}

func TestFirstDefaultCount(t *testing.T) {
	got, err := First(DefaultCount)
	require.NoError(t, err)
	require.Len(t, got, DefaultCount)
	// The 3000th prime.
	assert.Equal(t, 27449, got[len(got)-1])
	for i := 1; i < len(got); i++ {
		require.Greater(t, got[i], got[i-1])
	}
}

func TestFirstInvalid(t *testing.T) {
	_, err := First(0)
	assert.Error(t, err)
	_, err = First(-3)
	assert.Error(t, err)
}

func TestSequence(t *testing.T) {
	s, err := Sequence(19)
	require.NoError(t, err)
	assert.Equal(t, 19, s.Len())
	assert.Equal(t, 7, s.At(3))
	assert.Equal(t, 67, s.At(18))
}
