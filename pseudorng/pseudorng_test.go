package pseudorng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thiagojm/rngbench/bitstat"
)

func TestSeededStreamsMatch(t *testing.T) {
	a, err := NewReader(42)
	require.NoError(t, err)
	b, err := NewReader(42)
	require.NoError(t, err)

	bufA, bufB := make([]byte, 256), make([]byte, 256)
	n, err := a.Read(bufA)
	require.NoError(t, err)
	assert.Equal(t, 256, n)
	_, err = b.Read(bufB)
	require.NoError(t, err)
	assert.Equal(t, bufA, bufB)
}

func TestRandomSeed(t *testing.T) {
	r, err := NewReader(0)
	require.NoError(t, err)
	buf := make([]byte, 1<<16)
	_, err = r.Read(buf)
	require.NoError(t, err)
	// A uniform source sits very close to half ones over 512k bits.
	assert.InDelta(t, 50.0, bitstat.OnesPercent(buf), 1.0)
}

func TestNilReader(t *testing.T) {
	var r *Reader
	_, err := r.Read(make([]byte, 1))
	assert.Error(t, err)
}
