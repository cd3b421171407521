package nearest

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var firstTenPrimes = []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}

func TestSequenceClosest(t *testing.T) {
	s := MustSequence(firstTenPrimes)

	tests := []struct {
		name   string
		target int
		want   int
	}{
		{name: "above max clamps", target: 50, want: 29},
		{name: "below min clamps", target: 1, want: 2},
		{name: "negative clamps", target: -100, want: 2},
		{name: "tie picks smaller", target: 4, want: 3},
		{name: "tie between 7 and 11", target: 9, want: 7},
		{name: "closer to upper", target: 10, want: 11},
		{name: "closer to lower", target: 20, want: 19},
		{name: "exact member", target: 13, want: 13},
		{name: "exact min", target: 2, want: 2},
		{name: "exact max", target: 29, want: 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Closest(tt.target))
		})
	}
}

func TestSequenceProperties(t *testing.T) {
	s := MustSequence(firstTenPrimes)
	members := map[int]bool{}
	for _, v := range firstTenPrimes {
		members[v] = true
		assert.Equal(t, v, s.Closest(v), "member %d must map to itself", v)
	}

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		target := r.Intn(80) - 20
		got := s.Closest(target)
		require.True(t, members[got], "result %d for %d not a member", got, target)

		// No other member may be strictly closer, and on a tie the smaller wins.
		for _, v := range firstTenPrimes {
			dGot, dV := abs(got-target), abs(v-target)
			require.LessOrEqual(t, dGot, dV, "target %d: %d closer than %d", target, v, got)
			if dGot == dV {
				require.LessOrEqual(t, got, v, "target %d: tie must pick smaller", target)
			}
		}
	}
}

func TestSingleElement(t *testing.T) {
	s := MustSequence([]int{7})
	assert.Equal(t, 7, s.Closest(-1))
	assert.Equal(t, 7, s.Closest(7))
	assert.Equal(t, 7, s.Closest(1000))
	assert.Equal(t, 7, s.Min())
	assert.Equal(t, 7, s.Max())
}

func TestNewSequenceInvalid(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   error
	}{
		{name: "nil", values: nil, want: ErrEmpty},
		{name: "empty", values: []int{}, want: ErrEmpty},
		{name: "descending", values: []int{5, 3, 2}, want: ErrUnsorted},
		{name: "duplicate", values: []int{2, 3, 3, 5}, want: ErrUnsorted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSequence(tt.values)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, tt.want))
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestMustSequencePanics(t *testing.T) {
	assert.Panics(t, func() { MustSequence(nil) })
}

func TestSequenceIsImmutable(t *testing.T) {
	in := []int{1, 4, 9}
	s := MustSequence(in)
	in[0] = 100

	out := s.Values()
	out[1] = -1

	assert.Equal(t, []int{1, 4, 9}, s.Values())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 4, s.At(1))
}

func TestClosestHelper(t *testing.T) {
	got, err := Closest(firstTenPrimes, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	_, err = Closest([]int{3, 1}, 2)
	assert.ErrorIs(t, err, ErrUnsorted)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
