package nearest

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidInput is the parent of every validation error in this package.
var ErrInvalidInput = errors.New("invalid input")

var (
	// ErrEmpty is returned for a sequence with no elements.
	ErrEmpty = fmt.Errorf("%w: empty sequence", ErrInvalidInput)
	// ErrUnsorted is returned when the elements are not strictly ascending.
	ErrUnsorted = fmt.Errorf("%w: sequence not strictly ascending", ErrInvalidInput)
)

// Sequence is an immutable, strictly ascending list of integers.
type Sequence struct {
	values []int
}

// NewSequence validates values and returns a Sequence holding a private copy.
func NewSequence(values []int) (*Sequence, error) {
	if err := validate(values); err != nil {
		return nil, err
	}
	cp := make([]int, len(values))
	copy(cp, values)
	return &Sequence{values: cp}, nil
}

// MustSequence is like NewSequence but panics on invalid input.
func MustSequence(values []int) *Sequence {
	s, err := NewSequence(values)
	if err != nil {
		panic(err)
	}
	return s
}

func validate(values []int) error {
	if len(values) == 0 {
		return ErrEmpty
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return fmt.Errorf("%w: index %d (%d after %d)", ErrUnsorted, i, values[i], values[i-1])
		}
	}
	return nil
}

// Len returns the number of elements.
func (s *Sequence) Len() int { return len(s.values) }

// At returns the i-th element. It panics if i is out of range.
func (s *Sequence) At(i int) int { return s.values[i] }

// Min returns the smallest element.
func (s *Sequence) Min() int { return s.values[0] }

// Max returns the largest element.
func (s *Sequence) Max() int { return s.values[len(s.values)-1] }

// Values returns a copy of the elements.
func (s *Sequence) Values() []int {
	cp := make([]int, len(s.values))
	copy(cp, s.values)
	return cp
}

// Closest returns the element nearest to target. When target sits exactly
// halfway between two neighbours the smaller one is returned.
func (s *Sequence) Closest(target int) int {
	pos := sort.SearchInts(s.values, target)
	if pos == 0 {
		return s.values[0]
	}
	if pos == len(s.values) {
		return s.values[len(s.values)-1]
	}
	before := s.values[pos-1]
	after := s.values[pos]
	if after-target < target-before {
		return after
	}
	return before
}

// Closest validates values and returns the element nearest to target.
// Use a Sequence when performing many lookups against the same values.
func Closest(values []int, target int) (int, error) {
	if err := validate(values); err != nil {
		return 0, err
	}
	return (&Sequence{values: values}).Closest(target), nil
}
