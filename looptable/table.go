package looptable

import (
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"

	"github.com/Thiagojm/rngbench/nearest"
)

// DefaultMultipliers is the slow-path divisor list used by the bench FPGA.
var DefaultMultipliers = []int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50}

const (
	DefaultFastFirst = 3
	DefaultFastLast  = 18
)

// Spec describes the shape of a table.
type Spec struct {
	// FastFirst and FastLast bound the outer index range into the base
	// sequence, both inclusive.
	FastFirst int
	FastLast  int
	// Multipliers scale each fast value before the slow lookup. Their order
	// defines the inner selector index.
	Multipliers []int
	Format      Format
}

// DefaultSpec returns the table shape used for the bench FPGA build.
func DefaultSpec() Spec {
	m := make([]int, len(DefaultMultipliers))
	copy(m, DefaultMultipliers)
	return Spec{
		FastFirst:   DefaultFastFirst,
		FastLast:    DefaultFastLast,
		Multipliers: m,
		Format:      DefaultFormat(),
	}
}

// Slot is one inner case entry.
type Slot struct {
	Index      int
	Multiplier int
	Target     int
	Value      int
}

// Entry is one outer case entry with its full inner list.
type Entry struct {
	Index int
	Fast  int
	Slow  []Slot
}

// Table is an ordered list of outer entries.
type Table struct {
	Entries []Entry
}

// Build computes the table for spec over base. Nothing is returned unless
// every entry could be computed and fits the widths declared in spec.Format.
func Build(base *nearest.Sequence, spec Spec) (Table, error) {
	if err := spec.validate(base); err != nil {
		return Table{}, err
	}

	entries := make([]Entry, 0, spec.FastLast-spec.FastFirst+1)
	for i := spec.FastFirst; i <= spec.FastLast; i++ {
		fast := base.At(i)
		e := Entry{Index: i - spec.FastFirst, Fast: fast, Slow: make([]Slot, 0, len(spec.Multipliers))}
		for j, m := range spec.Multipliers {
			if fast > math.MaxInt/m {
				return Table{}, fmt.Errorf("fast value %d times multiplier %d overflows", fast, m)
			}
			target := fast * m
			e.Slow = append(e.Slow, Slot{
				Index:      j,
				Multiplier: m,
				Target:     target,
				Value:      base.Closest(target),
			})
		}
		entries = append(entries, e)
	}

	t := Table{Entries: entries}
	if err := t.checkWidths(spec.Format); err != nil {
		return Table{}, err
	}
	return t, nil
}

func (s Spec) validate(base *nearest.Sequence) error {
	var result *multierror.Error
	if base == nil || base.Len() == 0 {
		result = multierror.Append(result, fmt.Errorf("base: %w", nearest.ErrEmpty))
	} else {
		if s.FastFirst < 0 || s.FastLast >= base.Len() {
			result = multierror.Append(result, fmt.Errorf("fast range %d..%d outside base of length %d", s.FastFirst, s.FastLast, base.Len()))
		}
	}
	if s.FastFirst > s.FastLast {
		result = multierror.Append(result, fmt.Errorf("fast range %d..%d is inverted", s.FastFirst, s.FastLast))
	}
	if len(s.Multipliers) == 0 {
		result = multierror.Append(result, errors.New("no multipliers"))
	}
	for i, m := range s.Multipliers {
		if m <= 0 {
			result = multierror.Append(result, fmt.Errorf("multiplier %d is %d, must be > 0", i, m))
		}
	}
	if err := s.Format.validate(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (t Table) checkWidths(f Format) error {
	var result *multierror.Error
	check := func(what string, v, width int) {
		if !fits(v, width) {
			result = multierror.Append(result, fmt.Errorf("%s %d does not fit in %d bits", what, v, width))
		}
	}
	for _, e := range t.Entries {
		check("fast selector", e.Index, f.FastSelectWidth)
		check("fast value", e.Fast, f.FastWidth)
		for _, s := range e.Slow {
			check("slow selector", s.Index, f.SlowSelectWidth)
			check("slow value", s.Value, f.SlowWidth)
		}
	}
	return result.ErrorOrNil()
}

// fits reports whether v can be written as an unsigned literal of width bits.
// A zero width means unsized.
func fits(v, width int) bool {
	if v < 0 {
		return false
	}
	if width == 0 || width >= 63 {
		return true
	}
	return v < 1<<width
}
