// Package primes provides ascending prime sequences used as lookup bases.
package primes

import (
	"errors"
	"fmt"

	"modernc.org/mathutil"

	"github.com/Thiagojm/rngbench/nearest"
)

// DefaultCount matches the size of the base table used for loop generation.
const DefaultCount = 3000

// First returns the first n primes in ascending order.
func First(n int) ([]int, error) {
	if n <= 0 {
		return nil, errors.New("n must be > 0")
	}
	out := make([]int, 0, n)
	var p uint32 = 1
	for len(out) < n {
		next, ok := mathutil.NextPrime(p)
		if !ok {
			return nil, fmt.Errorf("prime range exhausted after %d primes", len(out))
		}
		out = append(out, int(next))
		p = next
	}
	return out, nil
}

// Sequence returns the first n primes as a nearest.Sequence.
func Sequence(n int) (*nearest.Sequence, error) {
	ps, err := First(n)
	if err != nil {
		return nil, err
	}
	return nearest.NewSequence(ps)
}
