// Package pseudorng provides a software byte source that stands in for the
// hardware generator when exercising the capture pipeline without a board.
package pseudorng

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	mrand "math/rand"
)

// Reader is a deterministic PRNG exposed as an io.Reader. Two Readers with
// the same seed produce the same stream.
type Reader struct {
	r *mrand.Rand
}

// NewReader creates a Reader. If seed is zero, a random seed is drawn from
// crypto/rand.
func NewReader(seed uint64) (*Reader, error) {
	if seed == 0 {
		var s [8]byte
		if _, err := crand.Read(s[:]); err != nil {
			return nil, err
		}
		seed = binary.LittleEndian.Uint64(s[:])
	}
	return &Reader{r: mrand.New(mrand.NewSource(int64(seed)))}, nil
}

// Read fills p with pseudorandom bytes. It fails only on a nil Reader.
func (g *Reader) Read(p []byte) (int, error) {
	if g == nil || g.r == nil {
		return 0, errors.New("reader is nil")
	}
	for i := range p {
		p[i] = byte(g.r.Intn(256))
	}
	return len(p), nil
}

// Close is a no-op so a Reader can replace a serial port.
func (g *Reader) Close() error { return nil }
