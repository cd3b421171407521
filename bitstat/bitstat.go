// Package bitstat counts set bits in captured buffers and keeps the running
// ones-percentage log next to the captures.
package bitstat

import (
	"math/bits"
)

// CountOnes returns the number of set bits in buf.
func CountOnes(buf []byte) int {
	total := 0
	for _, b := range buf {
		total += bits.OnesCount8(b)
	}
	return total
}

// CountOnesBits returns the number of set bits in buf, considering only the
// first bitCount bits (MSB-first within each byte).
func CountOnesBits(buf []byte, bitCount int) int {
	if bitCount <= 0 || len(buf) == 0 {
		return 0
	}
	bytesUsed := (bitCount + 7) / 8
	if bytesUsed > len(buf) {
		bytesUsed = len(buf)
		bitCount = bytesUsed * 8
	}
	total := CountOnes(buf[:bytesUsed-1])
	usedBitsInLast := bitCount - (bytesUsed-1)*8
	mask := byte(0xFF) << (8 - usedBitsInLast)
	return total + bits.OnesCount8(buf[bytesUsed-1]&mask)
}

// OnesPercent returns the share of set bits in buf as a percentage.
// An empty buffer yields 0.
func OnesPercent(buf []byte) float64 {
	if len(buf) == 0 {
		return 0
	}
	return Percent(int64(CountOnes(buf)), int64(len(buf)))
}

// Percent converts a ones count over byteCount bytes into a percentage.
func Percent(ones, byteCount int64) float64 {
	if byteCount <= 0 {
		return 0
	}
	return 100 * float64(ones) / float64(byteCount*8)
}
