// Package bitmap renders captured random bytes as square images for visual
// inspection of structure in the stream.
package bitmap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

var (
	// SetBit is the colour of a one bit in BitPlane.
	SetBit = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	// ClearBit is the colour of a zero bit in BitPlane.
	ClearBit = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	// Padding fills pixels past the end of the data.
	Padding = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Side returns the side of the smallest square holding n pixels.
func Side(n int) int {
	if n <= 0 {
		return 0
	}
	s := int(math.Ceil(math.Sqrt(float64(n))))
	// guard against float rounding on large n
	for s*s < n {
		s++
	}
	for s > 1 && (s-1)*(s-1) >= n {
		s--
	}
	return s
}

// Grayscale draws one pixel per byte, row by row. Pixels past the data are
// white.
func Grayscale(data []byte) *image.Gray {
	side := Side(len(data))
	img := image.NewGray(image.Rect(0, 0, side, side))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for i, b := range data {
		img.SetGray(i%side, i/side, color.Gray{Y: b})
	}
	return img
}

// BitPlane draws one pixel per bit, least significant bit of each byte
// first. Bit number idx lands at x = idx / side, y = idx % side, so the
// stream runs down the columns. Set bits are green and clear bits black.
func BitPlane(data []byte) *image.RGBA {
	side := Side(len(data) * 8)
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.SetRGBA(x, y, Padding)
		}
	}
	for i, b := range data {
		for z := 0; z < 8; z++ {
			idx := i*8 + z
			c := ClearBit
			if (b>>z)&1 == 1 {
				c = SetBit
			}
			img.SetRGBA(idx/side, idx%side, c)
		}
	}
	return img
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
