package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var sourcePattern = regexp.MustCompile(`^[a-z0-9]+$`)

// BuildBaseName builds the base filename of a capture using the convention:
//
//	YYYYMMDDTHHMMSS_{source}_b{bytes}
//
// where source is a short lowercase label of the randomness source (e.g.
// "uart", "fpga") and bytes > 0 is the capture length.
func BuildBaseName(now time.Time, source string, byteCount int64) (string, error) {
	if !sourcePattern.MatchString(source) {
		return "", fmt.Errorf("invalid source label: %q (lowercase letters and digits only)", source)
	}
	if byteCount <= 0 {
		return "", errors.New("byteCount must be > 0")
	}
	stamp := now.Format("20060102T150405")
	return fmt.Sprintf("%s_%s_b%d", stamp, source, byteCount), nil
}

// WithExt appends an extension to a base name. A leading dot on ext is
// accepted. Empty ext returns base.
func WithExt(base string, ext string) string {
	if ext == "" {
		return base
	}
	return base + "." + strings.TrimPrefix(ext, ".")
}

// JoinDir builds a path joining an optional directory with the filename.
// If dir is empty, it returns name as-is.
func JoinDir(dir string, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// BuildCapturePath returns the full .bin path for a new capture inside dir.
func BuildCapturePath(dir string, now time.Time, source string, byteCount int64) (string, error) {
	base, err := BuildBaseName(now, source, byteCount)
	if err != nil {
		return "", err
	}
	return JoinDir(dir, WithExt(base, ".bin")), nil
}

// ImagePaths derives the grayscale and bit-plane image paths for a capture
// file, placing them next to it.
func ImagePaths(capturePath string) (grayscale string, bitplane string) {
	stem := strings.TrimSuffix(capturePath, filepath.Ext(capturePath))
	return stem + "_grayscale.png", stem + "_bw.png"
}
