package naming

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBaseName(t *testing.T) {
	now := time.Date(2026, 10, 17, 8, 5, 9, 0, time.UTC)
	got, err := BuildBaseName(now, "uart", 4096)
	require.NoError(t, err)
	assert.Equal(t, "20261017T080509_uart_b4096", got)

	_, err = BuildBaseName(now, "Bad Label", 1)
	assert.Error(t, err)
	_, err = BuildBaseName(now, "uart", 0)
	assert.Error(t, err)
}

func TestWithExt(t *testing.T) {
	assert.Equal(t, "a.bin", WithExt("a", ".bin"))
	assert.Equal(t, "a.bin", WithExt("a", "bin"))
	assert.Equal(t, "a", WithExt("a", ""))
}

func TestBuildCapturePath(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got, err := BuildCapturePath("data", now, "fpga", 10)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "20260102T030405_fpga_b10.bin"), got)

	got, err = BuildCapturePath("", now, "fpga", 10)
	require.NoError(t, err)
	assert.Equal(t, "20260102T030405_fpga_b10.bin", got)
}

func TestImagePaths(t *testing.T) {
	g, b := ImagePaths(filepath.Join("data", "x.bin"))
	assert.Equal(t, filepath.Join("data", "x_grayscale.png"), g)
	assert.Equal(t, filepath.Join("data", "x_bw.png"), b)
}
