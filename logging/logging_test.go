package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thiagojm/rngbench/config"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, Level("debug"))
	assert.Equal(t, zerolog.WarnLevel, Level("WARN"))
	assert.Equal(t, zerolog.Disabled, Level("none"))
	assert.Equal(t, zerolog.InfoLevel, Level("whatever"))
}

func TestNewPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Info().Str("port", "/dev/ttyUSB0").Msg("opened")
	assert.Contains(t, buf.String(), `"port":"/dev/ttyUSB0"`)
	assert.Contains(t, buf.String(), `"message":"opened"`)
}

func TestSetupFile(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "bench.log")
	closeFn, err := Setup(config.Log{Level: "warn", File: path})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	closeFn()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), "shown")
}
