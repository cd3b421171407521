package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(cmd *cobra.Command, args []string) error { return nil }}
	DefineLogFlags(cmd)
	DefineTableFlags(cmd)
	DefineCaptureFlags(cmd)
	return cmd
}

func load(t *testing.T, args ...string) Config {
	t.Helper()
	cmd := newCmd()
	var conf Config
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var err error
		conf, err = Load(cmd)
		return err
	}
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return conf
}

func TestLoadDefaults(t *testing.T) {
	conf := load(t)
	assert.Equal(t, Default(), conf)
	require.NoError(t, conf.Validate())
}

func TestLoadFlags(t *testing.T) {
	conf := load(t,
		"--table.fast_first", "0",
		"--table.fast_last", "4",
		"--table.multipliers", "2,4",
		"--capture.baud", "9600",
		"--capture.read_timeout", "500ms",
		"--log.level", "debug",
	)
	assert.Equal(t, 0, conf.Table.FastFirst)
	assert.Equal(t, 4, conf.Table.FastLast)
	assert.Equal(t, []int{2, 4}, conf.Table.Multipliers)
	assert.Equal(t, 9600, conf.Capture.Baud)
	assert.Equal(t, Duration(500*time.Millisecond), conf.Capture.ReadTimeout)
	assert.Equal(t, "debug", conf.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rngbench.toml")
	body := `
[table]
primes = 100
multipliers = [3, 6, 9]

[table.format]
slow_width = 16

[capture]
port = "0403:6001"
idle_timeout = "1m"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	conf := load(t, "--config", path, "--table.primes", "200")
	assert.Equal(t, 200, conf.Table.Primes, "flag beats file")
	assert.Equal(t, []int{3, 6, 9}, conf.Table.Multipliers)
	assert.Equal(t, 16, conf.Table.Format.SlowWidth)
	assert.Equal(t, "fast_conf", conf.Table.Format.FastSelect)
	assert.Equal(t, "0403:6001", conf.Capture.Port)
	assert.Equal(t, Duration(time.Minute), conf.Capture.IdleTimeout)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("RNGBENCH_CAPTURE_SOURCE", "fpga")
	t.Setenv("RNGBENCH_TABLE_FAST_LAST", "7")
	conf := load(t)
	assert.Equal(t, "fpga", conf.Capture.Source)
	assert.Equal(t, 7, conf.Table.FastLast)
}

func TestLoadMissingFile(t *testing.T) {
	cmd := newCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.toml")})
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		_, err := Load(cmd)
		return err
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	assert.Error(t, cmd.Execute())
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDefault(&buf))
	assert.Contains(t, buf.String(), `read_timeout = '2s'`)

	path := filepath.Join(t.TempDir(), "default.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	conf := load(t, "--config", path)
	assert.Equal(t, Default(), conf)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Log.Level = "loud"
	c.Table.Primes = 10
	c.Capture.Baud = 0
	c.Capture.ChunkSize = -1

	err := c.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `unknown level "loud"`)
	assert.Contains(t, msg, "table.fast_last 18 must be below table.primes 10")
	assert.Contains(t, msg, "capture.baud must be > 0")
	assert.Contains(t, msg, "capture.chunk_size must be > 0")
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("3s")))
	assert.Equal(t, Duration(3*time.Second), d)
	assert.Error(t, d.UnmarshalText([]byte("soon")))

	b, err := Duration(90 * time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(b))
}
