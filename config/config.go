// Package config loads settings for the rngbench tools from flags, an
// optional TOML file and RNGBENCH_* environment variables, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Thiagojm/rngbench/capture"
	"github.com/Thiagojm/rngbench/looptable"
	"github.com/Thiagojm/rngbench/primes"
)

// EnvPrefix prefixes environment overrides, e.g. RNGBENCH_CAPTURE_BAUD.
const EnvPrefix = "RNGBENCH"

// Duration is a time.Duration written as text ("2s") in config files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

type Config struct {
	Log     Log     `mapstructure:"log" toml:"log"`
	Table   Table   `mapstructure:"table" toml:"table"`
	Capture Capture `mapstructure:"capture" toml:"capture"`
}

type Log struct {
	// Level is one of trace, debug, info, warn, error, none.
	Level string `mapstructure:"level" toml:"level"`
	// File, if set, receives log output instead of stderr.
	File string `mapstructure:"file" toml:"file"`
}

type Table struct {
	// Primes is the number of primes in the base sequence.
	Primes      int              `mapstructure:"primes" toml:"primes"`
	FastFirst   int              `mapstructure:"fast_first" toml:"fast_first"`
	FastLast    int              `mapstructure:"fast_last" toml:"fast_last"`
	Multipliers []int            `mapstructure:"multipliers" toml:"multipliers"`
	Format      looptable.Format `mapstructure:"format" toml:"format"`
}

// Spec converts the table section into a looptable.Spec.
func (t Table) Spec() looptable.Spec {
	m := make([]int, len(t.Multipliers))
	copy(m, t.Multipliers)
	return looptable.Spec{
		FastFirst:   t.FastFirst,
		FastLast:    t.FastLast,
		Multipliers: m,
		Format:      t.Format,
	}
}

type Capture struct {
	// Port is a port name, VID:PID pair or USB product prefix. Empty picks
	// the first USB serial port.
	Port        string   `mapstructure:"port" toml:"port"`
	Baud        int      `mapstructure:"baud" toml:"baud"`
	ReadTimeout Duration `mapstructure:"read_timeout" toml:"read_timeout"`
	IdleTimeout Duration `mapstructure:"idle_timeout" toml:"idle_timeout"`
	Bytes       int64    `mapstructure:"bytes" toml:"bytes"`
	ChunkSize   int      `mapstructure:"chunk_size" toml:"chunk_size"`
	OutDir      string   `mapstructure:"out_dir" toml:"out_dir"`
	Source      string   `mapstructure:"source" toml:"source"`
	// OnesLog is the running CSV log appended to after each capture.
	OnesLog string `mapstructure:"ones_log" toml:"ones_log"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	spec := looptable.DefaultSpec()
	return Config{
		Log: Log{Level: "info"},
		Table: Table{
			Primes:      primes.DefaultCount,
			FastFirst:   spec.FastFirst,
			FastLast:    spec.FastLast,
			Multipliers: spec.Multipliers,
			Format:      spec.Format,
		},
		Capture: Capture{
			Baud:        capture.DefaultBaud,
			ReadTimeout: Duration(2 * time.Second),
			IdleTimeout: Duration(10 * time.Second),
			Bytes:       1 << 20,
			ChunkSize:   capture.DefaultChunkSize,
			OutDir:      "data",
			Source:      "uart",
			OnesLog:     "ones_log.csv",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("table.primes", d.Table.Primes)
	v.SetDefault("table.fast_first", d.Table.FastFirst)
	v.SetDefault("table.fast_last", d.Table.FastLast)
	v.SetDefault("table.multipliers", d.Table.Multipliers)
	v.SetDefault("table.format.fast_select", d.Table.Format.FastSelect)
	v.SetDefault("table.format.slow_select", d.Table.Format.SlowSelect)
	v.SetDefault("table.format.fast_output", d.Table.Format.FastOutput)
	v.SetDefault("table.format.slow_output", d.Table.Format.SlowOutput)
	v.SetDefault("table.format.fast_select_width", d.Table.Format.FastSelectWidth)
	v.SetDefault("table.format.slow_select_width", d.Table.Format.SlowSelectWidth)
	v.SetDefault("table.format.fast_width", d.Table.Format.FastWidth)
	v.SetDefault("table.format.slow_width", d.Table.Format.SlowWidth)
	v.SetDefault("table.format.end_module", d.Table.Format.EndModule)

	v.SetDefault("capture.port", d.Capture.Port)
	v.SetDefault("capture.baud", d.Capture.Baud)
	v.SetDefault("capture.read_timeout", time.Duration(d.Capture.ReadTimeout).String())
	v.SetDefault("capture.idle_timeout", time.Duration(d.Capture.IdleTimeout).String())
	v.SetDefault("capture.bytes", d.Capture.Bytes)
	v.SetDefault("capture.chunk_size", d.Capture.ChunkSize)
	v.SetDefault("capture.out_dir", d.Capture.OutDir)
	v.SetDefault("capture.source", d.Capture.Source)
	v.SetDefault("capture.ones_log", d.Capture.OnesLog)
}

// DefineLogFlags registers the logging flags shared by every tool.
func DefineLogFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "", "path to a TOML config file")
	cmd.PersistentFlags().String("log.level", "info", "set the log level: trace, debug, info, warn, error or none")
	cmd.PersistentFlags().String("log.file", "", "optional log file - if not specified logs go to STDERR")
}

// DefineTableFlags registers flags overriding the table section.
func DefineTableFlags(cmd *cobra.Command) {
	d := Default().Table
	cmd.Flags().Int("table.primes", d.Primes, "number of primes in the base sequence")
	cmd.Flags().Int("table.fast_first", d.FastFirst, "first base index of the fast selector (inclusive)")
	cmd.Flags().Int("table.fast_last", d.FastLast, "last base index of the fast selector (inclusive)")
	cmd.Flags().IntSlice("table.multipliers", d.Multipliers, "slow multipliers in selector order")
	cmd.Flags().Bool("table.format.end_module", d.Format.EndModule, "append an endmodule line")
}

// DefineCaptureFlags registers flags overriding the capture section.
func DefineCaptureFlags(cmd *cobra.Command) {
	d := Default().Capture
	cmd.Flags().StringP("capture.port", "p", d.Port, "serial port name, VID:PID or USB product prefix")
	cmd.Flags().IntP("capture.baud", "b", d.Baud, "UART baud rate")
	cmd.Flags().Duration("capture.read_timeout", time.Duration(d.ReadTimeout), "serial read timeout")
	cmd.Flags().Duration("capture.idle_timeout", time.Duration(d.IdleTimeout), "abort when the source is silent this long (0 disables)")
	cmd.Flags().Int64P("capture.bytes", "n", d.Bytes, "number of bytes to capture")
	cmd.Flags().Int("capture.chunk_size", d.ChunkSize, "bytes requested per read")
	cmd.Flags().StringP("capture.out_dir", "o", d.OutDir, "output directory for captures")
	cmd.Flags().String("capture.source", d.Source, "source label used in capture file names")
	cmd.Flags().String("capture.ones_log", d.OnesLog, "running ones percentage log (CSV)")
}

// Load builds the Config for cmd. Only flags registered on cmd are bound.
func Load(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFile string
	if cmd != nil {
		bindFlags(v, cmd)
		if f := cmd.Flags().Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if errors.As(err, &pathErr) {
				return Config{}, fmt.Errorf("config file %s not found: %w", configFile, err)
			}
			return Config{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	conf := Config{}
	err := v.Unmarshal(&conf, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return conf, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" {
			return
		}
		_ = v.BindPFlag(f.Name, f)
	})
}

// WriteDefault writes the default configuration as TOML.
func WriteDefault(w io.Writer) error {
	return toml.NewEncoder(w).Encode(Default())
}
