// Package logging configures the global zerolog logger for the rngbench
// tools.
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Thiagojm/rngbench/config"
)

var logLevelMatches = map[string]zerolog.Level{
	"NONE":  zerolog.Disabled,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
}

// Level maps a config level name to a zerolog level, defaulting to info.
func Level(name string) zerolog.Level {
	if l, ok := logLevelMatches[strings.ToUpper(name)]; ok {
		return l
	}
	return zerolog.InfoLevel
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) && runtime.GOOS != "windows"
}

// New returns a logger writing to w, human readable when w is a terminal.
func New(w io.Writer) zerolog.Logger {
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: "2006-01-02 15:04:05"}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Setup points the global logger at stderr or cfg.File and applies the
// level. Logs never go to stdout, which carries generated output. The
// returned func closes the log file, if any.
func Setup(cfg config.Log) (func(), error) {
	zerolog.SetGlobalLevel(Level(cfg.Level))
	if cfg.File == "" {
		log.Logger = New(os.Stderr)
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	log.Logger = New(f)
	return func() { _ = f.Close() }, nil
}
