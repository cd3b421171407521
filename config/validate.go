package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "none"}

// Validate reports every problem found in c.
func (c Config) Validate() error {
	var result *multierror.Error

	level := strings.ToLower(c.Log.Level)
	known := false
	for _, l := range logLevels {
		if l == level {
			known = true
			break
		}
	}
	if !known {
		result = multierror.Append(result, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}

	if c.Table.Primes <= 0 {
		result = multierror.Append(result, errors.New("table.primes must be > 0"))
	} else if c.Table.FastLast >= c.Table.Primes {
		result = multierror.Append(result, fmt.Errorf("table.fast_last %d must be below table.primes %d", c.Table.FastLast, c.Table.Primes))
	}

	if c.Capture.Baud <= 0 {
		result = multierror.Append(result, errors.New("capture.baud must be > 0"))
	}
	if c.Capture.Bytes <= 0 {
		result = multierror.Append(result, errors.New("capture.bytes must be > 0"))
	}
	if c.Capture.ChunkSize <= 0 {
		result = multierror.Append(result, errors.New("capture.chunk_size must be > 0"))
	}
	if c.Capture.ReadTimeout < 0 || c.Capture.IdleTimeout < 0 {
		result = multierror.Append(result, errors.New("capture timeouts must not be negative"))
	}
	return result.ErrorOrNil()
}
