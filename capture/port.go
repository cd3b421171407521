package capture

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// DefaultBaud is the UART rate of the bench FPGA.
const DefaultBaud = 115200

// ErrPortNotFound is returned when no serial port matches.
var ErrPortNotFound = errors.New("serial port not found")

// Config holds serial link settings.
type Config struct {
	Baud        int
	ReadTimeout time.Duration
}

// FindPort returns the name of the first serial port matching match. match
// may be an exact port name ("/dev/ttyUSB0", "COM5"), a "VID:PID" pair
// ("0403:6001"), or a USB product name prefix. An empty match selects the
// first USB serial port.
func FindPort(match string) (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", fmt.Errorf("enumerating ports: %w", err)
	}
	for _, p := range ports {
		if p == nil || p.Name == "" {
			continue
		}
		if matchPort(p, match) {
			return p.Name, nil
		}
	}
	if match == "" {
		return "", ErrPortNotFound
	}
	return "", fmt.Errorf("%w: %q", ErrPortNotFound, match)
}

// ListPorts returns details of all serial ports present on the system.
func ListPorts() ([]*enumerator.PortDetails, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerating ports: %w", err)
	}
	return ports, nil
}

func matchPort(p *enumerator.PortDetails, match string) bool {
	if p == nil {
		return false
	}
	if match == "" {
		return p.IsUSB
	}
	if p.Name == match {
		return true
	}
	if vid, pid, ok := strings.Cut(match, ":"); ok {
		return p.IsUSB && strings.EqualFold(p.VID, vid) && strings.EqualFold(p.PID, pid)
	}
	return p.IsUSB && p.Product != "" && strings.HasPrefix(p.Product, match)
}

// Open opens name as 8N1 at cfg.Baud and drops any stale input so the
// capture starts with fresh bytes.
func Open(name string, cfg Config) (serial.Port, error) {
	baud := cfg.Baud
	if baud <= 0 {
		baud = DefaultBaud
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	if cfg.ReadTimeout > 0 {
		if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
			_ = port.Close()
			return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
		}
	}
	// not fatal, some drivers do not support purging
	_ = port.ResetInputBuffer()
	return port, nil
}
