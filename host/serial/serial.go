// Package serial opens the port a generator reports its status on.
package serial

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Port is an open serial connection. Reads return (0, nil) when the read
// timeout expires without data, so callers can poll for cancellation.
type Port interface {
	io.ReadWriteCloser

	// Flush discards unread input and unsent output
	Flush() error
}

// Config selects the device and line settings
type Config struct {
	Device  string // e.g. /dev/ttyACM0, COM3
	Baud    int
	Timeout time.Duration // per read, zero blocks
}

// DefaultConfig matches the firmware UART: 115200 8N1
func DefaultConfig(device string) *Config {
	return &Config{
		Device:  device,
		Baud:    115200,
		Timeout: 200 * time.Millisecond,
	}
}

type port struct {
	*serial.Port
	polling bool
}

// Open opens cfg.Device through github.com/tarm/serial
func Open(cfg *Config) (Port, error) {
	if cfg == nil || cfg.Device == "" {
		return nil, errors.New("serial: no device given")
	}

	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	return &port{Port: p, polling: cfg.Timeout > 0}, nil
}

// Read maps the io.EOF tarm/serial returns on an expired timeout to an
// empty read.
func (p *port) Read(b []byte) (int, error) {
	n, err := p.Port.Read(b)
	if n == 0 && p.polling && errors.Is(err, io.EOF) {
		return 0, nil
	}
	return n, err
}
