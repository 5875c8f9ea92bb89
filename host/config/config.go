// Package config loads generator settings for the host tools.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"duedds/core"
)

// Target describes the timing hardware of one firmware target
type Target struct {
	TimerClock  uint32 // [Hz]
	CounterBits uint8
	DACMax      core.DACValue
	FIFODepth   int
}

// Targets lists the boards the firmware runs on
var Targets = map[string]Target{
	// TC0 at MCK/2, 12-bit DACC with a four entry FIFO
	"sam3x": {TimerClock: 42000000, CounterBits: 32, DACMax: 4095, FIFODepth: 4},
	// PIO state machine at the system clock, 10-bit ladder, joined TX FIFO.
	// The delay loop holds 2*(compare+1) in a 32-bit register.
	"rp2040": {TimerClock: 125000000, CounterBits: 31, DACMax: 1023, FIFODepth: 8},
	"rp2350": {TimerClock: 150000000, CounterBits: 31, DACMax: 1023, FIFODepth: 8},
}

// TargetNames returns the known targets in sorted order
func TargetNames() []string {
	names := maps.Keys(Targets)
	slices.Sort(names)
	return names
}

// Config mirrors the firmware's build-time constants plus host settings
type Config struct {
	Target          string `json:"target"`
	SignalFrequency uint32 `json:"signal_frequency"`
	TableSize       uint32 `json:"table_size"`
	Waveform        string `json:"waveform"`
	TimerClock      uint32 `json:"timer_clock"`

	Device string `json:"device"`
	Baud   int    `json:"baud"`
}

// LoadConfig parses a JSON configuration and fills in defaults
func LoadConfig(jsonData []byte) (*Config, error) {
	var config Config

	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFile reads and parses a configuration file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve builds the effective configuration: the file at path (skipped
// when empty), then every non-zero field of over, then defaults.
func Resolve(path string, over Config) (*Config, error) {
	var config Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	config.merge(over)
	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) merge(over Config) {
	if over.Target != "" {
		c.Target = over.Target
	}
	if over.SignalFrequency != 0 {
		c.SignalFrequency = over.SignalFrequency
	}
	if over.TableSize != 0 {
		c.TableSize = over.TableSize
	}
	if over.Waveform != "" {
		c.Waveform = over.Waveform
	}
	if over.TimerClock != 0 {
		c.TimerClock = over.TimerClock
	}
	if over.Device != "" {
		c.Device = over.Device
	}
	if over.Baud != 0 {
		c.Baud = over.Baud
	}
}

// DefaultConfig matches the firmware defaults on the Due
func DefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// applyDefaults fills in missing configuration values
func applyDefaults(config *Config) {
	def := core.DefaultSignalConfig()

	if config.Target == "" {
		config.Target = "sam3x"
	}
	if config.SignalFrequency == 0 {
		config.SignalFrequency = def.SignalFrequency
	}
	if config.TableSize == 0 {
		config.TableSize = def.TableSize
	}
	if config.Waveform == "" {
		config.Waveform = def.Waveform
	}
	if config.TimerClock == 0 {
		if t, ok := Targets[config.Target]; ok {
			config.TimerClock = t.TimerClock
		}
	}
	if config.Device == "" {
		config.Device = "/dev/ttyACM0"
	}
	if config.Baud == 0 {
		config.Baud = 115200
	}
}

// Validate checks names against the known targets and waveforms. Numeric
// limits are left to core.PlanTrigger.
func (c *Config) Validate() error {
	if _, ok := Targets[c.Target]; !ok {
		return fmt.Errorf("unknown target %q (have %v)", c.Target, TargetNames())
	}
	if _, err := core.WaveformByName(c.Waveform); err != nil {
		return err
	}
	return nil
}

// Hardware returns the target description
func (c *Config) Hardware() Target {
	return Targets[c.Target]
}

// TriggerConfig returns the inputs of the compare value computation
func (c *Config) TriggerConfig() core.TriggerConfig {
	return core.TriggerConfig{
		TimerClock:      c.TimerClock,
		SignalFrequency: c.SignalFrequency,
		TableSize:       c.TableSize,
	}
}

// SignalConfig returns what the firmware would pass to core.Setup
func (c *Config) SignalConfig() core.SignalConfig {
	cfg := core.DefaultSignalConfig()
	cfg.SignalFrequency = c.SignalFrequency
	cfg.TableSize = c.TableSize
	cfg.Waveform = c.Waveform
	cfg.TimerClock = c.TimerClock
	return cfg
}
