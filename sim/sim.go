// Package sim provides in-memory stand-ins for the converter, the trigger
// timer and the report UART so the generator can run off target.
package sim

import (
	"bytes"
	"fmt"

	"duedds/core"

	"tinygo.org/x/drivers/tester"
)

// DefaultFIFODepth matches the SAM3X DACC, which queues four half words
const DefaultFIFODepth = 4

// DAC models a triggered converter with a request FIFO.
//
// Time only moves while the feed loop waits: every Ready poll that finds
// the FIFO full stands for one trigger edge and converts the oldest queued
// sample. Tick advances time explicitly.
type DAC struct {
	c     tester.Failer
	depth int
	max   core.DACValue

	cfg    core.DACConfig
	inited bool

	fifo   []core.DACValue
	output []core.DACValue
	last   core.DACValue

	writes    int
	polls     int
	underruns int
}

// NewDAC returns a converter with the given FIFO depth and full scale.
// Misuse is reported through c; a nil c panics instead.
func NewDAC(c tester.Failer, depth int, max core.DACValue) *DAC {
	if depth < 1 {
		depth = DefaultFIFODepth
	}
	return &DAC{
		c:     c,
		depth: depth,
		max:   max,
	}
}

func (d *DAC) fatalf(format string, args ...interface{}) {
	if d.c == nil {
		panic(fmt.Sprintf(format, args...))
	}
	d.c.Fatalf(format, args...)
}

// Init implements core.DACDriver.
func (d *DAC) Init(cfg core.DACConfig) error {
	if cfg.Channel > 1 {
		return fmt.Errorf("sim: no converter channel %d", cfg.Channel)
	}
	d.cfg = cfg
	d.inited = true
	return nil
}

// Ready implements core.DACDriver.
func (d *DAC) Ready() bool {
	d.polls++
	if len(d.fifo) < d.depth {
		return true
	}
	d.Tick()
	return false
}

// Write implements core.DACDriver.
func (d *DAC) Write(v core.DACValue) {
	if !d.inited {
		d.fatalf("sim: write before Init")
		return
	}
	if len(d.fifo) >= d.depth {
		d.fatalf("sim: write to full FIFO (value %d)", v)
		return
	}
	if v > d.max {
		d.fatalf("sim: value %d above full scale %d", v, d.max)
		return
	}
	d.writes++
	d.fifo = append(d.fifo, v)
}

// MaxValue implements core.DACDriver.
func (d *DAC) MaxValue() core.DACValue {
	return d.max
}

// Tick simulates one trigger edge. With an empty FIFO the output holds its
// last value and the edge counts as an underrun.
func (d *DAC) Tick() {
	if len(d.fifo) == 0 {
		d.underruns++
		d.output = append(d.output, d.last)
		return
	}
	d.last = d.fifo[0]
	d.fifo = d.fifo[1:]
	d.output = append(d.output, d.last)
}

// Drain converts everything still queued
func (d *DAC) Drain() {
	for len(d.fifo) > 0 {
		d.Tick()
	}
}

// Config returns the configuration passed to Init
func (d *DAC) Config() core.DACConfig { return d.cfg }

// Output returns the converted values in order
func (d *DAC) Output() []core.DACValue {
	out := make([]core.DACValue, len(d.output))
	copy(out, d.output)
	return out
}

// Pending returns the number of queued, unconverted samples
func (d *DAC) Pending() int { return len(d.fifo) }

func (d *DAC) Writes() int    { return d.writes }
func (d *DAC) Polls() int     { return d.polls }
func (d *DAC) Underruns() int { return d.underruns }

// Conversions counts trigger edges, including underruns
func (d *DAC) Conversions() int { return len(d.output) }

// Timer records what the trigger configurator does to it.
type Timer struct {
	clock uint32
	bits  uint8

	calls   []string
	ra, rc  uint32
	enabled bool
	routed  bool
	wave    bool
	running bool
}

// NewTimer returns a stopped timer counting at clock with a bits-wide
// counter
func NewTimer(clock uint32, bits uint8) *Timer {
	return &Timer{clock: clock, bits: bits}
}

func (t *Timer) record(name string) {
	t.calls = append(t.calls, name)
}

func (t *Timer) EnablePeripheral() { t.record("enable"); t.enabled = true }
func (t *Timer) Stop()             { t.record("stop"); t.running = false }
func (t *Timer) RouteOutput()      { t.record("route"); t.routed = true }
func (t *Timer) SetWaveform()      { t.record("waveform"); t.wave = true }

func (t *Timer) SetCompare(ra, rc uint32) {
	t.record("compare")
	t.ra, t.rc = ra, rc
}

func (t *Timer) Start() {
	t.record("start")
	t.running = t.enabled && t.wave
}

func (t *Timer) CounterBits() uint8     { return t.bits }
func (t *Timer) ClockFrequency() uint32 { return t.clock }

// Calls returns the HAL calls made so far, in order
func (t *Timer) Calls() []string {
	return append([]string(nil), t.calls...)
}

// Compare returns RA and RC
func (t *Timer) Compare() (ra, rc uint32) { return t.ra, t.rc }

// Running reports whether the counter was started in waveform mode
func (t *Timer) Running() bool { return t.running }

// Routed reports whether the compare output reaches the pin
func (t *Timer) Routed() bool { return t.routed }

// TriggerPeriodTicks is the counter ticks between two rising edges of the
// toggled output, 0 while stopped.
func (t *Timer) TriggerPeriodTicks() uint64 {
	if !t.running {
		return 0
	}
	return 2 * (uint64(t.rc) + 1)
}

// UART is an in-memory drivers.UART. Writes go to Tx, reads drain Rx.
type UART struct {
	Tx bytes.Buffer
	Rx bytes.Buffer
}

func (u *UART) Read(p []byte) (int, error)  { return u.Rx.Read(p) }
func (u *UART) Write(p []byte) (int, error) { return u.Tx.Write(p) }
func (u *UART) Buffered() int               { return u.Rx.Len() }

// Play runs n feed iterations against d and converts whatever is still
// queued afterwards. It returns the full output history of d.
func Play(f *core.Feeder, d *DAC, n int) []core.DACValue {
	for i := 0; i < n; i++ {
		f.Step()
	}
	d.Drain()
	return d.Output()
}
