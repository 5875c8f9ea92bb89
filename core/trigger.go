package core

import "errors"

var (
	ErrTimerClock      = errors.New("timer clock must be positive")
	ErrSignalFrequency = errors.New("signal frequency must be positive")
	ErrCompareZero     = errors.New("compare value is zero: signal frequency times table size exceeds what the timer clock can pace")
	ErrCompareOverflow = errors.New("compare value does not fit the timer counter")
	ErrDelayLoop       = errors.New("compare value too small for the delay loop overhead")
)

// ConfigError reports a rejected trigger configuration together with the
// values that produced it.
type ConfigError struct {
	Err     error
	Config  TriggerConfig
	Compare uint32
}

func (e *ConfigError) Error() string {
	return "dds: " + e.Err.Error() +
		" (timer_clock=" + Utoa(uint64(e.Config.TimerClock)) +
		" signal_frequency=" + Utoa(uint64(e.Config.SignalFrequency)) +
		" table_size=" + Utoa(uint64(e.Config.TableSize)) +
		" compare=" + Utoa(uint64(e.Compare)) + ")"
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TriggerConfig holds the parameters the trigger rate is derived from.
// The timer must emit signal_frequency * table_size trigger edges per second.
type TriggerConfig struct {
	TimerClock      uint32 // Counter input clock after prescaler [Hz]
	SignalFrequency uint32 // Desired output frequency [Hz]
	TableSize       uint32 // Samples per period (power of two)
}

// CompareValue computes round((clock/(f*N) - 1) / 2).
//
// The output line toggles on compare A and the converter triggers on rising
// edges only, so one conversion takes two counter periods; hence the
// division by two. Returns 0 when the requested rate cannot be reached,
// including when the bracketed term is negative.
func (c TriggerConfig) CompareValue() uint32 {
	if c.SignalFrequency == 0 || c.TableSize == 0 {
		return 0
	}
	x := (float64(c.TimerClock)/(float64(c.SignalFrequency)*float64(c.TableSize))-1.0)/2.0 + 0.5
	if x < 1 {
		return 0
	}
	return uint32(x)
}

// Validate checks the configuration against a counter of the given width
// without touching any hardware.
func (c TriggerConfig) Validate(counterBits uint8) error {
	if c.TimerClock == 0 {
		return &ConfigError{Err: ErrTimerClock, Config: c}
	}
	if c.SignalFrequency == 0 {
		return &ConfigError{Err: ErrSignalFrequency, Config: c}
	}
	if err := ValidateTableSize(c.TableSize); err != nil {
		return &ConfigError{Err: err, Config: c}
	}

	cmp := c.CompareValue()
	if cmp == 0 {
		return &ConfigError{Err: ErrCompareZero, Config: c}
	}
	if counterBits < 64 && uint64(cmp) >= uint64(1)<<counterBits {
		return &ConfigError{Err: ErrCompareOverflow, Config: c, Compare: cmp}
	}
	return nil
}

// TriggerPlan is a validated configuration and what the hardware will
// actually produce from it. Integer rounding of the compare value means the
// actual frequency usually differs slightly from the requested one; that
// quantization error is expected.
type TriggerPlan struct {
	Config      TriggerConfig
	Compare     uint32  // Value written to RA and RC
	PeriodTicks uint64  // Timer ticks between two trigger edges
	TriggerHz   float64 // Conversions per second
	SignalHz    float64 // Actual output frequency
}

// ErrorHz is the difference between actual and requested signal frequency
func (p TriggerPlan) ErrorHz() float64 {
	return p.SignalHz - float64(p.Config.SignalFrequency)
}

// ErrorPPM is the relative frequency error in parts per million
func (p TriggerPlan) ErrorPPM() float64 {
	if p.Config.SignalFrequency == 0 {
		return 0
	}
	return p.ErrorHz() / float64(p.Config.SignalFrequency) * 1e6
}

// PlanTrigger validates cfg and derives the resulting trigger timing.
func PlanTrigger(cfg TriggerConfig, counterBits uint8) (TriggerPlan, error) {
	if err := cfg.Validate(counterBits); err != nil {
		return TriggerPlan{Config: cfg}, err
	}

	cmp := cfg.CompareValue()
	// Counter runs 0..RC inclusive, output toggles once per run
	period := 2 * (uint64(cmp) + 1)
	trigger := float64(cfg.TimerClock) / float64(period)

	return TriggerPlan{
		Config:      cfg,
		Compare:     cmp,
		PeriodTicks: period,
		TriggerHz:   trigger,
		SignalHz:    trigger / float64(cfg.TableSize),
	}, nil
}

// ConfigureTriggerTimer programs t to emit one trigger edge per sample and
// starts it. A zero cfg.TimerClock is taken from t.
//
// The configuration is validated before the first register write; on error
// the timer is left untouched. Once this returns nil the timer is
// free-running and needs no further software interaction. Calling it a
// second time on a running timer is not supported.
func ConfigureTriggerTimer(t TriggerTimer, cfg TriggerConfig) (TriggerPlan, error) {
	if cfg.TimerClock == 0 {
		cfg.TimerClock = t.ClockFrequency()
	}

	plan, err := PlanTrigger(cfg, t.CounterBits())
	if err != nil {
		return plan, err
	}

	t.EnablePeripheral()

	// Stop through Start runs with interrupts masked so the first edge
	// comes exactly one period after the counter reset
	state := disableInterrupts()
	t.Stop()
	t.RouteOutput()
	t.SetWaveform()
	// RC = RA: reset the counter right where the output toggles
	t.SetCompare(plan.Compare, plan.Compare)
	t.Start()
	restoreInterrupts(state)

	DebugPrintln("trigger: compare=" + Utoa(uint64(plan.Compare)) +
		" period=" + Utoa(plan.PeriodTicks) + " ticks" +
		" signal=" + ftoa3(plan.SignalHz) + "Hz")

	return plan, nil
}

// DelayLoopCount converts a compare value for a timer emulated by a
// software or PIO countdown. One pass of the loop spends overhead cycles
// outside the countdown plus count cycles inside it, and must last the
// 2*(rc+1) clocks a hardware timer toggling on RC would.
func DelayLoopCount(rc, overhead uint32) (uint32, error) {
	period := 2 * (uint64(rc) + 1)
	if period < uint64(overhead) {
		return 0, ErrDelayLoop
	}
	count := period - uint64(overhead)
	if count > 1<<32-1 {
		return 0, ErrCompareOverflow
	}
	return uint32(count), nil
}
