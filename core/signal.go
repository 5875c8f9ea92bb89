package core

// SignalConfig selects what the generator plays and how the converter is
// set up. Targets usually start from DefaultSignalConfig and override
// individual fields.
type SignalConfig struct {
	SignalFrequency uint32 // [Hz]
	TableSize       uint32
	Waveform        string
	TimerClock      uint32 // Zero means ask the timer
	DAC             DACConfig
}

// DefaultSignalConfig is a 1 kHz sine from a 1024-entry table, clocked for
// a SAM3X at 84 MHz (timer clock 1 = MCK/2).
func DefaultSignalConfig() SignalConfig {
	return SignalConfig{
		SignalFrequency: 1000,
		TableSize:       1024,
		Waveform:        "sine",
		TimerClock:      42000000,
		DAC: DACConfig{
			Channel:         0,
			ExternalTrigger: true,
			TriggerSource:   1, // TIOA0
			HalfWord:        true,
			Refresh:         1,
		},
	}
}

// Signal is a configured generator ready to run
type Signal struct {
	Table  *PhaseTable
	Plan   TriggerPlan
	Feeder *Feeder
}

// Setup builds the phase table, initializes the converter and starts the
// trigger timer. On return the caller only has to call Signal.Feeder.Run.
//
// Every check runs before the first peripheral is touched, so a bad
// configuration leaves the hardware unconfigured. rep may be nil; a failed
// report is logged and does not abort setup.
func Setup(cfg SignalConfig, dac DACDriver, timer TriggerTimer, rep *Reporter) (*Signal, error) {
	w, err := WaveformByName(cfg.Waveform)
	if err != nil {
		return nil, err
	}

	table, err := NewPhaseTableFor(cfg.TableSize, w, dac.MaxValue())
	if err != nil {
		return nil, err
	}

	trig := TriggerConfig{
		TimerClock:      cfg.TimerClock,
		SignalFrequency: cfg.SignalFrequency,
		TableSize:       cfg.TableSize,
	}
	if trig.TimerClock == 0 {
		trig.TimerClock = timer.ClockFrequency()
	}
	plan, err := PlanTrigger(trig, timer.CounterBits())
	if err != nil {
		return nil, err
	}

	if err := dac.Init(cfg.DAC); err != nil {
		return nil, err
	}
	DebugPrintln("dds: " + table.Waveform() + " table, " + Utoa(uint64(table.Len())) + " samples")

	// Report before the timer starts: the UART is too slow to share with
	// the feed loop.
	if rep != nil {
		if err := rep.SendStatus(StatusFor(table, plan)); err != nil {
			DebugPrintln("dds: status report failed: " + err.Error())
		}
	}

	if plan, err = ConfigureTriggerTimer(timer, trig); err != nil {
		return nil, err
	}

	return &Signal{
		Table:  table,
		Plan:   plan,
		Feeder: NewFeeder(table, dac),
	}, nil
}
