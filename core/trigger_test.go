package core

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCompareValue(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      TriggerConfig
		expected uint32
	}{
		{"1kHz 1024", TriggerConfig{42000000, 1000, 1024}, 20},
		{"100Hz 1024", TriggerConfig{42000000, 100, 1024}, 205},
		{"10kHz 256", TriggerConfig{42000000, 10000, 256}, 8},
		{"fastest", TriggerConfig{42000000, 20000, 1024}, 1},
		{"rounds below one", TriggerConfig{42000000, 30000, 1024}, 0},
		{"negative term", TriggerConfig{42000000, 50000, 1024}, 0},
		{"zero frequency", TriggerConfig{42000000, 0, 1024}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.CompareValue(); got != tc.expected {
				t.Errorf("CompareValue() = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestCompareValueClosedForm(t *testing.T) {
	for _, clk := range []uint32{42000000, 10500000, 125000000} {
		for _, f := range []uint32{1, 50, 440, 1000, 2500} {
			for _, n := range []uint32{16, 64, 256, 1024} {
				cfg := TriggerConfig{clk, f, n}
				x := math.Round((float64(clk)/(float64(f)*float64(n)) - 1) / 2)
				if x < 1 {
					continue
				}
				if got := cfg.CompareValue(); got != uint32(x) {
					t.Errorf("clk=%d f=%d n=%d: got %d, want %v", clk, f, n, got, x)
				}
			}
		}
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name string
		cfg  TriggerConfig
		bits uint8
		err  error
	}{
		{"valid", TriggerConfig{42000000, 1000, 1024}, 32, nil},
		{"no clock", TriggerConfig{0, 1000, 1024}, 32, ErrTimerClock},
		{"no frequency", TriggerConfig{42000000, 0, 1024}, 32, ErrSignalFrequency},
		{"table not power of two", TriggerConfig{42000000, 1000, 1000}, 32, ErrTableSize},
		{"empty table", TriggerConfig{42000000, 1000, 0}, 32, ErrTableSize},
		{"too fast", TriggerConfig{42000000, 50000, 1024}, 32, ErrCompareZero},
		{"divisor above clock", TriggerConfig{1000, 1000, 1024}, 32, ErrCompareZero},
		{"16-bit overflow", TriggerConfig{42000000, 1, 256}, 16, ErrCompareOverflow},
		{"32-bit fits", TriggerConfig{42000000, 1, 256}, 32, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate(tc.bits)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Validate() = %v, want %v", err, tc.err)
			}
			if err == nil {
				return
			}

			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if cerr.Config != tc.cfg {
				t.Errorf("ConfigError carries %+v, want %+v", cerr.Config, tc.cfg)
			}
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := TriggerConfig{42000000, 1, 256}.Validate(16)
	msg := err.Error()
	for _, want := range []string{"timer_clock=42000000", "signal_frequency=1", "table_size=256", "compare=82031"} {
		if !strings.Contains(msg, want) {
			t.Errorf("%q does not mention %q", msg, want)
		}
	}
}

func TestPlanTrigger(t *testing.T) {
	plan, err := PlanTrigger(TriggerConfig{42000000, 1000, 1024}, 32)
	if err != nil {
		t.Fatalf("PlanTrigger: %v", err)
	}

	if plan.Compare != 20 {
		t.Errorf("Compare = %d, want 20", plan.Compare)
	}
	if plan.PeriodTicks != 42 {
		t.Errorf("PeriodTicks = %d, want 42", plan.PeriodTicks)
	}
	if plan.TriggerHz != 1000000 {
		t.Errorf("TriggerHz = %f, want 1000000", plan.TriggerHz)
	}
	if plan.SignalHz != 976.5625 {
		t.Errorf("SignalHz = %f, want 976.5625", plan.SignalHz)
	}
	if plan.ErrorHz() != -23.4375 {
		t.Errorf("ErrorHz = %f, want -23.4375", plan.ErrorHz())
	}
	t.Logf("1 kHz request plays at %.4f Hz (%.1f ppm)", plan.SignalHz, plan.ErrorPPM())
}

func TestConfigureTriggerTimer(t *testing.T) {
	timer := newMockTimer()

	plan, err := ConfigureTriggerTimer(timer, TriggerConfig{SignalFrequency: 1000, TableSize: 1024})
	if err != nil {
		t.Fatalf("ConfigureTriggerTimer: %v", err)
	}
	if plan.Config.TimerClock != timer.clock {
		t.Errorf("timer clock not taken from the timer: %d", plan.Config.TimerClock)
	}

	expected := []string{"enable", "stop", "route", "waveform", "compare", "start"}
	if strings.Join(timer.calls, ",") != strings.Join(expected, ",") {
		t.Errorf("call order %v, want %v", timer.calls, expected)
	}
	if timer.ra != 20 || timer.rc != 20 {
		t.Errorf("RA=%d RC=%d, want 20/20", timer.ra, timer.rc)
	}
}

func TestConfigureTriggerTimerRejectsWithoutSideEffects(t *testing.T) {
	testCases := []struct {
		name string
		cfg  TriggerConfig
	}{
		{"too fast", TriggerConfig{42000000, 50000, 1024}},
		{"zero frequency", TriggerConfig{42000000, 0, 1024}},
		{"bad table", TriggerConfig{42000000, 1000, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			timer := newMockTimer()
			if _, err := ConfigureTriggerTimer(timer, tc.cfg); err == nil {
				t.Fatal("expected an error")
			}
			if len(timer.calls) != 0 {
				t.Errorf("timer touched on error: %v", timer.calls)
			}
		})
	}
}

func TestConfigureTriggerTimerOverflow(t *testing.T) {
	timer := newMockTimer()
	timer.bits = 16

	_, err := ConfigureTriggerTimer(timer, TriggerConfig{42000000, 1, 256})
	if !errors.Is(err, ErrCompareOverflow) {
		t.Fatalf("expected ErrCompareOverflow, got %v", err)
	}
	if len(timer.calls) != 0 {
		t.Errorf("timer touched on error: %v", timer.calls)
	}
}

func TestDelayLoopCount(t *testing.T) {
	testCases := []struct {
		name     string
		rc       uint32
		overhead uint32
		expected uint32
		err      error
	}{
		{"default sam3x compare", 20, 4, 38, nil},
		{"smallest compare", 1, 4, 0, nil},
		{"no overhead", 1, 0, 4, nil},
		{"overhead longer than period", 1, 5, 0, ErrDelayLoop},
		{"31-bit compare fits", 1<<31 - 1, 4, 1<<32 - 4, nil},
		{"32-bit compare overflows", 1<<32 - 1, 4, 0, ErrCompareOverflow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DelayLoopCount(tc.rc, tc.overhead)
			if !errors.Is(err, tc.err) {
				t.Fatalf("DelayLoopCount(%d, %d) error = %v, want %v", tc.rc, tc.overhead, err, tc.err)
			}
			if got != tc.expected {
				t.Errorf("DelayLoopCount(%d, %d) = %d, want %d", tc.rc, tc.overhead, got, tc.expected)
			}
			if err == nil && uint64(got)+uint64(tc.overhead) != 2*(uint64(tc.rc)+1) {
				t.Errorf("count %d + overhead %d does not add up to one trigger period", got, tc.overhead)
			}
		})
	}
}
