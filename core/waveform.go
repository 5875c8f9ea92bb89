package core

import (
	"errors"
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrUnknownWaveform = errors.New("unknown waveform")

// Waveform produces one period of a signal, one sample at a time.
// New kinds only need to implement this; tables and the feed loop are
// agnostic of the waveform.
type Waveform interface {
	// Name is the registry key, e.g. "sine"
	Name() string

	// Sample returns the value at phase index i of a size-sample period,
	// scaled to 0..max
	Sample(i, size uint32, max DACValue) DACValue
}

// Sine is one period of sin(2*pi*i/N), full range about the midpoint.
type Sine struct{}

func (Sine) Name() string { return "sine" }

func (Sine) Sample(i, size uint32, max DACValue) DACValue {
	amplitude := float64(max / 2)
	midpoint := float64(max) - amplitude
	stride := 2.0 * math.Pi / float64(size)
	return roundSample(amplitude*math.Sin(stride*float64(i))+midpoint, max)
}

// Sawtooth ramps linearly from 0 towards max and drops back to 0 on wrap.
type Sawtooth struct{}

func (Sawtooth) Name() string { return "sawtooth" }

func (Sawtooth) Sample(i, size uint32, max DACValue) DACValue {
	step := float64(max) / float64(size)
	return roundSample(step*float64(i), max)
}

// Triangle rises from 0 to max over the first half period and falls back.
type Triangle struct{}

func (Triangle) Name() string { return "triangle" }

func (Triangle) Sample(i, size uint32, max DACValue) DACValue {
	half := size / 2
	if half == 0 {
		return 0
	}
	if i < half {
		return roundSample(float64(max)*float64(i)/float64(half), max)
	}
	return roundSample(float64(max)*float64(size-i)/float64(half), max)
}

// Square is high for the first half period and low for the second.
type Square struct{}

func (Square) Name() string { return "square" }

func (Square) Sample(i, size uint32, max DACValue) DACValue {
	if i < size/2 {
		return max
	}
	return 0
}

// roundSample rounds half up and clamps into the converter range
func roundSample(v float64, max DACValue) DACValue {
	if v <= 0 {
		return 0
	}
	if v >= float64(max) {
		return max
	}
	return DACValue(v + 0.5)
}

var waveforms = map[string]Waveform{}

func init() {
	for _, w := range []Waveform{Sine{}, Sawtooth{}, Triangle{}, Square{}} {
		RegisterWaveform(w)
	}
}

// RegisterWaveform makes w selectable by name. A later registration with
// the same name replaces the earlier one.
func RegisterWaveform(w Waveform) {
	waveforms[w.Name()] = w
}

// WaveformByName looks up a registered waveform
func WaveformByName(name string) (Waveform, error) {
	w, ok := waveforms[name]
	if !ok {
		return nil, &WaveformError{Name: name}
	}
	return w, nil
}

// WaveformNames returns the registered names in sorted order
func WaveformNames() []string {
	names := maps.Keys(waveforms)
	slices.Sort(names)
	return names
}

// WaveformError reports a waveform name nobody registered
type WaveformError struct {
	Name string
}

func (e *WaveformError) Error() string {
	return "dds: " + ErrUnknownWaveform.Error() + " \"" + e.Name + "\""
}

func (e *WaveformError) Unwrap() error {
	return ErrUnknownWaveform
}
