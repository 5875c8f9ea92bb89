// Package analysis measures phase tables and simulated output streams.
package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"duedds/core"
)

var ErrTooShort = errors.New("analysis: need at least four samples")

// Report summarizes one period of converter codes. Levels are in codes,
// harmonics relative to the fundamental.
type Report struct {
	Samples    int
	Min, Max   float64
	Mean       float64
	RMS        float64 // AC part only
	StdDev     float64
	PeakToPeak float64

	// Fundamental is the amplitude of bin 1, in codes
	Fundamental float64
	// Harmonics[k] is bin k+2 over bin 1
	Harmonics []float64
	// THD is sqrt(sum of squared harmonics) over the fundamental
	THD float64
}

// Analyze treats samples as exactly one period of the signal.
func Analyze(samples []core.DACValue) (Report, error) {
	n := len(samples)
	if n < 4 {
		return Report{}, ErrTooShort
	}

	x := make([]float64, n)
	for i, v := range samples {
		x[i] = float64(v)
	}

	r := Report{
		Samples: n,
		Min:     floats.Min(x),
		Max:     floats.Max(x),
		Mean:    stat.Mean(x, nil),
		StdDev:  stat.PopStdDev(x, nil),
	}
	r.PeakToPeak = r.Max - r.Min

	ac := make([]float64, n)
	copy(ac, x)
	floats.AddConst(-r.Mean, ac)
	r.RMS = floats.Norm(ac, 2) / math.Sqrt(float64(n))

	coeff := fourier.NewFFT(n).Coefficients(nil, x)
	// Single sided amplitude of bin k is 2|c_k|/n
	amp := func(k int) float64 { return 2 * cmplx.Abs(coeff[k]) / float64(n) }

	r.Fundamental = amp(1)
	if r.Fundamental == 0 {
		r.THD = math.Inf(1)
		return r, nil
	}

	// The Nyquist bin is not doubled
	last := len(coeff) - 1
	var sum float64
	for k := 2; k <= last; k++ {
		a := amp(k)
		if k == last && n%2 == 0 {
			a /= 2
		}
		h := a / r.Fundamental
		r.Harmonics = append(r.Harmonics, h)
		sum += h * h
	}
	r.THD = math.Sqrt(sum)
	return r, nil
}

// THDdB returns THD in decibels relative to the fundamental
func (r Report) THDdB() float64 {
	return 20 * math.Log10(r.THD)
}

// Candidate is a frequency the trigger timer can produce exactly
type Candidate struct {
	Compare  uint32
	SignalHz float64
	ErrorPPM float64
}

// Neighbors lists the achievable frequencies for compare values within k
// of the one chosen for cfg, nearest first by compare distance.
func Neighbors(cfg core.TriggerConfig, counterBits uint8, k int) ([]Candidate, error) {
	plan, err := core.PlanTrigger(cfg, counterBits)
	if err != nil {
		return nil, err
	}

	var out []Candidate
	add := func(cmp int64) {
		if cmp < 1 || (counterBits < 64 && uint64(cmp) >= uint64(1)<<counterBits) {
			return
		}
		hz := float64(cfg.TimerClock) / float64(2*(cmp+1)) / float64(cfg.TableSize)
		out = append(out, Candidate{
			Compare:  uint32(cmp),
			SignalHz: hz,
			ErrorPPM: (hz - float64(cfg.SignalFrequency)) / float64(cfg.SignalFrequency) * 1e6,
		})
	}

	c := int64(plan.Compare)
	add(c)
	for d := int64(1); d <= int64(k); d++ {
		add(c - d)
		add(c + d)
	}
	return out, nil
}
