package core

import "errors"

// MaxTableSize caps the phase table. Targets run out of SRAM well before
// this.
const MaxTableSize = 1 << 16

var ErrTableSize = errors.New("table size must be a non-zero power of two not above 65536")

// PhaseTable holds one period of a waveform. It is filled once by
// NewPhaseTable and never modified afterwards, so the feed loop reads it
// without synchronization.
type PhaseTable struct {
	samples  []DACValue
	mask     uint32
	max      DACValue
	waveform string
}

// IsPowerOfTwo reports whether n is a non-zero power of two
func IsPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}

// ValidateTableSize rejects sizes the cyclic index mask cannot handle
func ValidateTableSize(size uint32) error {
	if !IsPowerOfTwo(size) || size > MaxTableSize {
		return ErrTableSize
	}
	return nil
}

// NewPhaseTable builds a table for the 12-bit DACC range
func NewPhaseTable(size uint32, w Waveform) (*PhaseTable, error) {
	return NewPhaseTableFor(size, w, DACMax)
}

// NewPhaseTableFor builds a size-entry table of w scaled to 0..max
func NewPhaseTableFor(size uint32, w Waveform, max DACValue) (*PhaseTable, error) {
	if err := ValidateTableSize(size); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, &WaveformError{}
	}

	t := &PhaseTable{
		samples:  make([]DACValue, size),
		mask:     size - 1,
		max:      max,
		waveform: w.Name(),
	}
	for i := uint32(0); i < size; i++ {
		t.samples[i] = w.Sample(i, size, max)
	}
	return t, nil
}

// Len returns the number of samples in one period
func (t *PhaseTable) Len() uint32 {
	return uint32(len(t.samples))
}

// Mask returns Len()-1, used for cyclic indexing
func (t *PhaseTable) Mask() uint32 {
	return t.mask
}

// At returns the sample at i, wrapping i into the table
func (t *PhaseTable) At(i uint32) DACValue {
	return t.samples[i&t.mask]
}

// Max returns the full-scale value the table was built for
func (t *PhaseTable) Max() DACValue {
	return t.max
}

// Waveform returns the name of the waveform the table holds
func (t *PhaseTable) Waveform() string {
	return t.waveform
}

// Samples returns a copy of the table contents
func (t *PhaseTable) Samples() []DACValue {
	out := make([]DACValue, len(t.samples))
	copy(out, t.samples)
	return out
}
