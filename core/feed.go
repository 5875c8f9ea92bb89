package core

// Feeder keeps the converter supplied with phase table samples.
//
// Per sample it runs two states: WaitReady spins until the converter
// accepts a request, Feed writes the sample at the read index and advances
// the index by one modulo the table size. The timer drains the converter at
// the trigger rate, so each iteration must complete within one trigger
// period or the output misses a refresh. There is no timeout; a converter
// that never becomes ready blocks forever.
type Feeder struct {
	table *PhaseTable
	dac   DACDriver
	index uint32
}

// NewFeeder returns a feeder reading table from index 0
func NewFeeder(table *PhaseTable, dac DACDriver) *Feeder {
	return &Feeder{
		table: table,
		dac:   dac,
	}
}

// StartAt moves the read index before the loop runs. i is wrapped into the
// table.
func (f *Feeder) StartAt(i uint32) {
	f.index = i & f.table.mask
}

// Index returns the position of the next sample to be written
func (f *Feeder) Index() uint32 {
	return f.index
}

// Table returns the table being played back
func (f *Feeder) Table() *PhaseTable {
	return f.table
}

// Step waits for the converter and feeds exactly one sample.
func (f *Feeder) Step() {
	for !f.dac.Ready() {
	}
	f.dac.Write(f.table.samples[f.index])
	f.index = (f.index + 1) & f.table.mask
}

// Run feeds samples forever. It never returns.
func (f *Feeder) Run() {
	for {
		f.Step()
	}
}

// Advance returns the index reached after k feeds starting at index
func Advance(index, k, mask uint32) uint32 {
	return (index + k) & mask
}
