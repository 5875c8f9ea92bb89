package core

// TriggerTimer is the abstract timer/counter channel that paces conversions.
// Each method maps to one named register operation of the underlying timer;
// the order in which they are called is owned by ConfigureTriggerTimer.
type TriggerTimer interface {
	// EnablePeripheral turns on the channel's peripheral clock (PMC)
	EnablePeripheral()

	// Stop disables the counter clock and all channel interrupts, then
	// clears pending status by reading it
	Stop()

	// RouteOutput hands the channel's output line (TIOA) to the peripheral
	// function so it reaches the converter's trigger input and a pin
	RouteOutput()

	// SetWaveform selects waveform mode: fastest clock source, output
	// toggled on compare A, counter reset on compare C
	SetWaveform()

	// SetCompare writes compare registers A and C
	SetCompare(ra, rc uint32)

	// Start enables the counter clock and issues a software trigger that
	// resets and starts counting. The timer is free-running afterwards.
	Start()

	// CounterBits is the width of the counter and compare registers
	CounterBits() uint8

	// ClockFrequency is the counter input clock after the prescaler [Hz]
	ClockFrequency() uint32
}
