package core

// DACValue is one sample as written to the converter's data register.
// Transferred as a 16-bit half word even when the converter is 12 bits wide.
type DACValue uint16

// DACMax is the full-scale value of the SAM3X DACC (12 bits).
const DACMax DACValue = 4095

// DACConfig is the converter setup the core cares about.
type DACConfig struct {
	// Channel selects the output channel (USER_SEL)
	Channel uint8

	// ExternalTrigger enables trigger mode; conversions start on the
	// trigger edge instead of on each data write
	ExternalTrigger bool

	// TriggerSource selects the trigger input (TRGSEL). On SAM3X, 1 is
	// TIOA output of timer counter channel 0.
	TriggerSource uint8

	// HalfWord selects 16-bit transfers of conversion data
	HalfWord bool

	// Refresh is the refresh period setting. The analog level decays after
	// roughly 20us and is refreshed every 1024*Refresh/DACC clock cycles.
	Refresh uint8
}

// DACDriver is the abstract converter interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type DACDriver interface {
	// Init powers up the converter and applies cfg
	Init(cfg DACConfig) error

	// Ready reports whether the converter accepts a new conversion request
	// (TXRDY on SAM3X, TX FIFO not full on a PIO state machine)
	Ready() bool

	// Write queues one sample. Only valid after Ready returned true.
	Write(v DACValue)

	// MaxValue returns the full-scale sample value
	MaxValue() DACValue
}
