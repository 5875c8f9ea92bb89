//go:build sam3x8e

package main

// Timer Counter 0, channel 0
const (
	tc0Base = 0x40080000

	tcCCR = tc0Base + 0x00
	tcCMR = tc0Base + 0x04
	tcRA  = tc0Base + 0x14
	tcRC  = tc0Base + 0x1C
	tcSR  = tc0Base + 0x20
	tcIDR = tc0Base + 0x28
)

// TC_CCR
const (
	tcCCR_CLKEN  = 1 << 0
	tcCCR_CLKDIS = 1 << 1
	tcCCR_SWTRG  = 1 << 2
)

// TC_CMR in waveform mode
const (
	tcCMR_TCCLKS_TIMER_CLOCK1 = 0 << 0
	tcCMR_WAVSEL_UP_RC        = 2 << 13
	tcCMR_WAVE                = 1 << 15
	tcCMR_ACPA_TOGGLE         = 3 << 16
)

// TIOA0 is PB25, peripheral B
const tioa0Pin = 1 << 25

// tcTrigger drives TIOA0 so that every second compare match produces a
// rising edge for the DACC.
type tcTrigger struct{}

func (tcTrigger) EnablePeripheral() {
	enablePeripheralClock(idTC0)
}

func (tcTrigger) Stop() {
	reg(tcCCR).Set(tcCCR_CLKDIS)
	reg(tcIDR).Set(0xFFFFFFFF)
	// Reading SR clears pending status
	reg(tcSR).Get()
}

func (tcTrigger) RouteOutput() {
	selectPeripheral(piobBase, tioa0Pin, true)
}

func (tcTrigger) SetWaveform() {
	reg(tcCMR).Set(tcCMR_WAVE | tcCMR_TCCLKS_TIMER_CLOCK1 | tcCMR_ACPA_TOGGLE | tcCMR_WAVSEL_UP_RC)
}

func (tcTrigger) SetCompare(ra, rc uint32) {
	reg(tcRA).Set(ra)
	reg(tcRC).Set(rc)
}

// Start enables the clock and resets the counter with a software trigger
func (tcTrigger) Start() {
	reg(tcCCR).Set(tcCCR_CLKEN)
	reg(tcCCR).Set(tcCCR_SWTRG)
}

func (tcTrigger) CounterBits() uint8 { return 32 }

func (tcTrigger) ClockFrequency() uint32 { return timerClock1 }
