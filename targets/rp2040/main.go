//go:build rp2040 || rp2350

// Firmware for the Raspberry Pi Pico and Pico 2: plays a phase table through a 10-bit
// R-2R ladder paced by a PIO state machine.
package main

import (
	"machine"
	"time"

	"duedds/core"
	"duedds/protocol"

	pio "github.com/tinygo-org/pio/rp2-pio"
)

// Generator configuration, fixed at build time
const (
	signalFrequency = 1000
	tableSize       = 1024
	waveformName    = "sine"
)

// Fails to compile unless tableSize is a power of two
var _ = [1]struct{}{}[tableSize&(tableSize-1)]

// Ladder on GPIO2..GPIO11, clear of UART0 on GPIO0/1
const ladderBase = machine.GPIO2

func main() {
	// Clear any watchdog state left from a previous run
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})

	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	core.SetDebugWriter(func(s string) {
		uart.Write([]byte(s))
		uart.Write([]byte("\r\n"))
	})
	core.DebugPrintln("duedds " + protocol.Version + " (" + chipName + ")")

	start := time.Now()

	sm, err := pio.PIO0.ClaimStateMachine()
	if err != nil {
		halt(err)
	}
	trigger, err := newPIOTrigger(sm, ladderBase)
	if err != nil {
		halt(err)
	}

	cfg := core.DefaultSignalConfig()
	cfg.SignalFrequency = signalFrequency
	cfg.TableSize = tableSize
	cfg.Waveform = waveformName
	cfg.TimerClock = 0 // state machine runs at the system clock

	sig, err := core.Setup(cfg, newPIODAC(sm, ladderBase), trigger, core.NewReporter(uart))
	if err != nil {
		halt(err)
	}

	elapsed := time.Since(start).Microseconds()
	core.DebugPrintln("setup done in " + core.Utoa(uint64(elapsed)) + "us, feeding")
	core.SetDebugEnabled(false)

	sig.Feeder.Run()
}

// halt reports err and blinks the on-board LED forever
func halt(err error) {
	core.DebugPrintln("setup failed: " + err.Error())

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(900 * time.Millisecond)
	}
}
