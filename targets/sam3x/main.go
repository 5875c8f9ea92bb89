//go:build sam3x8e

// Firmware for the Arduino Due: plays a phase table on DAC0, with TIOA0 of
// TC0 pacing the conversions.
//
// Stock TinyGo has no sam3x8e port. Linking needs a TinyGo tree that adds
// one: a runtime_sam3x8e.go with the reset handler, the 84 MHz PLL setup
// and the SysTick sleep, an interrupt vector table for the Cortex-M3, and a
// sam3x8e build tag in its machine package. due.json expects that port and
// inherits "cortex-m3"; sam3x8e.ld supplies the memory map (512 KiB flash
// at 0x80000, 96 KiB SRAM at 0x20070000).
//
// With such a toolchain, build with the target description next to this
// directory:
//
//	tinygo flash -target=./targets/due.json ./targets/sam3x
package main

import (
	"duedds/core"
	"duedds/protocol"
)

// Generator configuration, fixed at build time
const (
	signalFrequency = 1000
	tableSize       = 1024
	waveformName    = "sine"
)

// Fails to compile unless tableSize is a power of two
var _ = [1]struct{}{}[tableSize&(tableSize-1)]

func main() {
	disableWatchdog()

	port := configureUART(115200)
	core.SetDebugWriter(func(s string) {
		port.Write([]byte(s))
		port.Write([]byte("\r\n"))
	})
	core.DebugPrintln("duedds " + protocol.Version + " (sam3x8e)")

	cfg := core.DefaultSignalConfig()
	cfg.SignalFrequency = signalFrequency
	cfg.TableSize = tableSize
	cfg.Waveform = waveformName
	cfg.TimerClock = timerClock1

	sig, err := core.Setup(cfg, dacc{}, tcTrigger{}, core.NewReporter(port))
	if err != nil {
		core.DebugPrintln("setup failed: " + err.Error())
		for {
		}
	}

	// The UART is not touched again: the loop below owns the CPU
	core.SetDebugEnabled(false)
	sig.Feeder.Run()
}
