//go:build sam3x8e

package main

import (
	"runtime/volatile"
	"unsafe"
)

// SAM3X8E clocks. The runtime leaves the PLL at 84 MHz; timer clock 1 is
// MCK/2.
const (
	masterClock = 84000000
	timerClock1 = masterClock / 2
)

// Peripheral identifiers (PMC enable bits)
const (
	idUART = 8
	idTC0  = 27
	idDACC = 38
)

// Power Management Controller
const (
	pmcBase  = 0x400E0600
	pmcPCER0 = pmcBase + 0x10
	pmcPCER1 = pmcBase + 0x100
)

// Parallel I/O controllers
const (
	pioaBase = 0x400E0E00
	piobBase = 0x400E1000

	pioPDR  = 0x04 // PIO disable: hand the pin to a peripheral
	pioABSR = 0x70 // Peripheral A/B select, 1 = B
)

// Watchdog
const (
	wdtBase  = 0x400E1A50
	wdtMR    = wdtBase + 0x04
	wdtWDDIS = 1 << 15
)

func reg(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

// enablePeripheralClock turns on the PMC clock for peripheral id
func enablePeripheralClock(id uint32) {
	if id < 32 {
		reg(pmcPCER0).Set(1 << id)
		return
	}
	reg(pmcPCER1).Set(1 << (id - 32))
}

// selectPeripheral gives pins of a PIO controller to peripheral A or B
func selectPeripheral(pioBase uintptr, pins uint32, peripheralB bool) {
	reg(pioBase + pioPDR).Set(pins)
	absr := reg(pioBase + pioABSR)
	if peripheralB {
		absr.SetBits(pins)
	} else {
		absr.ClearBits(pins)
	}
}

// disableWatchdog writes WDDIS. WDT_MR is write-once after reset.
func disableWatchdog() {
	reg(wdtMR).Set(wdtWDDIS)
}
