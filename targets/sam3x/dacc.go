//go:build sam3x8e

package main

import (
	"errors"

	"duedds/core"
)

const (
	daccBase = 0x400C8000

	daccCR   = daccBase + 0x00
	daccMR   = daccBase + 0x04
	daccCHER = daccBase + 0x10
	daccCDR  = daccBase + 0x20
	daccISR  = daccBase + 0x30
)

// DACC_MR fields
const (
	daccMR_TRGEN     = 1 << 0
	daccMR_WORD_FULL = 1 << 4
	daccMR_USER_SEL1 = 1 << 16
)

const (
	daccCR_SWRST  = 1 << 0
	daccISR_TXRDY = 1 << 0
)

func daccTRGSEL(src uint8) uint32 { return uint32(src&0x7) << 1 }
func daccREFRESH(v uint8) uint32  { return uint32(v) << 8 }

var errDACChannel = errors.New("sam3x: DACC has channels 0 and 1")

// dacc is the 12-bit converter. Writes go to CDR and queue in its FIFO
// while TXRDY is set.
type dacc struct{}

func (dacc) Init(cfg core.DACConfig) error {
	if cfg.Channel > 1 {
		return errDACChannel
	}
	enablePeripheralClock(idDACC)
	reg(daccCR).Set(daccCR_SWRST)

	var mr uint32
	if cfg.ExternalTrigger {
		mr |= daccMR_TRGEN | daccTRGSEL(cfg.TriggerSource)
	}
	if !cfg.HalfWord {
		mr |= daccMR_WORD_FULL
	}
	if cfg.Channel == 1 {
		mr |= daccMR_USER_SEL1
	}
	// Refresh period is 1024*REFRESH/DACC clock; the output droops after
	// about 20us without one
	mr |= daccREFRESH(cfg.Refresh)
	reg(daccMR).Set(mr)

	reg(daccCHER).Set(1 << cfg.Channel)
	return nil
}

func (dacc) Ready() bool {
	return reg(daccISR).HasBits(daccISR_TXRDY)
}

func (dacc) Write(v core.DACValue) {
	reg(daccCDR).Set(uint32(v))
}

func (dacc) MaxValue() core.DACValue {
	return core.DACMax
}
