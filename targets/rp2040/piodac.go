//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"

	"duedds/core"

	pio "github.com/tinygo-org/pio/rp2-pio"
)

// R-2R ladder width. The ladder is wired to consecutive GPIOs, LSB first.
const ladderBits = 10

var errLadderPins = errors.New("R-2R ladder does not fit GPIO0..29")

// ladderProgram paces one sample per 2*(compare+1) state machine cycles:
//
//	0: pull block       ; wait for the next sample
//	1: out pins, 10     ; drive the ladder
//	2: mov x, y         ; reload the delay count
//	3: jmp x--, 3       ; burn Y+1 cycles
//
// Loaded at offset 0 so the jump target stays valid.
var ladderProgram = []uint16{
	pio.EncodePull(false, true),
	pio.EncodeOut(pio.SrcDestPins, ladderBits),
	pio.EncodeMov(pio.SrcDestX, pio.SrcDestY),
	pio.EncodeJmp(3, pio.JmpXNZeroDec),
}

const (
	ladderOrigin = 0
	// Cycles spent in pull, out and mov plus the final jmp
	ladderOverhead = 4
)

// pioTrigger runs the pacing side of the ladder program. It takes the role
// of the timer: the state machine clock is the timer clock and the delay
// loop count plays the compare register.
type pioTrigger struct {
	sm     pio.StateMachine
	base   machine.Pin
	offset uint8
	clock  uint32
	err    error // compare the delay loop cannot express; Start refuses
}

// newPIOTrigger loads the ladder program. The state machine stays idle
// until Start.
func newPIOTrigger(sm pio.StateMachine, base machine.Pin) (*pioTrigger, error) {
	offset, err := sm.PIO().AddProgram(ladderProgram, ladderOrigin)
	if err != nil {
		return nil, err
	}
	return &pioTrigger{
		sm:     sm,
		base:   base,
		offset: offset,
		clock:  machine.CPUFrequency(),
	}, nil
}

// EnablePeripheral does nothing: PIO0 is out of reset after boot and main
// claims the state machine.
func (t *pioTrigger) EnablePeripheral() {}

func (t *pioTrigger) Stop() {
	t.sm.SetEnabled(false)
}

// RouteOutput hands the ladder pins to the state machine
func (t *pioTrigger) RouteOutput() {
	t.sm.SetPindirsConsecutive(t.base, ladderBits, true)
}

func (t *pioTrigger) SetWaveform() {
	cfg := pio.DefaultStateMachineConfig()
	cfg.SetWrap(t.offset, t.offset+uint8(len(ladderProgram))-1)
	cfg.SetOutPins(t.base, ladderBits)
	cfg.SetOutShift(true, false, 32)
	cfg.SetFIFOJoin(pio.FifoJoinTx)
	cfg.SetClkDivIntFrac(1, 0)
	t.sm.Init(t.offset, cfg)
}

// SetCompare loads the delay so one pass takes 2*(rc+1) cycles. ra is
// implied: the output changes once per pass.
//
// OUT only shifts the OSR and autopull is off, so the count goes through
// the TX FIFO and an explicit pull before landing in Y. The state machine
// is halted here (SetWaveform ran Init).
func (t *pioTrigger) SetCompare(ra, rc uint32) {
	delay, err := core.DelayLoopCount(rc, ladderOverhead)
	if err != nil {
		t.err = err
		return
	}
	t.sm.TxPut(delay)
	t.sm.Exec(pio.EncodePull(false, true))
	t.sm.Exec(pio.EncodeMov(pio.SrcDestY, pio.SrcDestOSR))
}

func (t *pioTrigger) Start() {
	if t.err != nil {
		core.DebugPrintln("trigger not started: " + t.err.Error())
		return
	}
	t.sm.SetEnabled(true)
}

// CounterBits keeps 2*(rc+1) within the 32-bit scratch register
func (t *pioTrigger) CounterBits() uint8 { return 31 }

func (t *pioTrigger) ClockFrequency() uint32 { return t.clock }

// pioDAC is the data side: the TX FIFO is the conversion request register.
type pioDAC struct {
	sm   pio.StateMachine
	base machine.Pin
}

func newPIODAC(sm pio.StateMachine, base machine.Pin) *pioDAC {
	return &pioDAC{sm: sm, base: base}
}

func (d *pioDAC) Init(cfg core.DACConfig) error {
	if cfg.Channel != 0 {
		return errors.New("rp2040: the ladder has a single channel")
	}
	if int(d.base)+ladderBits > 30 {
		return errLadderPins
	}

	pinCfg := machine.PinConfig{Mode: d.sm.PIO().PinMode()}
	for i := machine.Pin(0); i < ladderBits; i++ {
		(d.base + i).Configure(pinCfg)
	}
	return nil
}

func (d *pioDAC) Ready() bool {
	return !d.sm.IsTxFIFOFull()
}

func (d *pioDAC) Write(v core.DACValue) {
	d.sm.TxPut(uint32(v))
}

func (d *pioDAC) MaxValue() core.DACValue {
	return 1<<ladderBits - 1
}
