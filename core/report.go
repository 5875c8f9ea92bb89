package core

import (
	"duedds/protocol"

	"tinygo.org/x/drivers"
)

// Reporter sends framed status messages over a UART. It is used during
// setup only; nothing is written once the feed loop runs.
type Reporter struct {
	uart drivers.UART
	seq  uint8
	buf  []byte
}

// NewReporter returns a reporter writing to uart
func NewReporter(uart drivers.UART) *Reporter {
	return &Reporter{
		uart: uart,
		buf:  make([]byte, 0, protocol.MessageLengthMax+1),
	}
}

// StatusFor describes a table played back with plan
func StatusFor(table *PhaseTable, plan TriggerPlan) protocol.Status {
	return protocol.Status{
		Waveform:        table.Waveform(),
		SignalFrequency: plan.Config.SignalFrequency,
		TableSize:       table.Len(),
		TimerClock:      plan.Config.TimerClock,
		Compare:         plan.Compare,
		DACMax:          uint32(table.Max()),
	}
}

// SendStatus frames s and writes it in one call. A sync byte goes first so
// a receiver recovers from debug text printed on the same line.
func (r *Reporter) SendStatus(s protocol.Status) error {
	frame, err := protocol.AppendFrame(append(r.buf[:0], protocol.MessageValueSync), r.seq, s.AppendPayload(nil))
	if err != nil {
		return err
	}
	r.buf = frame
	r.seq = (r.seq + 1) & protocol.MessageSeqMask

	_, err = r.uart.Write(frame)
	return err
}
