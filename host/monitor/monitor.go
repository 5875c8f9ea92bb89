// Package monitor reads a generator's serial output and extracts its
// status reports.
package monitor

import (
	"context"
	"errors"
	"io"

	"duedds/protocol"
)

// Report is one decoded status frame
type Report struct {
	Seq    uint8
	Status protocol.Status
}

// Monitor decodes status frames from a byte stream. Debug text printed on
// the same line is skipped by the frame decoder and counted as noise.
type Monitor struct {
	r   io.Reader
	dec protocol.Decoder
	buf []byte

	// Decoded but not yet delivered, oldest first
	pending []Report

	// OnError is called for frames that carry a payload the monitor cannot
	// decode. Optional.
	OnError func(error)
}

// New returns a monitor reading from r
func New(r io.Reader) *Monitor {
	return &Monitor{
		r:   r,
		buf: make([]byte, 256),
	}
}

// Noise returns the number of bytes that did not belong to a frame
func (m *Monitor) Noise() int {
	return m.dec.Dropped()
}

// Watch reads until ctx is cancelled or the reader fails, calling fn for
// every status report. io.EOF ends the watch without error.
func (m *Monitor) Watch(ctx context.Context, fn func(Report)) error {
	for {
		m.deliver(fn)
		if err := ctx.Err(); err != nil {
			return err
		}

		err := m.fill()
		m.deliver(fn)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Next returns the oldest report not yet returned, reading until one
// arrives. Frames decoded from the same read stay queued for later calls.
func (m *Monitor) Next(ctx context.Context) (Report, error) {
	for len(m.pending) == 0 {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		err := m.fill()
		if len(m.pending) > 0 {
			break
		}
		if errors.Is(err, io.EOF) {
			return Report{}, io.ErrUnexpectedEOF
		}
		if err != nil {
			return Report{}, err
		}
	}

	r := m.pending[0]
	m.pending = m.pending[1:]
	return r, nil
}

func (m *Monitor) deliver(fn func(Report)) {
	for len(m.pending) > 0 {
		r := m.pending[0]
		m.pending = m.pending[1:]
		fn(r)
	}
}

// fill performs one read and queues every complete frame it finished
func (m *Monitor) fill() error {
	n, err := m.r.Read(m.buf)
	if n > 0 {
		m.dec.Write(m.buf[:n])
		m.decode()
	}
	return err
}

func (m *Monitor) decode() {
	for {
		payload, seq, ok := m.dec.Next()
		if !ok {
			return
		}
		status, err := protocol.DecodeStatus(payload)
		if err != nil {
			if m.OnError != nil {
				m.OnError(err)
			}
			continue
		}
		m.pending = append(m.pending, Report{Seq: seq, Status: status})
	}
}
