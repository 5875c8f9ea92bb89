package protocol

import (
	"math"
	"testing"
)

func TestStatusRoundTrip(t *testing.T) {
	want := Status{
		Waveform:        "sine",
		SignalFrequency: 1000,
		TableSize:       1024,
		TimerClock:      42000000,
		Compare:         20,
		DACMax:          4095,
	}

	frame, err := AppendFrame(nil, 0, want.AppendPayload(nil))
	if err != nil {
		t.Fatalf("status does not fit a frame: %v", err)
	}
	payload, _, err := ParseFrame(frame)
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}

	got, err := DecodeStatus(payload)
	if err != nil {
		t.Fatalf("DecodeStatus: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestStatusSignalHz(t *testing.T) {
	s := Status{TableSize: 1024, TimerClock: 42000000, Compare: 20}
	if hz := s.SignalHz(); math.Abs(hz-976.5625) > 1e-9 {
		t.Errorf("SignalHz = %f, want 976.5625", hz)
	}
	if hz := (Status{}).SignalHz(); hz != 0 {
		t.Errorf("empty status SignalHz = %f", hz)
	}
}

func TestDecodeStatusErrors(t *testing.T) {
	if _, err := DecodeStatus(AppendVLQUint(nil, 9)); err != ErrUnexpectedMessage {
		t.Errorf("expected ErrUnexpectedMessage, got %v", err)
	}

	full := Status{Waveform: "saw", TableSize: 8}.AppendPayload(nil)
	if _, err := DecodeStatus(full[:len(full)-1]); err != ErrBufferTooSmall {
		t.Errorf("truncated payload: expected ErrBufferTooSmall, got %v", err)
	}
}
