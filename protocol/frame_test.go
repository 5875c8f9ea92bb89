package protocol

import (
	"bytes"
	"testing"
)

func TestAppendFrameLayout(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}
	frame, err := AppendFrame(nil, 3, payload)
	if err != nil {
		t.Fatalf("AppendFrame: %v", err)
	}

	if len(frame) != len(payload)+MessageLengthMin {
		t.Fatalf("expected %d bytes, got %d", len(payload)+MessageLengthMin, len(frame))
	}
	if frame[MessagePositionLen] != byte(len(frame)) {
		t.Errorf("length byte = %d, want %d", frame[MessagePositionLen], len(frame))
	}
	if frame[MessagePositionSeq] != MessageDest|3 {
		t.Errorf("sequence byte = 0x%02X, want 0x13", frame[MessagePositionSeq])
	}
	if frame[len(frame)-1] != MessageValueSync {
		t.Errorf("missing trailing sync byte")
	}

	got, seq, err := ParseFrame(frame)
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if seq != 3 || !bytes.Equal(got, payload) {
		t.Errorf("ParseFrame = %v seq %d, want %v seq 3", got, seq, payload)
	}
}

func TestAppendFrameTooLarge(t *testing.T) {
	payload := make([]byte, MessageLengthMax-MessageLengthMin+1)
	if _, err := AppendFrame(nil, 0, payload); err != ErrFrameTooLarge {
		t.Errorf("expected ErrFrameTooLarge, got %v", err)
	}
	if _, err := AppendFrame(nil, 0, payload[1:]); err != nil {
		t.Errorf("largest payload rejected: %v", err)
	}
}

func TestParseFrameErrors(t *testing.T) {
	good, _ := AppendFrame(nil, 1, []byte{0xAA, 0xBB})

	corrupt := func(i int, v byte) []byte {
		b := append([]byte(nil), good...)
		b[i] = v
		return b
	}

	testCases := []struct {
		name string
		data []byte
		err  error
	}{
		{"short", good[:3], ErrFrameShort},
		{"truncated", good[:len(good)-1], ErrFrameShort},
		{"length", corrupt(0, 2), ErrFrameLength},
		{"sequence", corrupt(1, 0x21), ErrFrameSequence},
		{"sync", corrupt(len(good)-1, 0x00), ErrFrameSync},
		{"crc", corrupt(2, 0xAB), ErrFrameCRC},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := ParseFrame(tc.data); err != tc.err {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestDecoderResync(t *testing.T) {
	f1, _ := AppendFrame(nil, 1, []byte{0x11})
	f2, _ := AppendFrame(nil, 2, []byte{0x22, 0x23})

	bad := append([]byte(nil), f1...)
	bad[2] ^= 0xFF

	var stream []byte
	stream = append(stream, 0x00, 0x42, MessageValueSync) // line noise
	stream = append(stream, bad...)
	stream = append(stream, f1...)
	stream = append(stream, f2...)

	var d Decoder
	// Feed in small chunks to exercise partial frames
	var payloads [][]byte
	for i := 0; i < len(stream); i += 3 {
		end := i + 3
		if end > len(stream) {
			end = len(stream)
		}
		d.Write(stream[i:end])
		for {
			p, _, ok := d.Next()
			if !ok {
				break
			}
			payloads = append(payloads, append([]byte(nil), p...))
		}
	}

	if len(payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d: %v", len(payloads), payloads)
	}
	if !bytes.Equal(payloads[0], []byte{0x11}) || !bytes.Equal(payloads[1], []byte{0x22, 0x23}) {
		t.Errorf("unexpected payloads %v", payloads)
	}
	if d.Dropped() != 3+len(bad) {
		t.Errorf("dropped %d bytes, want %d", d.Dropped(), 3+len(bad))
	}
}
