package protocol

import "errors"

var (
	ErrFrameTooLarge = errors.New("payload does not fit a message block")
	ErrFrameLength   = errors.New("invalid message block length")
	ErrFrameSequence = errors.New("invalid message block sequence byte")
	ErrFrameSync     = errors.New("missing message block sync byte")
	ErrFrameCRC      = errors.New("message block CRC mismatch")
	ErrFrameShort    = errors.New("incomplete message block")
)

// AppendFrame wraps payload in a message block with sequence seq.
func AppendFrame(dst []byte, seq uint8, payload []byte) ([]byte, error) {
	n := len(payload) + MessageHeaderSize + MessageTrailerSize
	if n > MessageLengthMax {
		return dst, ErrFrameTooLarge
	}

	start := len(dst)
	dst = append(dst, byte(n), MessageDest|seq&MessageSeqMask)
	dst = append(dst, payload...)
	crc := CRC16(dst[start:])
	return append(dst, byte(crc>>8), byte(crc), MessageValueSync), nil
}

// ParseFrame decodes the message block at the start of data. The returned
// payload aliases data. ErrFrameShort means more bytes are needed; any
// other error means data does not start with a valid block.
func ParseFrame(data []byte) (payload []byte, seq uint8, err error) {
	if len(data) < MessageLengthMin {
		return nil, 0, ErrFrameShort
	}

	n := int(data[MessagePositionLen])
	if n < MessageLengthMin || n > MessageLengthMax {
		return nil, 0, ErrFrameLength
	}
	seq = data[MessagePositionSeq]
	if seq&^MessageSeqMask != MessageDest {
		return nil, 0, ErrFrameSequence
	}
	if len(data) < n {
		return nil, 0, ErrFrameShort
	}
	if data[n-MessageTrailerSync] != MessageValueSync {
		return nil, 0, ErrFrameSync
	}

	want := uint16(data[n-MessageTrailerCRC])<<8 | uint16(data[n-MessageTrailerCRC+1])
	if CRC16(data[:n-MessageTrailerSize]) != want {
		return nil, 0, ErrFrameCRC
	}
	return data[MessageHeaderSize : n-MessageTrailerSize], seq & MessageSeqMask, nil
}

// Decoder pulls message blocks out of a byte stream, resynchronizing on
// the sync byte after garbage or corrupted blocks.
type Decoder struct {
	buf     []byte
	dropped int
}

// Write appends received bytes. It never fails.
func (d *Decoder) Write(p []byte) (int, error) {
	d.buf = append(d.buf, p...)
	return len(p), nil
}

// Next returns the next complete payload, or ok=false when more input is
// needed. The payload stays valid until the next call to Write.
func (d *Decoder) Next() (payload []byte, seq uint8, ok bool) {
	for len(d.buf) > 0 {
		if d.buf[0] == MessageValueSync {
			d.buf = d.buf[1:]
			continue
		}

		payload, seq, err := ParseFrame(d.buf)
		switch err {
		case nil:
			d.buf = d.buf[int(d.buf[MessagePositionLen]):]
			return payload, seq, true
		case ErrFrameShort:
			return nil, 0, false
		}

		// Skip up to and including the next sync byte
		skip := len(d.buf)
		for i, b := range d.buf {
			if b == MessageValueSync {
				skip = i + 1
				break
			}
		}
		d.dropped += skip
		d.buf = d.buf[skip:]
	}
	return nil, 0, false
}

// Dropped returns the number of bytes discarded while resynchronizing
func (d *Decoder) Dropped() int {
	return d.dropped
}
