package protocol

import "errors"

var (
	ErrInvalidVLQ     = errors.New("invalid VLQ encoding")
	ErrBufferTooSmall = errors.New("buffer too small for VLQ")
)

// AppendVLQInt appends v in Klipper's variable length encoding: 7 bits per
// byte, most significant group first, continuation bit 0x80, and a
// sign-extension hint in bits 5-6 of the first byte.
func AppendVLQInt(dst []byte, v int32) []byte {
	if !(-(1<<26) <= v && v < (3<<26)) {
		dst = append(dst, byte((v>>28)&0x7F)|0x80)
	}
	if !(-(1<<19) <= v && v < (3<<19)) {
		dst = append(dst, byte((v>>21)&0x7F)|0x80)
	}
	if !(-(1<<12) <= v && v < (3<<12)) {
		dst = append(dst, byte((v>>14)&0x7F)|0x80)
	}
	if !(-(1<<5) <= v && v < (3<<5)) {
		dst = append(dst, byte((v>>7)&0x7F)|0x80)
	}
	return append(dst, byte(v&0x7F))
}

// AppendVLQUint appends v; values above MaxInt32 round-trip bit-exact
func AppendVLQUint(dst []byte, v uint32) []byte {
	return AppendVLQInt(dst, int32(v))
}

// AppendVLQString appends a length-prefixed string
func AppendVLQString(dst []byte, s string) []byte {
	dst = AppendVLQUint(dst, uint32(len(s)))
	return append(dst, s...)
}

// DecodeVLQInt decodes one value and advances data past it
func DecodeVLQInt(data *[]byte) (int32, error) {
	buf := *data
	if len(buf) == 0 {
		return 0, ErrBufferTooSmall
	}

	c := uint32(buf[0])
	v := c & 0x7F
	if c&0x60 == 0x60 {
		v |= ^uint32(0x1F)
	}

	n := 1
	for c&0x80 != 0 {
		if n >= len(buf) {
			return 0, ErrBufferTooSmall
		}
		if n == 5 {
			return 0, ErrInvalidVLQ
		}
		c = uint32(buf[n])
		v = v<<7 | c&0x7F
		n++
	}

	*data = buf[n:]
	return int32(v), nil
}

// DecodeVLQUint decodes one unsigned value
func DecodeVLQUint(data *[]byte) (uint32, error) {
	v, err := DecodeVLQInt(data)
	return uint32(v), err
}

// DecodeVLQString decodes a length-prefixed string
func DecodeVLQString(data *[]byte) (string, error) {
	rest := *data
	n, err := DecodeVLQUint(&rest)
	if err != nil {
		return "", err
	}
	if uint32(len(rest)) < n {
		return "", ErrBufferTooSmall
	}
	*data = rest[n:]
	return string(rest[:n]), nil
}
