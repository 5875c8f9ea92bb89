package core

// Utoa converts an unsigned integer to a string without the fmt package.
// Targets use it for their own log lines.
func Utoa(n uint64) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// ftoa3 renders v with three decimals, rounded half away from zero.
// Only meant for log lines; large magnitudes are not supported.
func ftoa3(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	milli := uint64(v*1000 + 0.5)
	frac := milli % 1000

	s := Utoa(milli/1000) + "."
	switch {
	case frac < 10:
		s += "00"
	case frac < 100:
		s += "0"
	}
	s += Utoa(frac)

	if neg {
		return "-" + s
	}
	return s
}
