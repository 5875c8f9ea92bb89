package protocol

import "errors"

var ErrUnexpectedMessage = errors.New("unexpected message id")

// Status describes the configuration the firmware is running.
// Sent once at boot, before the trigger timer starts.
type Status struct {
	Waveform        string
	SignalFrequency uint32 // Requested [Hz]
	TableSize       uint32
	TimerClock      uint32 // [Hz]
	Compare         uint32 // RA = RC
	DACMax          uint32
}

// AppendPayload appends the dds_status payload
func (s Status) AppendPayload(dst []byte) []byte {
	dst = AppendVLQUint(dst, MsgStatus)
	dst = AppendVLQString(dst, s.Waveform)
	dst = AppendVLQUint(dst, s.SignalFrequency)
	dst = AppendVLQUint(dst, s.TableSize)
	dst = AppendVLQUint(dst, s.TimerClock)
	dst = AppendVLQUint(dst, s.Compare)
	return AppendVLQUint(dst, s.DACMax)
}

// DecodeStatus parses a dds_status payload
func DecodeStatus(payload []byte) (Status, error) {
	var s Status

	id, err := DecodeVLQUint(&payload)
	if err != nil {
		return s, err
	}
	if id != MsgStatus {
		return s, ErrUnexpectedMessage
	}

	if s.Waveform, err = DecodeVLQString(&payload); err != nil {
		return s, err
	}
	for _, field := range []*uint32{&s.SignalFrequency, &s.TableSize, &s.TimerClock, &s.Compare, &s.DACMax} {
		if *field, err = DecodeVLQUint(&payload); err != nil {
			return s, err
		}
	}
	return s, nil
}

// SignalHz is the frequency the reported configuration actually produces
func (s Status) SignalHz() float64 {
	if s.TableSize == 0 {
		return 0
	}
	return float64(s.TimerClock) / float64(2*(uint64(s.Compare)+1)) / float64(s.TableSize)
}
