package protocol

// crcPoly is 0x1021 bit-reversed
const crcPoly = 0x8408

// CRC16 is CRC-16/MCRF4XX: reflected CCITT polynomial, initial value
// 0xFFFF, no final XOR. Klipper computes the same sum with a nibble-wise
// update.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b)
		for bit := 0; bit < 8; bit++ {
			if crc&1 != 0 {
				crc = crc>>1 ^ crcPoly
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
