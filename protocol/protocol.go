// Package protocol implements the framing used for the boot status report.
// Frames follow the Klipper message block layout so the same
// tooling can read them.
package protocol

// Version is the duedds firmware version
const Version = "0.1.0"

// Message block layout:
//
//	[len][seq|0x10][payload...][crc16 hi][crc16 lo][0x7E]
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10
	MessageSeqMask     = 0x0F
)

// Message identifiers (first VLQ of a payload)
const (
	MsgStatus = 1 // dds_status: running configuration, sent once at boot
)
