package proto

import (
	"encoding/binary"
	"time"
)

// ClockReading is the wall-clock snapshot carried by MsgTimeTick and MsgTimeChanged.
type ClockReading struct {
	Unix   int64
	Hour   uint8
	Minute uint8
	// Offset is the zone offset east of UTC in seconds.
	Offset int32
}

// ReadingOf captures t in its own location.
func ReadingOf(t time.Time) ClockReading {
	_, off := t.Zone()
	return ClockReading{
		Unix:   t.Unix(),
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Offset: int32(off),
	}
}

// ClockPayload encodes a MsgTimeTick or MsgTimeChanged payload.
//
// Layout (little-endian):
//   - u64: unix seconds
//   - u8: local hour
//   - u8: local minute
//   - i32: zone offset seconds
func ClockPayload(r ClockReading) []byte {
	buf := make([]byte, 14)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(r.Unix))
	buf[8] = r.Hour
	buf[9] = r.Minute
	binary.LittleEndian.PutUint32(buf[10:14], uint32(r.Offset))
	return buf
}

// DecodeClockPayload decodes a ClockPayload.
func DecodeClockPayload(payload []byte) (ClockReading, bool) {
	if len(payload) < 14 {
		return ClockReading{}, false
	}
	r := ClockReading{
		Unix:   int64(binary.LittleEndian.Uint64(payload[0:8])),
		Hour:   payload[8],
		Minute: payload[9],
		Offset: int32(binary.LittleEndian.Uint32(payload[10:14])),
	}
	if r.Hour > 23 || r.Minute > 59 {
		return ClockReading{}, false
	}
	return r, true
}
