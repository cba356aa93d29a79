package proto

import (
	"encoding/binary"
	"math"
)

// VisibilityPayload encodes a MsgVisibility payload.
//
// Layout:
//   - u8: 1 visible, 0 hidden
func VisibilityPayload(visible bool) []byte {
	if visible {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeVisibilityPayload decodes a VisibilityPayload.
func DecodeVisibilityPayload(payload []byte) (visible bool, ok bool) {
	if len(payload) < 1 {
		return false, false
	}
	return payload[0] != 0, true
}

// SurfacePayload encodes a MsgSurfaceChanged payload.
//
// Layout (little-endian):
//   - u32: width
//   - u32: height
func SurfacePayload(width, height int) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(max(width, 0)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(max(height, 0)))
	return buf
}

// DecodeSurfacePayload decodes a SurfacePayload.
func DecodeSurfacePayload(payload []byte) (width, height int, ok bool) {
	if len(payload) < 8 {
		return 0, 0, false
	}
	width = int(binary.LittleEndian.Uint32(payload[0:4]))
	height = int(binary.LittleEndian.Uint32(payload[4:8]))
	return width, height, true
}

// OffsetsPayload encodes a MsgOffsets payload.
//
// Layout (little-endian):
//   - u32: x offset, IEEE-754 bits
//   - u32: y offset, IEEE-754 bits
func OffsetsPayload(x, y float32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	return buf
}

// DecodeOffsetsPayload decodes an OffsetsPayload.
func DecodeOffsetsPayload(payload []byte) (x, y float32, ok bool) {
	if len(payload) < 8 {
		return 0, 0, false
	}
	x = math.Float32frombits(binary.LittleEndian.Uint32(payload[0:4]))
	y = math.Float32frombits(binary.LittleEndian.Uint32(payload[4:8]))
	return x, y, true
}
