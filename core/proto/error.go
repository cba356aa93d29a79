package proto

import (
	"encoding/binary"
	"fmt"
)

// ErrorPayload encodes a generic error response payload.
//
// Layout (little-endian):
//   - u16: code
//   - u16: ref kind (the request kind that failed)
//   - bytes: optional detail (service-defined)
func ErrorPayload(code ErrCode, ref Kind, detail []byte) []byte {
	buf := make([]byte, 4+len(detail))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(code))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(ref))
	copy(buf[4:], detail)
	return buf
}

// DecodeErrorPayload decodes an ErrorPayload.
func DecodeErrorPayload(payload []byte) (code ErrCode, ref Kind, detail []byte, ok bool) {
	if len(payload) < 4 {
		return 0, 0, nil, false
	}
	code = ErrCode(binary.LittleEndian.Uint16(payload[0:2]))
	ref = Kind(binary.LittleEndian.Uint16(payload[2:4]))
	return code, ref, payload[4:], true
}

// RemoteError is a decoded MsgError reply.
type RemoteError struct {
	Code   ErrCode
	Ref    Kind
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Ref, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Ref, e.Code, e.Detail)
}

// AsError decodes an ErrorPayload into a RemoteError.
func AsError(payload []byte) (*RemoteError, bool) {
	code, ref, detail, ok := DecodeErrorPayload(payload)
	if !ok {
		return nil, false
	}
	return &RemoteError{Code: code, Ref: ref, Detail: string(detail)}, true
}
