package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgError Kind = iota + 1

	// Engine lifecycle, posted by the host pump to the wallpaper task.
	MsgEngineCreate
	MsgVisibility
	MsgSurfaceChanged
	MsgSurfaceDestroyed
	MsgOffsets
	MsgEngineDestroy

	// Clock service.
	MsgClockSubscribe
	MsgClockUnsubscribe
	MsgTimeTick
	MsgTimeChanged
)

// ErrCode is a generic error category for MsgError responses.
type ErrCode uint16

const (
	ErrUnknown ErrCode = iota
	ErrBadMessage
	ErrNotFound
	ErrBusy
	ErrOverflow
	ErrInternal
)

func (c ErrCode) String() string {
	switch c {
	case ErrUnknown:
		return "unknown"
	case ErrBadMessage:
		return "bad_message"
	case ErrNotFound:
		return "not_found"
	case ErrBusy:
		return "busy"
	case ErrOverflow:
		return "overflow"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}

func (k Kind) String() string {
	switch k {
	case MsgError:
		return "error"
	case MsgEngineCreate:
		return "engine_create"
	case MsgVisibility:
		return "visibility"
	case MsgSurfaceChanged:
		return "surface_changed"
	case MsgSurfaceDestroyed:
		return "surface_destroyed"
	case MsgOffsets:
		return "offsets"
	case MsgEngineDestroy:
		return "engine_destroy"
	case MsgClockSubscribe:
		return "clock_subscribe"
	case MsgClockUnsubscribe:
		return "clock_unsubscribe"
	case MsgTimeTick:
		return "time_tick"
	case MsgTimeChanged:
		return "time_changed"
	default:
		return "unknown"
	}
}
