package clock

import (
	"errors"
	"fmt"

	"bitday/core/kernel"
	"bitday/core/proto"
)

// ErrBusy is returned when the clock service mailbox is full; retry on a later step.
var ErrBusy = errors.New("clock: service busy")

// Subscribe asks the clock service to send MsgTimeTick and MsgTimeChanged to reply.
//
// Subscribing the same reply endpoint twice is a no-op.
func Subscribe(ctx *kernel.Context, clockCap, reply kernel.Capability) error {
	return request(ctx, clockCap, proto.MsgClockSubscribe, reply)
}

// Unsubscribe stops notifications to reply.
func Unsubscribe(ctx *kernel.Context, clockCap, reply kernel.Capability) error {
	return request(ctx, clockCap, proto.MsgClockUnsubscribe, reply)
}

func request(ctx *kernel.Context, clockCap kernel.Capability, kind proto.Kind, reply kernel.Capability) error {
	if ctx == nil {
		return fmt.Errorf("clock %s: nil context", kind)
	}
	replySend := reply.Restrict(kernel.RightSend)
	if !replySend.Valid() {
		return fmt.Errorf("clock %s: invalid reply capability", kind)
	}

	switch res := ctx.SendToCapResult(clockCap, uint16(kind), nil, replySend); res {
	case kernel.SendOK:
		return nil
	case kernel.SendErrQueueFull:
		return ErrBusy
	default:
		return fmt.Errorf("clock %s: %s", kind, res)
	}
}

// Notification decodes a message sent by the clock service.
//
// changed is true for MsgTimeChanged. ok is false for any other message, including
// malformed payloads. A MsgError reply is returned as err.
func Notification(msg kernel.Message) (r proto.ClockReading, changed bool, ok bool, err error) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgTimeTick, proto.MsgTimeChanged:
		r, ok = proto.DecodeClockPayload(msg.Payload())
		return r, proto.Kind(msg.Kind) == proto.MsgTimeChanged, ok, nil
	case proto.MsgError:
		if re, ok := proto.AsError(msg.Payload()); ok {
			return proto.ClockReading{}, false, false, re
		}
		return proto.ClockReading{}, false, false, fmt.Errorf("clock: bad error payload")
	default:
		return proto.ClockReading{}, false, false, nil
	}
}
