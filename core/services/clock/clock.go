package clocksvc

import (
	"time"

	"bitday/core/kernel"
	"bitday/core/proto"
	"bitday/hal"

	"go.uber.org/zap"
)

const (
	maxSubscribers = 8

	// DefaultPollTicks is the poll period in kernel ticks (1 tick = 1ms).
	DefaultPollTicks = 1000
)

// Service watches the wall clock and notifies subscribers of minute ticks and clock jumps.
type Service struct {
	log *zap.Logger
	clk hal.Clock

	ep        kernel.Capability
	pollTicks uint64

	subs [maxSubscribers]kernel.Capability

	primed   bool
	nextPoll uint64
	lastTick uint64
	lastWall time.Time
	last     proto.ClockReading
}

// New returns a clock service receiving requests on ep. ep needs both rights: the
// service sends notifications from it.
func New(log *zap.Logger, clk hal.Clock, ep kernel.Capability, pollTicks uint64) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if pollTicks == 0 {
		pollTicks = DefaultPollTicks
	}
	return &Service{log: log, clk: clk, ep: ep, pollTicks: pollTicks}
}

func (s *Service) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(s.ep)
		if !ok {
			break
		}
		s.handle(ctx, msg)
	}

	if s.subscribers() == 0 {
		s.primed = false
		ctx.BlockOn(s.ep)
		return
	}

	now := ctx.NowTick()
	if !s.primed || now >= s.nextPoll {
		s.poll(ctx, now)
		s.nextPoll = now + s.pollTicks
	}
	ctx.BlockOnTick()
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgClockSubscribe:
		if !msg.Cap.Valid() {
			return
		}
		if !s.subscribe(msg.Cap) {
			payload := proto.ErrorPayload(proto.ErrOverflow, proto.MsgClockSubscribe, nil)
			_ = ctx.Send(s.ep, msg.Cap, uint16(proto.MsgError), payload)
			s.log.Warn("clock subscriber table full", zap.Int("max", maxSubscribers))
		}
	case proto.MsgClockUnsubscribe:
		if !msg.Cap.Valid() {
			return
		}
		s.unsubscribe(msg.Cap)
	default:
		s.log.Debug("clock: unexpected message", zap.Stringer("kind", proto.Kind(msg.Kind)))
	}
}

func (s *Service) subscribe(c kernel.Capability) bool {
	free := -1
	for i, sub := range s.subs {
		if sub == c {
			return true
		}
		if !sub.Valid() && free < 0 {
			free = i
		}
	}
	if free < 0 {
		return false
	}
	s.subs[free] = c
	return true
}

func (s *Service) unsubscribe(c kernel.Capability) {
	for i := range s.subs {
		if s.subs[i] == c {
			s.subs[i] = kernel.Capability{}
		}
	}
}

func (s *Service) subscribers() int {
	n := 0
	for _, sub := range s.subs {
		if sub.Valid() {
			n++
		}
	}
	return n
}

func (s *Service) poll(ctx *kernel.Context, tick uint64) {
	if s.clk == nil {
		return
	}
	wall := s.clk.Now()
	r := proto.ReadingOf(wall)

	if !s.primed {
		s.primed = true
		s.remember(tick, wall, r)
		return
	}

	switch {
	case s.jumped(tick, wall, r):
		s.log.Info("clock changed",
			zap.Time("from", s.lastWall),
			zap.Time("to", wall),
			zap.Int32("offset", r.Offset),
		)
		s.broadcast(ctx, proto.MsgTimeChanged, r)
	case r.Minute != s.last.Minute || r.Hour != s.last.Hour:
		s.broadcast(ctx, proto.MsgTimeTick, r)
	}
	s.remember(tick, wall, r)
}

// jumped reports a wall-clock change that elapsed kernel time does not explain.
func (s *Service) jumped(tick uint64, wall time.Time, r proto.ClockReading) bool {
	if r.Offset != s.last.Offset {
		return true
	}
	if wall.Before(s.lastWall) {
		return true
	}
	expected := s.lastWall.Add(time.Duration(tick-s.lastTick) * time.Millisecond)
	drift := wall.Sub(expected)
	if drift < 0 {
		drift = -drift
	}
	return drift > 2*time.Duration(s.pollTicks)*time.Millisecond
}

func (s *Service) remember(tick uint64, wall time.Time, r proto.ClockReading) {
	s.lastTick = tick
	s.lastWall = wall
	s.last = r
}

func (s *Service) broadcast(ctx *kernel.Context, kind proto.Kind, r proto.ClockReading) {
	payload := proto.ClockPayload(r)
	for i, sub := range s.subs {
		if !sub.Valid() {
			continue
		}
		switch res := ctx.SendCapResult(s.ep, sub, uint16(kind), payload, kernel.Capability{}); res {
		case kernel.SendOK:
		case kernel.SendErrQueueFull:
			s.log.Debug("clock notification dropped", zap.Stringer("kind", kind))
		default:
			s.log.Warn("clock subscriber removed", zap.Stringer("result", res))
			s.subs[i] = kernel.Capability{}
		}
	}
}
