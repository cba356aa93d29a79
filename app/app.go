package app

import (
	"errors"
	"fmt"

	"bitday/core/kernel"
	"bitday/core/proto"
	"bitday/core/render"
	clocksvc "bitday/core/services/clock"
	"bitday/core/tasks/wallpaper"
	"bitday/hal"
	"bitday/internal/prefs"

	"go.uber.org/zap"
)

// stepBudget bounds scheduler steps per host frame so a misbehaving task cannot stall the host.
const stepBudget = 256

var ErrNoImages = errors.New("app: no image source")

// Config selects the engine's collaborators. Zero values pick the defaults.
type Config struct {
	Images wallpaper.ImageSource
	Cache  render.Cache
	Prefs  prefs.Store
	Policy render.Policy
	// Preview forces centred offsets. The shell may also request it.
	Preview   bool
	PollTicks uint64
}

type system struct {
	h   hal.HAL
	log *zap.Logger
	k   *kernel.Kernel

	wallpaperEP kernel.Capability
	wallpaperID kernel.TaskID
	task        *wallpaper.Task
}

// New builds the kernel, the clock service and the wallpaper task on top of h, and
// returns the step function the host calls once per frame.
//
// The step function returns hal.ErrStopped after the engine has been destroyed.
func New(h hal.HAL, cfg Config) (func() error, error) {
	s, err := newSystem(h, cfg)
	if err != nil {
		return nil, err
	}
	return s.step, nil
}

// Factory adapts New to the host runners.
func Factory(cfg Config) hal.AppFactory {
	return func(h hal.HAL) (func() error, error) {
		return New(h, cfg)
	}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	if cfg.Images == nil {
		return nil, ErrNoImages
	}
	log := h.Logger()
	if log == nil {
		log = zap.NewNop()
	}
	pollTicks := cfg.PollTicks
	if pollTicks == 0 {
		pollTicks = clocksvc.DefaultPollTicks
	}
	preview := cfg.Preview
	if sh := h.Shell(); sh != nil && sh.IsPreview() {
		preview = true
	}

	k := kernel.New()
	installPanicHandler(k, log)

	clockEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	wallEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	if !clockEP.Valid() || !wallEP.Valid() {
		return nil, fmt.Errorf("app: endpoint table full")
	}

	// The service replies and broadcasts from its own endpoint, so it keeps both rights.
	if _, ok := k.AddTask(clocksvc.New(log.Named("clock"), h.Clock(), clockEP, pollTicks)); !ok {
		return nil, fmt.Errorf("app: task table full")
	}

	task := wallpaper.New(wallEP, clockEP.Restrict(kernel.RightSend), wallpaper.Options{
		Log:     log.Named("wallpaper"),
		Display: h.Display(),
		Clock:   h.Clock(),
		Images:  cfg.Images,
		Cache:   cfg.Cache,
		Prefs:   cfg.Prefs,
		Policy:  cfg.Policy,
		Preview: preview,
	})
	id, ok := k.AddTask(task)
	if !ok {
		return nil, fmt.Errorf("app: task table full")
	}

	log.Info("engine ready",
		zap.Stringer("policy", cfg.Policy),
		zap.Bool("preview", preview),
		zap.Uint64("poll_ticks", pollTicks),
	)

	return &system{
		h:           h,
		log:         log,
		k:           k,
		wallpaperEP: wallEP.Restrict(kernel.RightSend),
		wallpaperID: id,
		task:        task,
	}, nil
}

func (s *system) step() error {
	if s.k.Exited(s.wallpaperID) {
		return hal.ErrStopped
	}
	s.pumpTicks()
	s.pumpEvents()
	s.k.RunUntilIdle(stepBudget)
	if s.k.Exited(s.wallpaperID) {
		st := s.task.Stats()
		s.log.Info("engine stopped",
			zap.Int("draws", st.Draws),
			zap.Int("scales", st.Scales),
			zap.Int("skips", st.Skips),
			zap.Int("failures", st.Failures),
		)
		return hal.ErrStopped
	}
	return nil
}

func (s *system) pumpTicks() {
	t := s.h.Time()
	if t == nil {
		return
	}
	ch := t.Ticks()
	if ch == nil {
		return
	}
	for {
		select {
		case seq := <-ch:
			s.k.TickTo(seq)
		default:
			return
		}
	}
}

func (s *system) pumpEvents() {
	sh := s.h.Shell()
	if sh == nil {
		return
	}
	ch := sh.Events()
	if ch == nil {
		return
	}
	for {
		select {
		case ev := <-ch:
			s.post(ev)
		default:
			return
		}
	}
}

// post forwards one lifecycle event. A full mailbox is drained once before giving up.
func (s *system) post(ev hal.LifecycleEvent) {
	kind, payload, ok := translate(ev)
	if !ok {
		s.log.Warn("unknown lifecycle event", zap.Stringer("event", ev))
		return
	}
	res := s.k.Post(s.wallpaperEP, uint16(kind), payload)
	if res == kernel.SendErrQueueFull {
		s.k.RunUntilIdle(stepBudget)
		res = s.k.Post(s.wallpaperEP, uint16(kind), payload)
	}
	if res != kernel.SendOK {
		s.log.Warn("lifecycle event not delivered",
			zap.Stringer("event", ev),
			zap.Stringer("result", res),
		)
	}
}

func translate(ev hal.LifecycleEvent) (proto.Kind, []byte, bool) {
	switch ev.Kind {
	case hal.LifecycleCreate:
		return proto.MsgEngineCreate, nil, true
	case hal.LifecycleVisibility:
		return proto.MsgVisibility, proto.VisibilityPayload(ev.Visible), true
	case hal.LifecycleSurfaceChanged:
		return proto.MsgSurfaceChanged, proto.SurfacePayload(ev.Width, ev.Height), true
	case hal.LifecycleSurfaceDestroyed:
		return proto.MsgSurfaceDestroyed, nil, true
	case hal.LifecycleOffsets:
		return proto.MsgOffsets, proto.OffsetsPayload(ev.XOffset, ev.YOffset), true
	case hal.LifecycleDestroy:
		return proto.MsgEngineDestroy, nil, true
	default:
		return 0, nil, false
	}
}
