package hal

import (
	"time"

	"go.uber.org/zap"
)

// HostConfig describes the desktop host.
type HostConfig struct {
	Width   int
	Height  int
	Preview bool

	// Now overrides the wall clock (tests, fixed-hour renders). Nil means time.Now.
	Now func() time.Time
}

type hostHAL struct {
	log     *zap.Logger
	surface *hostSurface
	t       *hostTime
	clock   hostClock
	shell   *hostShell
}

// New returns a host HAL implementation.
func New(log *zap.Logger, cfg HostConfig) HAL {
	return newHost(log, cfg)
}

func newHost(log *zap.Logger, cfg HostConfig) *hostHAL {
	if log == nil {
		log = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &hostHAL{
		log:     log,
		surface: newHostSurface(cfg.Width, cfg.Height),
		t:       newHostTime(now),
		clock:   hostClock{now: now},
		shell:   newHostShell(log, cfg.Preview),
	}
}

func (h *hostHAL) Logger() *zap.Logger { return h.log }
func (h *hostHAL) Display() Display    { return hostDisplay{s: h.surface} }
func (h *hostHAL) Time() Time          { return h.t }
func (h *hostHAL) Clock() Clock        { return h.clock }
func (h *hostHAL) Shell() Shell        { return h.shell }

type hostDisplay struct {
	s *hostSurface
}

func (d hostDisplay) Surface() Surface { return d.s }

type hostShell struct {
	log     *zap.Logger
	ch      chan LifecycleEvent
	preview bool
}

func newHostShell(log *zap.Logger, preview bool) *hostShell {
	return &hostShell{log: log, ch: make(chan LifecycleEvent, 256), preview: preview}
}

func (s *hostShell) Events() <-chan LifecycleEvent { return s.ch }
func (s *hostShell) IsPreview() bool               { return s.preview }

func (s *hostShell) emit(ev LifecycleEvent) {
	select {
	case s.ch <- ev:
	default:
		s.log.Warn("lifecycle event dropped", zap.Stringer("event", ev))
	}
}

// start reports the initial create/size/visible sequence every host begins with.
func (h *hostHAL) start() {
	h.shell.emit(LifecycleEvent{Kind: LifecycleCreate})
	if w, ht := h.surface.size(); w > 0 && ht > 0 {
		h.shell.emit(SurfaceChanged(w, ht))
	}
	h.shell.emit(Visibility(true))
}

// stop reports the teardown sequence: hidden, surface gone, engine destroyed.
func (h *hostHAL) stop() {
	h.shell.emit(Visibility(false))
	h.surface.destroy()
	h.shell.emit(LifecycleEvent{Kind: LifecycleSurfaceDestroyed})
	h.shell.emit(LifecycleEvent{Kind: LifecycleDestroy})
}
