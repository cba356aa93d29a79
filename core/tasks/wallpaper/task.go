package wallpaper

import (
	"errors"
	"image"

	clockclient "bitday/core/client/clock"
	"bitday/core/kernel"
	"bitday/core/proto"
	"bitday/core/render"
	"bitday/hal"
	"bitday/internal/prefs"

	"go.uber.org/zap"
)

// ImageSource supplies the source image for a bucket.
type ImageSource interface {
	Image(b render.Bucket) (image.Image, error)
	Release()
}

// Options wires the task to its collaborators.
type Options struct {
	Log     *zap.Logger
	Display hal.Display
	Clock   hal.Clock
	Images  ImageSource
	Cache   render.Cache
	// Prefs receives the last drawn size and hour after every rescale. Nil disables it.
	Prefs   prefs.Store
	Policy  render.Policy
	Preview bool
}

// Task draws the wallpaper for the current hour whenever the engine is visible.
//
// It receives lifecycle messages and clock notifications on one endpoint.
type Task struct {
	log  *zap.Logger
	disp hal.Display
	clk  hal.Clock

	ep       kernel.Capability
	clockCap kernel.Capability

	images  ImageSource
	cache   render.Cache
	prefs   prefs.Store
	policy  render.Policy
	preview bool

	state         State
	redrawPending bool
	subscribed    bool

	width    int
	height   int
	offsets  render.Offsets
	lastHour int
	saved    lastSeen

	stats Stats
}

// lastSeen is what was last written to prefs.
type lastSeen struct {
	width, height, hour int
}

// New returns a task receiving on ep. ep needs both rights: clock notifications are
// addressed to it. clockCap may be invalid, in which case the hour is only re-read on
// lifecycle events.
func New(ep, clockCap kernel.Capability, opts Options) *Task {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	cache := opts.Cache
	if cache == nil {
		cache = render.NewSingleCache()
	}
	store := opts.Prefs
	if store == nil {
		store = prefs.Discard{}
	}
	return &Task{
		log:      log,
		disp:     opts.Display,
		clk:      opts.Clock,
		ep:       ep,
		clockCap: clockCap,
		images:   opts.Images,
		cache:    cache,
		prefs:    store,
		policy:   opts.Policy,
		preview:  opts.Preview,
		offsets:  render.CenteredOffsets,
		lastHour: -1,
	}
}

// State returns the current lifecycle state.
func (t *Task) State() State { return t.state }

// Stats returns draw counters.
func (t *Task) Stats() Stats { return t.stats }

func (t *Task) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(t.ep)
		if !ok {
			break
		}
		t.handle(ctx, msg)
		if t.state == Destroyed {
			ctx.Exit()
			return
		}
	}

	if t.state == Visible && !t.subscribed {
		t.subscribe(ctx)
	}
	if t.redrawPending && t.state == Visible {
		t.redrawPending = false
		t.redraw()
	}
	ctx.BlockOn(t.ep)
}

func (t *Task) handle(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgEngineCreate:
		t.log.Debug("engine created", zap.Bool("preview", t.preview))

	case proto.MsgVisibility:
		visible, ok := proto.DecodeVisibilityPayload(msg.Payload())
		if !ok {
			return
		}
		t.setVisible(ctx, visible)

	case proto.MsgSurfaceChanged:
		w, h, ok := proto.DecodeSurfacePayload(msg.Payload())
		if !ok {
			return
		}
		t.width, t.height = w, h
		t.log.Debug("surface changed", zap.Int("width", w), zap.Int("height", h))
		t.scheduleRedraw()

	case proto.MsgSurfaceDestroyed:
		t.setVisible(ctx, false)
		t.width, t.height = 0, 0
		t.cache.Purge()

	case proto.MsgOffsets:
		x, y, ok := proto.DecodeOffsetsPayload(msg.Payload())
		if !ok {
			return
		}
		off := render.Offsets{X: x, Y: y}.Clamp()
		if off == t.offsets {
			return
		}
		t.offsets = off
		t.scheduleRedraw()

	case proto.MsgTimeTick, proto.MsgTimeChanged, proto.MsgError:
		t.handleClock(msg)

	case proto.MsgEngineDestroy:
		t.destroy(ctx)
	}
}

func (t *Task) handleClock(msg kernel.Message) {
	r, changed, ok, err := clockclient.Notification(msg)
	if err != nil {
		var re *proto.RemoteError
		if errors.As(err, &re) && re.Ref == proto.MsgClockSubscribe {
			t.subscribed = false
		}
		t.log.Warn("clock service error", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if changed {
		t.log.Info("clock changed", zap.Uint8("hour", r.Hour), zap.Int32("offset", r.Offset))
		t.scheduleRedraw()
		return
	}
	if int(r.Hour) != t.lastHour {
		t.scheduleRedraw()
	}
}

func (t *Task) setVisible(ctx *kernel.Context, visible bool) {
	switch {
	case visible && t.state == Hidden:
		t.state = Visible
		t.subscribe(ctx)
		t.scheduleRedraw()
	case !visible && t.state == Visible:
		t.state = Hidden
		t.redrawPending = false
		t.unsubscribe(ctx)
	}
}

// scheduleRedraw requests one redraw on this step. Requests while hidden are dropped.
func (t *Task) scheduleRedraw() {
	if t.state != Visible {
		return
	}
	t.redrawPending = true
}

func (t *Task) subscribe(ctx *kernel.Context) {
	if t.subscribed || !t.clockCap.Valid() {
		return
	}
	if err := clockclient.Subscribe(ctx, t.clockCap, t.ep); err != nil {
		if !errors.Is(err, clockclient.ErrBusy) {
			t.log.Warn("clock subscribe failed", zap.Error(err))
		}
		return
	}
	t.subscribed = true
}

func (t *Task) unsubscribe(ctx *kernel.Context) {
	if !t.subscribed {
		return
	}
	if err := clockclient.Unsubscribe(ctx, t.clockCap, t.ep); err != nil {
		t.log.Warn("clock unsubscribe failed", zap.Error(err))
	}
	t.subscribed = false
}

func (t *Task) destroy(ctx *kernel.Context) {
	t.unsubscribe(ctx)
	t.state = Destroyed
	t.redrawPending = false
	t.cache.Purge()
	if t.images != nil {
		t.images.Release()
	}
	t.log.Debug("engine destroyed",
		zap.Int("draws", t.stats.Draws),
		zap.Int("scales", t.stats.Scales),
		zap.Int("skips", t.stats.Skips),
	)
}

// savePrefs records the drawn frame. Failures are logged and reported as false.
func (t *Task) savePrefs(w, h, hour int, b render.Bucket) bool {
	p := prefs.Prefs{Width: w, Height: h, Hour: hour, Bucket: b.String()}
	if t.clk != nil {
		p.UpdatedAt = t.clk.Now()
	}
	if err := t.prefs.Save(p); err != nil {
		t.log.Warn("prefs save failed", zap.Error(err))
		return false
	}
	return true
}
