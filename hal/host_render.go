package hal

import (
	"errors"
	"image"

	"go.uber.org/zap"
)

// ErrNoFrame is returned by RenderFrame when the engine never posted a frame.
var ErrNoFrame = errors.New("hal: no frame posted")

// maxRenderSteps bounds how many steps a one-shot render may take to post its first frame.
const maxRenderSteps = 8

// RenderFrame runs the engine just long enough to post one frame and returns it.
//
// The host reports its usual start sequence followed by events, so the frame reflects
// them (e.g. parallax offsets). The engine is torn down before returning.
func RenderFrame(log *zap.Logger, cfg HostConfig, newApp AppFactory, events ...LifecycleEvent) (*image.RGBA, error) {
	h := newHost(log, cfg)
	step, err := newApp(h)
	if err != nil {
		return nil, err
	}

	h.start()
	for _, ev := range events {
		h.shell.emit(ev)
	}

	for i := 0; i < maxRenderSteps && h.surface.postCount() == 0; i++ {
		h.t.step()
		if err := step(); err != nil {
			if errors.Is(err, ErrStopped) {
				break
			}
			return nil, err
		}
	}

	img := h.surface.frame()
	posted := h.surface.postCount() > 0
	if err := shutdown(h, step); err != nil {
		return nil, err
	}
	if !posted || img == nil {
		return nil, ErrNoFrame
	}
	return img, nil
}
