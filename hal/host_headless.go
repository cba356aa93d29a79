package hal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"
)

// AppFactory builds the engine on top of a HAL and returns its step function.
//
// The step function is always called from the host's update loop, never concurrently.
type AppFactory func(HAL) (step func() error, err error)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
	Host  HostConfig

	// Frame, if set, receives the last posted frame when the run ends.
	Frame func(*image.RGBA)
}

// maxShutdownSteps bounds how long teardown may take after the stop sequence is emitted.
const maxShutdownSteps = 16

// RunHeadless runs the engine without opening a window.
func RunHeadless(ctx context.Context, log *zap.Logger, cfg HeadlessConfig, newApp AppFactory) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := newHost(log, cfg.Host)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	defer func() {
		if cfg.Frame != nil {
			if img := h.surface.frame(); img != nil {
				cfg.Frame(img)
			}
		}
	}()

	h.start()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			if err := shutdown(h, step); err != nil {
				return err
			}
			return ctx.Err()
		case <-t.C:
			h.t.step()
			if err := step(); err != nil {
				if errors.Is(err, ErrStopped) {
					return nil
				}
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return shutdown(h, step)
			}
		}
	}
}

func shutdown(h *hostHAL, step func() error) error {
	h.stop()
	for i := 0; i < maxShutdownSteps; i++ {
		if err := step(); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}
	}
	h.log.Warn("engine did not stop after teardown", zap.Int("steps", maxShutdownSteps))
	return nil
}
