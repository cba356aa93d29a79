package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"bitday/app"
	"bitday/core/render"
	"bitday/hal"
	"bitday/internal/prefs"

	"go.uber.org/zap"
)

// fixedHour returns today's date at hour:00 in the local zone.
func fixedHour(hour int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
}

// renderFrame runs the engine once on an off-screen w×h surface with the clock pinned
// to at and returns the posted frame. Prefs are never written by a one-off render.
func renderFrame(log *zap.Logger, cfg app.Config, at time.Time, w, h int, off render.Offsets) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: surface %dx%d: %w", w, h, render.ErrEmptyTarget)
	}
	cfg.Prefs = prefs.Discard{}
	cfg.Cache = render.NewSingleCache()

	host := hal.HostConfig{
		Width:  w,
		Height: h,
		Now:    func() time.Time { return at },
	}
	off = off.Clamp()
	img, err := hal.RenderFrame(log, host, app.Factory(cfg), hal.Offsets(off.X, off.Y))
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
