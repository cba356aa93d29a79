package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"bitday/app"
	"bitday/core/render"
	"bitday/internal/prefs"

	"go.uber.org/zap"
)

type solidImages struct {
	asked    []render.Bucket
	released bool
}

func (s *solidImages) Image(b render.Bucket) (image.Image, error) {
	s.asked = append(s.asked, b)
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img, nil
}

func (s *solidImages) Release() { s.released = true }

func TestRenderFrameUsesHourBucket(t *testing.T) {
	src := &solidImages{}
	store := &prefs.MemoryStore{}
	cfg := app.Config{Images: src, Prefs: store, Policy: render.PolicyCover}
	img, err := renderFrame(zap.NewNop(), cfg, fixedHour(5), 18, 32, render.CenteredOffsets)
	if err != nil {
		t.Fatalf("renderFrame: %v", err)
	}
	if len(src.asked) != 1 || src.asked[0] != render.EarlyMorning {
		t.Fatalf("asked = %v, want [%s]", src.asked, render.EarlyMorning)
	}
	if got := img.Bounds().Size(); got != image.Pt(18, 32) {
		t.Fatalf("size = %v, want 18x32", got)
	}
	if c := img.RGBAAt(9, 16); c.R < 150 || c.A != 0xFF {
		t.Fatalf("centre pixel = %v, want scene colour", c)
	}
	if !src.released {
		t.Fatal("images not released after render")
	}
	if store.Saves != 0 {
		t.Fatalf("prefs saves = %d, want 0 for a one-off render", store.Saves)
	}
}

func TestRenderFrameFillHeightLeavesBlackBars(t *testing.T) {
	cfg := app.Config{Images: &solidImages{}, Policy: render.PolicyFillHeight}
	img, err := renderFrame(zap.NewNop(), cfg, fixedHour(12), 40, 6, render.CenteredOffsets)
	if err != nil {
		t.Fatalf("renderFrame: %v", err)
	}
	if c := img.RGBAAt(0, 3); c != (color.RGBA{A: 0xFF}) {
		t.Fatalf("left bar = %v, want black", c)
	}
	if c := img.RGBAAt(20, 3); c.R < 150 {
		t.Fatalf("centre = %v, want scene colour", c)
	}
}

func TestRenderFrameRejectsEmptySurface(t *testing.T) {
	cfg := app.Config{Images: &solidImages{}, Policy: render.PolicyCover}
	_, err := renderFrame(zap.NewNop(), cfg, fixedHour(0), 0, 10, render.CenteredOffsets)
	if !errors.Is(err, render.ErrEmptyTarget) {
		t.Fatalf("err = %v, want ErrEmptyTarget", err)
	}
}

func TestRenderFrameWithoutImages(t *testing.T) {
	_, err := renderFrame(zap.NewNop(), app.Config{}, fixedHour(0), 4, 4, render.CenteredOffsets)
	if !errors.Is(err, app.ErrNoImages) {
		t.Fatalf("err = %v, want ErrNoImages", err)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "frame.png")
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
}
