package wallpaper

import (
	"errors"
	"image"
	"image/color"
	"time"

	"bitday/core/render"
	"bitday/hal"
)

type fakeFB struct {
	w, h   int
	format hal.PixelFormat
	buf    []byte
}

func newFakeFB(w, h int, format hal.PixelFormat) *fakeFB {
	return &fakeFB{w: w, h: h, format: format, buf: make([]byte, w*h*format.BytesPerPixel())}
}

func (f *fakeFB) Width() int              { return f.w }
func (f *fakeFB) Height() int             { return f.h }
func (f *fakeFB) Format() hal.PixelFormat { return f.format }
func (f *fakeFB) StrideBytes() int        { return f.w * f.format.BytesPerPixel() }
func (f *fakeFB) Buffer() []byte          { return f.buf }

func (f *fakeFB) ClearRGB(r, g, b uint8) {
	switch f.format {
	case hal.PixelFormatRGBA8888:
		for i := 0; i+3 < len(f.buf); i += 4 {
			f.buf[i], f.buf[i+1], f.buf[i+2], f.buf[i+3] = r, g, b, 0xFF
		}
	case hal.PixelFormatRGB565:
		p := hal.RGB565(r, g, b)
		for i := 0; i+1 < len(f.buf); i += 2 {
			f.buf[i], f.buf[i+1] = byte(p), byte(p>>8)
		}
	}
}

func (f *fakeFB) rgbaAt(x, y int) color.RGBA {
	i := y*f.StrideBytes() + x*4
	return color.RGBA{R: f.buf[i], G: f.buf[i+1], B: f.buf[i+2], A: f.buf[i+3]}
}

type fakeSurface struct {
	fb      *fakeFB
	lockErr error
	locked  bool
	locks   int
	posts   int
}

func (s *fakeSurface) Lock() (hal.Framebuffer, error) {
	if s.lockErr != nil {
		return nil, s.lockErr
	}
	if s.locked {
		return nil, hal.ErrSurfaceNotReady
	}
	s.locked = true
	s.locks++
	return s.fb, nil
}

func (s *fakeSurface) UnlockAndPost(fb hal.Framebuffer) error {
	if !s.locked {
		return errors.New("not locked")
	}
	s.locked = false
	s.posts++
	return nil
}

type fakeDisplay struct{ s *fakeSurface }

func (d fakeDisplay) Surface() hal.Surface { return d.s }

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func atHour(h int) *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, h, 30, 0, 0, time.UTC)}
}

// fakeImages returns a two-tone image per bucket: left half red, right half blue,
// with the green channel carrying the bucket index.
type fakeImages struct {
	w, h     int
	calls    int
	released bool
	err      error
	panics   bool
}

func (f *fakeImages) Image(b render.Bucket) (image.Image, error) {
	f.calls++
	if f.panics {
		panic("decoder exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewRGBA(image.Rect(0, 0, f.w, f.h))
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			c := color.RGBA{G: uint8(b) * 20, A: 0xFF}
			if x < f.w/2 {
				c.R = 0xFF
			} else {
				c.B = 0xFF
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

func (f *fakeImages) Release() { f.released = true }
