package wallpaper

import (
	"errors"
	"fmt"
	"image"

	"bitday/core/render"
	"bitday/hal"

	xdraw "golang.org/x/image/draw"
	"go.uber.org/zap"
)

func (t *Task) redraw() {
	if t.disp == nil {
		return
	}
	surf := t.disp.Surface()
	if surf == nil {
		return
	}

	fb, err := surf.Lock()
	if err != nil {
		t.stats.Skips++
		t.log.Debug("redraw skipped", zap.Error(err))
		return
	}

	t.state = Drawing
	defer func() {
		if t.state == Drawing {
			t.state = Visible
		}
		if err := surf.UnlockAndPost(fb); err != nil {
			t.log.Warn("unlock and post failed", zap.Error(err))
		}
	}()

	fb.ClearRGB(0, 0, 0)
	if err := t.drawFrame(fb); err != nil {
		t.stats.Failures++
		t.log.Error("redraw failed", zap.Error(err))
		return
	}
	t.stats.Draws++
}

func (t *Task) drawFrame(fb hal.Framebuffer) error {
	w, h := fb.Width(), fb.Height()
	if t.width > 0 && t.height > 0 && (t.width != w || t.height != h) {
		t.log.Debug("surface size differs from last report",
			zap.Int("reported_width", t.width),
			zap.Int("reported_height", t.height),
			zap.Int("width", w),
			zap.Int("height", h),
		)
	}

	hour := 0
	if t.clk != nil {
		hour = t.clk.Now().Hour()
	}
	b := render.BucketFor(hour)
	key := render.Key{Bucket: b, Width: w, Height: h}

	img, ok := t.cache.Get(key)
	if !ok {
		if t.images == nil {
			return errors.New("wallpaper: no image source")
		}
		src, err := t.images.Image(b)
		if err != nil {
			return fmt.Errorf("wallpaper: image %s: %w", b, err)
		}
		img, err = render.ScaleToFill(src, w, h, t.policy)
		if err != nil {
			return fmt.Errorf("wallpaper: scale %s: %w", key, err)
		}
		t.cache.Store(key, img)
		t.stats.Scales++
		t.log.Debug("scaled",
			zap.Stringer("key", key),
			zap.Int("scaled_width", img.Bounds().Dx()),
			zap.Int("scaled_height", img.Bounds().Dy()),
			zap.Int("cache_bytes", t.cache.Bytes()),
		)
	}

	at := render.Position(w, h, img.Bounds(), t.offsets, t.preview)
	if err := blit(fb, img, at); err != nil {
		return err
	}
	t.lastHour = hour

	if seen := (lastSeen{width: w, height: h, hour: hour}); seen != t.saved {
		if t.savePrefs(w, h, hour, b) {
			t.saved = seen
		}
	}
	return nil
}

// blit copies img onto fb with its top-left corner at `at`, clipping to the framebuffer.
func blit(fb hal.Framebuffer, img *image.RGBA, at image.Point) error {
	w, h := fb.Width(), fb.Height()
	stride := fb.StrideBytes()
	buf := fb.Buffer()
	if w <= 0 || h <= 0 || stride <= 0 {
		return errors.New("wallpaper: invalid framebuffer geometry")
	}
	if len(buf) < stride*h {
		return errors.New("wallpaper: framebuffer buffer too small")
	}

	dr := img.Bounds().Sub(img.Bounds().Min).Add(at).Intersect(image.Rect(0, 0, w, h))
	if dr.Empty() {
		return nil
	}
	sp := dr.Min.Sub(at).Add(img.Bounds().Min)

	switch fb.Format() {
	case hal.PixelFormatRGBA8888:
		dst := &image.RGBA{Pix: buf, Stride: stride, Rect: image.Rect(0, 0, w, h)}
		xdraw.Draw(dst, dr, img, sp, xdraw.Src)
		return nil

	case hal.PixelFormatRGB565:
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			row := y * stride
			si := img.PixOffset(sp.X, sp.Y+(y-dr.Min.Y))
			for x := dr.Min.X; x < dr.Max.X; x++ {
				pix := hal.RGB565(img.Pix[si+0], img.Pix[si+1], img.Pix[si+2])
				off := row + x*2
				buf[off] = byte(pix)
				buf[off+1] = byte(pix >> 8)
				si += 4
			}
		}
		return nil

	default:
		return fmt.Errorf("wallpaper: unsupported framebuffer format %s", fb.Format())
	}
}
