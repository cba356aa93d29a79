package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
)

var (
	ErrEmptyImage  = errors.New("render: image has zero width or height")
	ErrEmptyTarget = errors.New("render: target has zero width or height")
)

// Policy selects how a source image is fitted to the surface.
type Policy uint8

const (
	// PolicyCover scales uniformly so the image covers the whole target.
	// The result may be larger than the target in one axis; Position picks the visible window.
	PolicyCover Policy = iota
	// PolicyFillHeight scales to the target height and centres horizontally.
	// The result is exactly the target size.
	PolicyFillHeight
)

func (p Policy) String() string {
	switch p {
	case PolicyCover:
		return "cover"
	case PolicyFillHeight:
		return "fill-height"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy accepts "cover" or "fill-height".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cover":
		return PolicyCover, nil
	case "fill-height", "fill_height", "fillheight":
		return PolicyFillHeight, nil
	default:
		return 0, fmt.Errorf("render: unknown scale policy %q", s)
	}
}

// Background is drawn behind images that do not cover the whole target.
var Background = color.RGBA{A: 0xFF}

// ScaleFactor returns the uniform factor applied to an imgW×imgH image for a w×h target.
func ScaleFactor(imgW, imgH, w, h int, p Policy) (float64, error) {
	if imgW <= 0 || imgH <= 0 {
		return 0, ErrEmptyImage
	}
	if w <= 0 || h <= 0 {
		return 0, ErrEmptyTarget
	}
	sy := float64(h) / float64(imgH)
	if p == PolicyFillHeight {
		return sy, nil
	}
	sx := float64(w) / float64(imgW)
	return math.Max(sx, sy), nil
}

// ScaledSize returns the dimensions ScaleToFill produces for an imgW×imgH image.
func ScaledSize(imgW, imgH, w, h int, p Policy) (sw, sh int, err error) {
	scale, err := ScaleFactor(imgW, imgH, w, h, p)
	if err != nil {
		return 0, 0, err
	}
	if p == PolicyFillHeight {
		return w, h, nil
	}
	sw = max(int(math.Round(float64(imgW)*scale)), w)
	sh = max(int(math.Round(float64(imgH)*scale)), h)
	return sw, sh, nil
}

// ScaleToFill resamples src for a w×h target with bilinear filtering.
func ScaleToFill(src image.Image, w, h int, p Policy) (*image.RGBA, error) {
	if src == nil {
		return nil, ErrEmptyImage
	}
	sb := src.Bounds()
	sw, sh, err := ScaledSize(sb.Dx(), sb.Dy(), w, h, p)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, sw, sh))
	switch p {
	case PolicyFillHeight:
		scale, _ := ScaleFactor(sb.Dx(), sb.Dy(), w, h, p)
		xdraw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, xdraw.Src)
		iw := int(math.Round(float64(sb.Dx()) * scale))
		x0 := (w - iw) / 2
		xdraw.BiLinear.Scale(dst, image.Rect(x0, 0, x0+iw, h), src, sb, xdraw.Over, nil)
	default:
		xdraw.BiLinear.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
	}
	return dst, nil
}
