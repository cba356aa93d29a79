package render

import (
	"fmt"
	"image"
	"math"
)

// Offsets is the home-screen paging position, each axis in [0, 1].
type Offsets struct {
	X float32
	Y float32
}

// CenteredOffsets is the position used before the host reports any paging.
var CenteredOffsets = Offsets{X: 0.5, Y: 0.5}

func (o Offsets) String() string {
	return fmt.Sprintf("(%.3f,%.3f)", o.X, o.Y)
}

// Clamp limits both axes to [0, 1]. NaN becomes 0.5.
func (o Offsets) Clamp() Offsets {
	return Offsets{X: clampUnit(o.X), Y: clampUnit(o.Y)}
}

func clampUnit(v float32) float32 {
	switch {
	case math.IsNaN(float64(v)):
		return 0.5
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Position returns where the top-left corner of bitmap goes on a surfaceW×surfaceH surface.
//
// Images larger than the surface slide with the offsets; preview mode always centres.
func Position(surfaceW, surfaceH int, bitmap image.Rectangle, off Offsets, preview bool) image.Point {
	if preview {
		off = CenteredOffsets
	}
	off = off.Clamp()
	x := float64(surfaceW-bitmap.Dx()) * float64(off.X)
	y := float64(surfaceH-bitmap.Dy()) * float64(off.Y)
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}
