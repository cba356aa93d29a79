//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// homeScreens is the number of virtual home screens the paging keys step across.
const homeScreens = 5

// hostInput turns paging keys and the horizontal wheel into a normalised x offset.
type hostInput struct {
	x float32
}

func newHostInput() *hostInput {
	return &hostInput{x: 0.5}
}

func (in *hostInput) poll() (x float32, changed bool) {
	const page = 1.0 / (homeScreens - 1)

	next := in.x
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		next -= page
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		next += page
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		next = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		next = 1
	}
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		// Vertical wheels page too: most mice have no horizontal axis.
		d := wx
		if d == 0 {
			d = -wy
		}
		next += float32(d) * page / 4
	}

	next = clampUnit(next)
	if next == in.x {
		return in.x, false
	}
	in.x = next
	return next, true
}

func clampUnit(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
