//go:build cgo

package hal

import (
	"errors"

	"bitday/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// RunWindow starts a desktop window that presents the wallpaper surface and turns window
// state (minimise, resize, paging keys, close) into lifecycle events.
// It blocks until the window closes.
func RunWindow(log *zap.Logger, cfg HostConfig, newApp AppFactory) error {
	h := newHost(log, cfg)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step, in: newHostInput()}
	ebiten.SetWindowTitle("BitDay (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h    *hostHAL
	in   *hostInput
	step func() error

	started bool
	visible bool
	closing bool
	width   int
	height  int

	fbImg   *ebiten.Image
	scratch []byte
}

func (g *hostGame) Update() error {
	if !g.started {
		g.h.start()
		g.started = true
		g.visible = true
	}

	if !g.closing {
		g.pollLifecycle()
	}

	g.h.t.step()
	if err := g.step(); err != nil {
		if errors.Is(err, ErrStopped) {
			return ebiten.Termination
		}
		return err
	}
	if g.closing {
		// The engine gets one step to observe the teardown sequence.
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) pollLifecycle() {
	if ebiten.IsWindowBeingClosed() {
		g.closing = true
		g.h.stop()
		return
	}

	visible := !ebiten.IsWindowMinimized()
	if visible != g.visible {
		g.visible = visible
		g.h.shell.emit(Visibility(visible))
	}

	if x, changed := g.in.poll(); changed {
		g.h.shell.emit(Offsets(x, 0.5))
	}
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	pix, w, h := g.h.surface.snapshot(g.scratch)
	g.scratch = pix
	if w <= 0 || h <= 0 || len(pix) < w*h*4 {
		return
	}

	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	g.fbImg.WritePixels(pix[:w*h*4])
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width = outsideWidth
		g.height = outsideHeight
		if g.h.surface.resize(outsideWidth, outsideHeight) {
			g.h.shell.emit(SurfaceChanged(outsideWidth, outsideHeight))
		}
	}
	return outsideWidth, outsideHeight
}
