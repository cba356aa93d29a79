package hal

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrSurfaceNotReady is returned by Surface.Lock when there is nothing to draw on:
	// no size yet, destroyed, or already locked.
	ErrSurfaceNotReady = errors.New("hal: surface not ready")

	// ErrStopped is returned by an app step function once the engine has shut down.
	ErrStopped = errors.New("hal: stopped")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb, little-endian.
	PixelFormatRGB565 PixelFormat = iota + 1
	// PixelFormatRGBA8888 is 32bpp, byte order R, G, B, A (same as image.RGBA).
	PixelFormatRGBA8888
)

// BytesPerPixel returns the pixel size, or 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGB565:
		return 2
	case PixelFormatRGBA8888:
		return 4
	default:
		return 0
	}
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB565:
		return "rgb565"
	case PixelFormatRGBA8888:
		return "rgba8888"
	default:
		return "unknown"
	}
}

// Framebuffer is a simple pixel buffer.
//
// A Framebuffer obtained from Surface.Lock is only valid until the matching
// UnlockAndPost.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
}

// Surface is the host-owned drawing target.
//
// Every successful Lock must be paired with exactly one UnlockAndPost.
type Surface interface {
	Lock() (Framebuffer, error)
	UnlockAndPost(fb Framebuffer) error
}

// Display provides access to the drawing surface (if available).
type Display interface {
	Surface() Surface
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; higher-level timers live in userland.
type Time interface {
	Ticks() <-chan uint64
}

// Clock reports wall-clock time in the host's configured zone.
type Clock interface {
	Now() time.Time
}

// Shell is the hosting GUI shell: it reports lifecycle changes of the engine.
type Shell interface {
	Events() <-chan LifecycleEvent
	IsPreview() bool
}

// HAL provides the only contact point between the engine and the outside world.
type HAL interface {
	Logger() *zap.Logger
	Display() Display
	Time() Time
	Clock() Clock
	Shell() Shell
}
