package hal

import (
	"errors"
	"image"
	"sync"
)

var errNotLocked = errors.New("hal: framebuffer is not locked")

type hostFramebuffer struct {
	width  int
	height int
	stride int
	format PixelFormat
	buf    []byte
}

func newHostFramebuffer(width, height int, format PixelFormat) *hostFramebuffer {
	stride := width * format.BytesPerPixel()
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		format: format,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return f.format }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	fill(f.buf, f.format, r, g, b)
}

// hostSurface double-buffers: tasks draw into back, UnlockAndPost publishes to front,
// and the window (or headless runner) presents front.
type hostSurface struct {
	mu sync.Mutex

	format    PixelFormat
	back      *hostFramebuffer
	locked    bool
	destroyed bool

	front  []byte
	frontW int
	frontH int
	posts  uint64
}

func newHostSurface(width, height int) *hostSurface {
	s := &hostSurface{format: PixelFormatRGBA8888}
	s.resize(width, height)
	return s
}

func (s *hostSurface) Lock() (Framebuffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked || s.destroyed || s.back == nil {
		return nil, ErrSurfaceNotReady
	}
	s.locked = true
	return s.back, nil
}

func (s *hostSurface) UnlockAndPost(fb Framebuffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.locked || s.back == nil || fb != Framebuffer(s.back) {
		return errNotLocked
	}
	s.locked = false

	if len(s.front) != len(s.back.buf) {
		s.front = make([]byte, len(s.back.buf))
	}
	copy(s.front, s.back.buf)
	s.frontW = s.back.width
	s.frontH = s.back.height
	s.posts++
	return nil
}

// resize reallocates the back buffer. It reports whether the size changed.
// A locked surface keeps its buffer until the draw completes.
func (s *hostSurface) resize(width, height int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if width <= 0 || height <= 0 {
		changed := s.back != nil
		if !s.locked {
			s.back = nil
		}
		return changed
	}
	if s.back != nil && s.back.width == width && s.back.height == height {
		s.destroyed = false
		return false
	}
	if s.locked {
		return false
	}
	s.back = newHostFramebuffer(width, height, s.format)
	s.destroyed = false
	return true
}

func (s *hostSurface) size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.back == nil {
		return 0, 0
	}
	return s.back.width, s.back.height
}

func (s *hostSurface) destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
}

func (s *hostSurface) postCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts
}

// snapshot copies the last posted frame into dst, growing it if needed.
func (s *hostSurface) snapshot(dst []byte) (out []byte, width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cap(dst) < len(s.front) {
		dst = make([]byte, len(s.front))
	}
	dst = dst[:len(s.front)]
	copy(dst, s.front)
	return dst, s.frontW, s.frontH
}

// frame returns a copy of the last posted frame, or nil if nothing was posted.
func (s *hostSurface) frame() *image.RGBA {
	pix, w, h := s.snapshot(nil)
	if w <= 0 || h <= 0 {
		return nil
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
}
