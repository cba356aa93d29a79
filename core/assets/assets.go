// Package assets owns the decoded source image for every time bucket.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	"bitday/core/render"

	"go.uber.org/zap"
)

var (
	ErrMissingAsset = errors.New("assets: missing asset")
	ErrEmptyAsset   = errors.New("assets: asset has zero width or height")
	ErrReleased     = errors.New("assets: library released")
)

// Extensions are tried in order for each bucket name.
var Extensions = []string{".png", ".jpg", ".jpeg"}

// Options controls how a Library finds and decodes images.
type Options struct {
	// Lazy defers decoding until a bucket is first requested.
	Lazy bool
	// GeneratedSize is the size of the built-in skies used when no FS is given.
	GeneratedSize image.Point
}

// DefaultGeneratedSize matches the landscape aspect of the original artwork.
var DefaultGeneratedSize = image.Pt(1280, 720)

// Library maps buckets to decoded, immutable source images.
type Library struct {
	log  *zap.Logger
	fsys fs.FS
	opts Options

	images   map[render.Bucket]image.Image
	released bool
}

// Load builds a library over fsys. A nil fsys selects the generated skies.
//
// In eager mode every bucket is decoded up front and the first failure is returned.
func Load(log *zap.Logger, fsys fs.FS, opts Options) (*Library, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.GeneratedSize.X <= 0 || opts.GeneratedSize.Y <= 0 {
		opts.GeneratedSize = DefaultGeneratedSize
	}
	l := &Library{
		log:    log,
		fsys:   fsys,
		opts:   opts,
		images: make(map[render.Bucket]image.Image),
	}
	if opts.Lazy {
		return l, nil
	}
	for _, b := range render.Buckets() {
		if _, err := l.Image(b); err != nil {
			return nil, err
		}
	}
	l.log.Debug("assets loaded", zap.Int("count", len(l.images)), zap.Bool("generated", fsys == nil))
	return l, nil
}

// Image returns the source image for b, decoding it on first use.
func (l *Library) Image(b render.Bucket) (image.Image, error) {
	if l.released {
		return nil, ErrReleased
	}
	if !b.Valid() {
		return nil, fmt.Errorf("assets: %w: %s", ErrMissingAsset, b)
	}
	if img, ok := l.images[b]; ok {
		return img, nil
	}

	var (
		img image.Image
		err error
	)
	if l.fsys == nil {
		img = Generate(b, l.opts.GeneratedSize.X, l.opts.GeneratedSize.Y)
	} else {
		img, err = l.decode(b)
		if err != nil {
			return nil, err
		}
	}

	l.images[b] = img
	return img, nil
}

func (l *Library) decode(b render.Bucket) (image.Image, error) {
	for _, ext := range Extensions {
		name := b.String() + ext
		f, err := l.fsys.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("assets: open %s: %w", name, err)
		}
		img, format, err := image.Decode(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("assets: decode %s: %w", name, err)
		}
		if r := img.Bounds(); r.Dx() <= 0 || r.Dy() <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyAsset, name)
		}
		l.log.Debug("asset decoded",
			zap.String("name", name),
			zap.String("format", format),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()),
		)
		return img, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingAsset, b)
}

// Loaded returns how many buckets are currently decoded.
func (l *Library) Loaded() int { return len(l.images) }

// Release drops every decoded image. Later calls to Image fail with ErrReleased.
func (l *Library) Release() {
	clear(l.images)
	l.released = true
}
