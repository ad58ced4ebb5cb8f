package imaging

import (
	"fmt"

	"github.com/ironsheep/image-science/internal/engine"
)

// Handle is an exclusively owned reference to one decoded image.
//
// A Handle is created by Open, OpenBytes or one of the transforms, and must
// be released with Close once its owner is done with it. The scoped helpers
// (WithImage, WithImageFromMemory and the With* transforms) do that
// automatically on every exit path, including panics.
//
// Transforms never modify the receiver: each returns a new Handle with its
// own lifetime. After Close, accessors return zero values and operations
// fail with ErrReleased.
//
// A Handle must not be used from more than one goroutine at a time.
type Handle struct {
	eng    engine.Engine
	bitmap *engine.Bitmap
	format engine.Format
}

// newHandle wraps a bitmap freshly produced by the engine. A bitmap without
// positive dimensions is unloaded and reported with failure.
func newHandle(eng engine.Engine, b *engine.Bitmap, format engine.Format, failure error) (*Handle, error) {
	if b.Width() <= 0 || b.Height() <= 0 {
		w, h := b.Width(), b.Height()
		eng.Unload(b)
		return nil, fmt.Errorf("%w: engine produced a %dx%d image", failure, w, h)
	}
	return &Handle{eng: eng, bitmap: b, format: format}, nil
}

// Open decodes the image file at path.
//
// A missing file, an unrecognised format or corrupt data all fail with
// ErrDecode; for a missing file the error also matches fs.ErrNotExist.
func Open(eng engine.Engine, path string) (*Handle, error) {
	b, format, err := eng.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return newHandle(eng, b, format, ErrDecode)
}

// OpenBytes decodes an image held in memory. Empty or invalid data fails
// with ErrDecode.
func OpenBytes(eng engine.Engine, data []byte) (*Handle, error) {
	b, format, err := eng.LoadMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return newHandle(eng, b, format, ErrDecode)
}

// Use runs fn with h and releases h when fn returns. If err is non-nil it is
// returned unchanged and fn is not called, so Use composes directly with the
// constructors:
//
//	h, err := imaging.Open(eng, path)
//	return imaging.Use(h, err, func(img *imaging.Handle) error { ... })
func Use(h *Handle, err error, fn func(*Handle) error) error {
	if err != nil {
		return err
	}
	defer h.Close()
	return fn(h)
}

// WithImage opens path, passes the handle to fn and releases it afterwards.
// fn is not called when the open fails.
func WithImage(eng engine.Engine, path string, fn func(*Handle) error) error {
	h, err := Open(eng, path)
	return Use(h, err, fn)
}

// WithImageFromMemory is WithImage for in-memory data.
func WithImageFromMemory(eng engine.Engine, data []byte, fn func(*Handle) error) error {
	h, err := OpenBytes(eng, data)
	return Use(h, err, fn)
}

// Close releases the underlying bitmap. It is safe to call more than once;
// only the first call releases anything.
func (h *Handle) Close() error {
	if h == nil || h.bitmap == nil {
		return nil
	}
	h.eng.Unload(h.bitmap)
	h.bitmap = nil
	return nil
}

// Released reports whether Close has been called.
func (h *Handle) Released() bool {
	return h == nil || h.bitmap == nil
}

// Width returns the image width in pixels.
func (h *Handle) Width() int {
	if h == nil || h.bitmap == nil {
		return 0
	}
	return h.bitmap.Width()
}

// Height returns the image height in pixels.
func (h *Handle) Height() int {
	if h == nil || h.bitmap == nil {
		return 0
	}
	return h.bitmap.Height()
}

// Depth returns the colour depth in bits per pixel.
func (h *Handle) Depth() int {
	if h == nil || h.bitmap == nil {
		return 0
	}
	return h.bitmap.Depth()
}

// ColorTypeCode returns the engine's colour type code.
func (h *Handle) ColorTypeCode() int {
	if h == nil || h.bitmap == nil {
		return -1
	}
	return h.bitmap.ColorType()
}

// ColorType returns the colour space name derived from ColorTypeCode and
// Depth.
func (h *Handle) ColorType() ColorType {
	return ColorTypeOf(h.ColorTypeCode(), h.Depth())
}

// FileType returns the format the image was decoded from. Derived images
// inherit the format of their source.
func (h *Handle) FileType() engine.Format {
	if h == nil {
		return engine.FormatUnknown
	}
	return h.format
}

func (h *Handle) check() error {
	if h == nil || h.bitmap == nil {
		return ErrReleased
	}
	return nil
}

// derive wraps a bitmap produced from h by the engine.
func (h *Handle) derive(b *engine.Bitmap) (*Handle, error) {
	return newHandle(h.eng, b, h.format, ErrEngine)
}
