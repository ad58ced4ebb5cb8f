package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/disintegration/imaging"
)

// codec holds the decode/encode half shared by every engine, along with the
// live bitmap accounting.
type codec struct {
	jpegQuality int
	autoOrient  bool
	live        atomic.Int64
}

func newCodec(opts Options) *codec {
	return &codec{
		jpegQuality: opts.JPEGQuality,
		autoOrient:  opts.AutoOrient,
	}
}

// track registers a freshly produced bitmap.
func (c *codec) track(b *Bitmap) *Bitmap {
	c.live.Add(1)
	return b
}

// Load implements Engine.
func (c *codec) Load(path string) (*Bitmap, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("failed to open image: %w", err)
	}

	format := SniffBytes(data)
	if format == FormatUnknown {
		format = FormatFromFilename(path)
	}
	return c.decode(data, format)
}

// LoadMemory implements Engine.
func (c *codec) LoadMemory(data []byte) (*Bitmap, Format, error) {
	if len(data) == 0 {
		return nil, FormatUnknown, ErrEmptyInput
	}
	return c.decode(data, SniffBytes(data))
}

func (c *codec) decode(data []byte, format Format) (*Bitmap, Format, error) {
	if !format.CanRead() {
		return nil, format, ErrUnknownFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(c.autoOrient))
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode image: %w", err)
	}
	return c.track(newBitmap(img)), format, nil
}

// Encode implements Engine.
func (c *codec) Encode(w io.Writer, b *Bitmap, f Format) error {
	if b == nil || b.Unloaded() {
		return ErrUnloaded
	}
	target, ok := f.imagingFormat()
	if !ok {
		return fmt.Errorf("%w: cannot write %s", ErrUnknownFormat, f)
	}

	ew := &errWriter{w: w}
	err := imaging.Encode(ew, b.img, target, imaging.JPEGQuality(c.jpegQuality))
	switch {
	case err == nil:
		return nil
	case ew.err != nil:
		return fmt.Errorf("failed to write %s: %w", f, ew.err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrEncode, f, err)
	}
}

// Save implements Engine.
func (c *codec) Save(b *Bitmap, path string, f Format) error {
	if b == nil || b.Unloaded() {
		return ErrUnloaded
	}
	if !f.CanWrite() {
		return fmt.Errorf("%w: cannot write %s", ErrUnknownFormat, f)
	}

	// Encode next to path and rename over it, so a failed save never
	// touches an existing file.
	out, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	tmp := out.Name()

	if err := c.Encode(out, b, f); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Chmod(0o644); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FileType implements Engine.
func (c *codec) FileType(path string) Format {
	return DetectFile(path)
}

// Unload implements Engine.
func (c *codec) Unload(b *Bitmap) {
	if b == nil || b.img == nil {
		return
	}
	b.img = nil
	c.live.Add(-1)
}

// Live implements Engine.
func (c *codec) Live() int64 {
	return c.live.Load()
}

// errWriter remembers the first write failure so that encoder errors can be
// told apart from I/O errors.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	n, err := e.w.Write(p)
	if err != nil && e.err == nil {
		e.err = err
	}
	return n, err
}

// IsEncodeError reports whether err means the encoder declined the image, as
// opposed to an I/O failure.
func IsEncodeError(err error) bool {
	return errors.Is(err, ErrEncode)
}
