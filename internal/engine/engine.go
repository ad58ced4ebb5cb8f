package engine

import (
	"errors"
	"fmt"
	"image"
	"io"
	"runtime/debug"
	"strings"
)

// Standard errors reported by engines.
var (
	ErrUnknownFormat = errors.New("unknown file format")
	ErrEmptyInput    = errors.New("empty image data")
	ErrEncode        = errors.New("encoder rejected image")
	ErrUnloaded      = errors.New("bitmap has already been freed")
	ErrUnknownEngine = errors.New("unknown engine")
	ErrUnknownFilter = errors.New("unknown resample filter")
)

// Engine decodes, resamples and encodes rasters. Every Bitmap an Engine
// returns is owned by the caller until it is passed to Unload.
//
// Implementations are safe for concurrent use on different bitmaps. A single
// Bitmap must not be used from more than one goroutine at a time.
type Engine interface {
	// Name identifies the implementation ("imaging" or "bild").
	Name() string

	// Version reports the version of the underlying library.
	Version() string

	// Load decodes the image at path.
	Load(path string) (*Bitmap, Format, error)

	// LoadMemory decodes an image held in memory.
	LoadMemory(data []byte) (*Bitmap, Format, error)

	// Rescale resamples b to exactly width x height.
	Rescale(b *Bitmap, width, height int) (*Bitmap, error)

	// Copy extracts r, given relative to the top-left corner of b.
	Copy(b *Bitmap, r image.Rectangle) (*Bitmap, error)

	// Encode writes b to w in format f.
	Encode(w io.Writer, b *Bitmap, f Format) error

	// Save writes b to a file at path in format f. The file is replaced only
	// once encoding succeeded; on failure an existing file is left as it was.
	Save(b *Bitmap, path string, f Format) error

	// FileType detects the format of the file at path without decoding
	// its pixels. FormatUnknown is returned when nothing matches.
	FileType(path string) Format

	// Unload releases b. Unloading an already released bitmap does nothing.
	Unload(b *Bitmap)

	// Live returns the number of bitmaps handed out and not yet unloaded.
	Live() int64
}

// Options selects and tunes an engine.
type Options struct {
	// Name is "imaging" (default) or "bild".
	Name string

	// Filter is the resample filter name. Defaults to "catmullrom".
	Filter string

	// JPEGQuality is the JPEG encode quality, 1-100. Defaults to 95.
	JPEGQuality int

	// AutoOrient rotates decoded images according to their EXIF
	// orientation tag.
	AutoOrient bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Name:        "imaging",
		Filter:      "catmullrom",
		JPEGQuality: 95,
		AutoOrient:  true,
	}
}

// New builds the engine named in opts.
func New(opts Options) (Engine, error) {
	if opts.Filter == "" {
		opts.Filter = "catmullrom"
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 95
	}

	switch strings.ToLower(opts.Name) {
	case "", "imaging":
		return NewImaging(opts)
	case "bild":
		return NewBild(opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, opts.Name)
	}
}

// moduleVersion looks up the version of a dependency in the build info.
func moduleVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			if dep.Replace != nil {
				return dep.Replace.Version
			}
			return dep.Version
		}
	}
	return "unknown"
}
