package engine

import (
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/transform"
)

var bildFilters = map[string]transform.ResampleFilter{
	"nearest":           transform.NearestNeighbor,
	"box":               transform.Box,
	"linear":            transform.Linear,
	"mitchellnetravali": transform.MitchellNetravali,
	"catmullrom":        transform.CatmullRom,
	"gaussian":          transform.Gaussian,
	"lanczos":           transform.Lanczos,
}

// Bild resamples with github.com/anthonynsimon/bild. Decoding and encoding
// are shared with the Imaging engine.
type Bild struct {
	*codec
	filter transform.ResampleFilter
}

// NewBild creates a Bild engine.
func NewBild(opts Options) (*Bild, error) {
	filter, ok := bildFilters[strings.ToLower(opts.Filter)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, opts.Filter)
	}
	return &Bild{codec: newCodec(opts), filter: filter}, nil
}

// Name implements Engine.
func (e *Bild) Name() string { return "bild" }

// Version implements Engine.
func (e *Bild) Version() string {
	return moduleVersion("github.com/anthonynsimon/bild")
}

// Rescale implements Engine.
func (e *Bild) Rescale(b *Bitmap, width, height int) (*Bitmap, error) {
	if b == nil || b.Unloaded() {
		return nil, ErrUnloaded
	}
	return e.track(newBitmap(transform.Resize(b.img, width, height, e.filter))), nil
}

// Copy implements Engine.
func (e *Bild) Copy(b *Bitmap, r image.Rectangle) (*Bitmap, error) {
	if b == nil || b.Unloaded() {
		return nil, ErrUnloaded
	}
	r = r.Add(b.img.Bounds().Min)
	return e.track(newBitmap(transform.Crop(b.img, r))), nil
}
