package engine

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

var imagingFilters = map[string]imaging.ResampleFilter{
	"nearest":           imaging.NearestNeighbor,
	"box":               imaging.Box,
	"linear":            imaging.Linear,
	"hermite":           imaging.Hermite,
	"mitchellnetravali": imaging.MitchellNetravali,
	"catmullrom":        imaging.CatmullRom,
	"bspline":           imaging.BSpline,
	"gaussian":          imaging.Gaussian,
	"lanczos":           imaging.Lanczos,
}

// Imaging is the default engine, backed by github.com/disintegration/imaging.
type Imaging struct {
	*codec
	filter imaging.ResampleFilter
}

// NewImaging creates an Imaging engine.
func NewImaging(opts Options) (*Imaging, error) {
	filter, ok := imagingFilters[strings.ToLower(opts.Filter)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, opts.Filter)
	}
	return &Imaging{codec: newCodec(opts), filter: filter}, nil
}

// Name implements Engine.
func (e *Imaging) Name() string { return "imaging" }

// Version implements Engine.
func (e *Imaging) Version() string {
	return moduleVersion("github.com/disintegration/imaging")
}

// Rescale implements Engine.
func (e *Imaging) Rescale(b *Bitmap, width, height int) (*Bitmap, error) {
	if b == nil || b.Unloaded() {
		return nil, ErrUnloaded
	}
	return e.track(newBitmap(imaging.Resize(b.img, width, height, e.filter))), nil
}

// Copy implements Engine.
func (e *Imaging) Copy(b *Bitmap, r image.Rectangle) (*Bitmap, error) {
	if b == nil || b.Unloaded() {
		return nil, ErrUnloaded
	}
	r = r.Add(b.img.Bounds().Min)
	return e.track(newBitmap(imaging.Crop(b.img, r))), nil
}
