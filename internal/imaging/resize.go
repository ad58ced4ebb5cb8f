package imaging

import (
	"fmt"
)

// Resize resamples the image to exactly width x height and returns the
// result as a new handle. The receiver is left untouched.
//
// Non-positive dimensions fail with ErrInvalidDimension before the engine
// is involved, so nothing is allocated or written on that path.
func (h *Handle) Resize(width, height int) (*Handle, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width %d <= 0", ErrInvalidDimension, width)
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: height %d <= 0", ErrInvalidDimension, height)
	}
	if err := h.check(); err != nil {
		return nil, err
	}

	b, err := h.eng.Rescale(h.bitmap, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: resize to %dx%d: %w", ErrEngine, width, height, err)
	}
	return h.derive(b)
}

// Thumbnail creates a proportional thumbnail whose longest edge is size.
// See PlanProportional for the rounding rules.
func (h *Handle) Thumbnail(size float64) (*Handle, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	p := PlanProportional(h.Width(), h.Height(), size)
	return h.Resize(p.Width, p.Height)
}

// CroppedThumbnail crops the longest edge to match the shortest, centred,
// and thumbnails the resulting square to size. The intermediate crop is
// released before CroppedThumbnail returns, whether or not the thumbnail
// succeeded.
func (h *Handle) CroppedThumbnail(size float64) (*Handle, error) {
	if err := h.check(); err != nil {
		return nil, err
	}

	square, err := h.Crop(PlanCenteredSquareCrop(h.Width(), h.Height()))
	if err != nil {
		return nil, err
	}
	defer square.Close()

	return square.Thumbnail(size)
}

// FitWithin scales the image to the largest size that fits inside maxWidth
// x maxHeight, keeping its aspect ratio. Images are never enlarged.
func (h *Handle) FitWithin(maxWidth, maxHeight int) (*Handle, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	p := PlanBoundingBox(h.Width(), h.Height(), maxWidth, maxHeight)
	return h.Resize(p.Width, p.Height)
}

// WithResize is the scoped form of Resize.
func (h *Handle) WithResize(width, height int, fn func(*Handle) error) error {
	out, err := h.Resize(width, height)
	return Use(out, err, fn)
}

// WithThumbnail is the scoped form of Thumbnail.
func (h *Handle) WithThumbnail(size float64, fn func(*Handle) error) error {
	out, err := h.Thumbnail(size)
	return Use(out, err, fn)
}

// WithCroppedThumbnail is the scoped form of CroppedThumbnail.
func (h *Handle) WithCroppedThumbnail(size float64, fn func(*Handle) error) error {
	out, err := h.CroppedThumbnail(size)
	return Use(out, err, fn)
}

// WithFitWithin is the scoped form of FitWithin.
func (h *Handle) WithFitWithin(maxWidth, maxHeight int, fn func(*Handle) error) error {
	out, err := h.FitWithin(maxWidth, maxHeight)
	return Use(out, err, fn)
}
