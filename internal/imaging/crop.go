package imaging

import (
	"fmt"
	"image"
)

// CropRect is a crop region. (Left, Top) is inclusive, (Right, Bottom) is
// exclusive.
type CropRect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns Right - Left.
func (r CropRect) Width() int { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r CropRect) Height() int { return r.Bottom - r.Top }

// Rectangle converts r to an image.Rectangle.
func (r CropRect) Rectangle() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// PlanCenteredSquareCrop returns the centred square of side min(width,
// height), removing equal margins from the longer edge. A square source
// yields the full image.
func PlanCenteredSquareCrop(width, height int) CropRect {
	half := width - height
	if half < 0 {
		half = -half
	}
	half /= 2

	r := CropRect{Left: 0, Top: 0, Right: width, Bottom: height}
	switch {
	case width > height:
		r.Left, r.Right = half, half+height
	case height > width:
		r.Top, r.Bottom = half, half+width
	}
	return r
}

// PlanRegion returns the rectangle for a named region of a width x height
// image: top-left, top-right, bottom-left, bottom-right, top-half,
// bottom-half, left-half, right-half or center (the middle 50%).
func PlanRegion(region string, width, height int) (CropRect, error) {
	midX := width / 2
	midY := height / 2

	var x1, y1, x2, y2 int
	switch region {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, width, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, height
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, width, height
	case "top-half":
		x1, y1, x2, y2 = 0, 0, width, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, width, height
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, height
	case "right-half":
		x1, y1, x2, y2 = midX, 0, width, height
	case "center":
		qW := width / 4
		qH := height / 4
		x1, y1, x2, y2 = qW, qH, width-qW, height-qH
	default:
		return CropRect{}, fmt.Errorf("unknown region: %s", region)
	}

	return CropRect{Left: x1, Top: y1, Right: x2, Bottom: y2}, nil
}

// Crop extracts r into a new handle.
//
// A rectangle reaching outside the image fails with ErrOutOfBounds; an
// empty one fails with ErrInvalidDimension. Both are checked before the
// engine is called.
func (h *Handle) Crop(r CropRect) (*Handle, error) {
	if err := h.check(); err != nil {
		return nil, err
	}

	w, ht := h.Width(), h.Height()
	if r.Left < 0 || r.Top < 0 || r.Right > w || r.Bottom > ht {
		return nil, fmt.Errorf("%w: crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			ErrOutOfBounds, r.Left, r.Top, r.Right, r.Bottom, w, ht)
	}
	if r.Left >= r.Right || r.Top >= r.Bottom {
		return nil, fmt.Errorf("%w: crop region must have left < right and top < bottom", ErrInvalidDimension)
	}

	b, err := h.eng.Copy(h.bitmap, r.Rectangle())
	if err != nil {
		return nil, fmt.Errorf("%w: crop: %w", ErrEngine, err)
	}
	return h.derive(b)
}

// WithCrop crops to r, passes the result to fn and releases it afterwards.
func (h *Handle) WithCrop(r CropRect, fn func(*Handle) error) error {
	out, err := h.Crop(r)
	return Use(out, err, fn)
}

// CropRegion crops to a named region; see PlanRegion.
func (h *Handle) CropRegion(region string) (*Handle, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	r, err := PlanRegion(region, h.Width(), h.Height())
	if err != nil {
		return nil, err
	}
	return h.Crop(r)
}
