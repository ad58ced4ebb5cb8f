package imaging

import "math"

// Plan is a target size computed for a resize.
type Plan struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PlanProportional computes the size of a thumbnail whose longest edge is
// size, keeping the aspect ratio of a width x height source.
//
// The scale is size / max(width, height) and each edge is truncated toward
// zero after scaling. Fractional sizes are honoured by the scale, so the
// longest edge becomes exactly size when size is integral. A size that is
// not a positive finite number, or a source without area, gives a zero
// plan, which Resize rejects.
func PlanProportional(width, height int, size float64) Plan {
	longest := max(width, height)
	if longest <= 0 || math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return Plan{}
	}

	// Multiplying before dividing keeps the longest edge exact.
	scale := func(edge int) int {
		return int(float64(edge) * size / float64(longest))
	}
	return Plan{Width: scale(width), Height: scale(height)}
}

// PlanBoundingBox computes the largest size that fits within maxWidth x
// maxHeight while keeping the aspect ratio of a width x height source. The
// result never exceeds the source dimensions.
//
// This is scale = min(maxWidth/width, maxHeight/height, 1) with truncation,
// evaluated in integer arithmetic so the limits hold exactly.
func PlanBoundingBox(width, height, maxWidth, maxHeight int) Plan {
	if width <= 0 || height <= 0 {
		return Plan{}
	}
	if maxWidth >= width && maxHeight >= height {
		return Plan{Width: width, Height: height}
	}

	w, h := int64(width), int64(height)
	mw, mh := int64(maxWidth), int64(maxHeight)

	// maxWidth/width <= maxHeight/height, cross-multiplied.
	if mw*h <= mh*w {
		return Plan{Width: maxWidth, Height: int(h * mw / w)}
	}
	return Plan{Width: int(w * mh / h), Height: maxHeight}
}
