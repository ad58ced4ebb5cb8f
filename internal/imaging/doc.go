// Package imaging loads images, derives resized copies and samples pixels.
//
// The package is the geometry and ownership layer on top of an
// engine.Engine, which does the actual decoding, resampling and encoding.
// It decides what size a thumbnail or a bounding-box fit should be, which
// square to cut for a cropped thumbnail, and makes sure every decoded image
// is released exactly once.
//
// # Handles
//
// Every decoded image is a *Handle owned by whoever created it. Handles come
// from Open, OpenBytes or a transform (Resize, Thumbnail, CroppedThumbnail,
// FitWithin, Crop). Transforms never modify their receiver; each result is a
// new Handle that must be closed on its own. The scoped helpers release for
// the caller:
//
//	err := imaging.WithImage(eng, "photo.jpg", func(img *imaging.Handle) error {
//	    return img.WithThumbnail(100, func(thumb *imaging.Handle) error {
//	        _, err := thumb.Save("thumb.png")
//	        return err
//	    })
//	})
//
// A handle that escapes its scope is already released; using it fails with
// ErrReleased.
//
// # Geometry
//
//   - PlanProportional: longest edge becomes size, the other edge is scaled
//     and truncated toward zero
//   - PlanBoundingBox: largest size within a box, never larger than the source
//   - PlanCenteredSquareCrop: centred square of side min(width, height)
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner; X
// increases rightward and Y downward. For crop rectangles (Left, Top) is
// inclusive and (Right, Bottom) is exclusive.
//
// # Thread Safety
//
// A Handle must be confined to one goroutine. Different handles, including
// handles from the same engine, can be used concurrently.
//
// # Error Handling
//
// Failures match one of ErrDecode, ErrInvalidDimension, ErrOutOfBounds,
// ErrEngine, ErrReleased or ErrUnknownFormat with errors.Is. Dimension and
// bounds checks run before the engine is called.
package imaging
