package imaging

import (
	"errors"

	"github.com/ironsheep/image-science/internal/engine"
)

// Errors returned by handle operations. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	// ErrDecode means the source could not be opened or is not a supported
	// image. No handle is produced.
	ErrDecode = errors.New("cannot decode image")

	// ErrInvalidDimension means a requested width or height is not positive.
	// It is raised before the engine is called or any file is written.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrOutOfBounds means a pixel coordinate or crop rectangle falls outside
	// the image.
	ErrOutOfBounds = errors.New("outside image bounds")

	// ErrEngine wraps failures reported by the engine.
	ErrEngine = errors.New("engine failure")

	// ErrReleased means the handle was used after its scope ended.
	ErrReleased = errors.New("image handle has been released")

	// ErrUnknownFormat means no readable or writable format could be
	// determined.
	ErrUnknownFormat = engine.ErrUnknownFormat
)
