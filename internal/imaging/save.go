package imaging

import (
	"bytes"
	"fmt"

	"github.com/ironsheep/image-science/internal/engine"
	"github.com/ironsheep/image-science/internal/logging"
)

// Save writes the image to path. The format follows the extension of path;
// when the extension is not recognised the source format is used, so
// changing the extension converts the file.
//
// Save reports whether the file was written. An encoder that declines the
// image yields (false, nil) and leaves no file behind. A format that cannot
// be written fails with ErrUnknownFormat, and filesystem failures such as a
// full disk fail with ErrEngine.
func (h *Handle) Save(path string) (bool, error) {
	format := engine.FormatFromFilename(path)
	if format == engine.FormatUnknown {
		format = h.FileType()
	}
	return h.SaveAs(path, format)
}

// SaveAs is Save with an explicit format.
func (h *Handle) SaveAs(path string, format engine.Format) (bool, error) {
	if err := h.check(); err != nil {
		return false, err
	}
	if !format.CanWrite() {
		return false, fmt.Errorf("%w: %s (%s)", ErrUnknownFormat, path, format)
	}

	err := h.eng.Save(h.bitmap, path, format)
	switch {
	case err == nil:
		return true, nil
	case engine.IsEncodeError(err):
		logging.Warn().
			Add(logging.Path(path)).
			Add(logging.Str("format", format.String())).
			Add(logging.ErrorField(err)).
			Msg("image not saved")
		return false, nil
	default:
		return false, fmt.Errorf("%w: save %s: %w", ErrEngine, path, err)
	}
}

// Buffer encodes the image in memory in the format named by ext (".jpg",
// "png", ...).
func (h *Handle) Buffer(ext string) ([]byte, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	format := engine.FormatFromExtension(ext)
	if !format.CanWrite() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	var buf bytes.Buffer
	if err := h.eng.Encode(&buf, h.bitmap, format); err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", ErrEngine, format, err)
	}
	return buf.Bytes(), nil
}

// WithBuffer encodes like Buffer and passes the bytes to fn instead of
// returning them.
func (h *Handle) WithBuffer(ext string, fn func([]byte) error) error {
	data, err := h.Buffer(ext)
	if err != nil {
		return err
	}
	return fn(data)
}
