package imaging

import (
	"fmt"
	"os"

	"github.com/ironsheep/image-science/internal/engine"
)

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the symbolic file type, e.g. "PNG" or "JPEG".
	Format string `json:"format"`

	// Depth is the colour depth in bits per pixel.
	Depth int `json:"depth"`

	// ColorType is the colour space name, e.g. "RGB" or "Grayscale".
	ColorType ColorType `json:"color_type"`

	// HasAlpha indicates whether the image carries transparency.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Info describes the open image. FileSizeBytes is left zero.
func (h *Handle) Info() (*ImageInfo, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	return &ImageInfo{
		Width:     h.Width(),
		Height:    h.Height(),
		Format:    h.format.String(),
		Depth:     h.Depth(),
		ColorType: h.ColorType(),
		HasAlpha:  h.ColorTypeCode() == engine.ColorRGBAlpha,
	}, nil
}

// LoadImageInfo opens the image at path, describes it and releases it.
//
// # Errors
//
//   - ErrDecode if the file does not exist or cannot be decoded
//   - a stat error if the file vanished after decoding
func LoadImageInfo(eng engine.Engine, path string) (*ImageInfo, error) {
	var info *ImageInfo
	err := WithImage(eng, path, func(img *Handle) error {
		var err error
		info, err = img.Info()
		return err
	})
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	info.FileSizeBytes = stat.Size()

	return info, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of the image at path.
func GetDimensions(eng engine.Engine, path string) (*DimensionsResult, error) {
	var dims *DimensionsResult
	err := WithImage(eng, path, func(img *Handle) error {
		dims = &DimensionsResult{Width: img.Width(), Height: img.Height()}
		return nil
	})
	return dims, err
}

// FileType detects the format of the file at path from its header, falling
// back to its extension. No pixel data is decoded. The boolean is false
// when the format cannot be determined.
func FileType(eng engine.Engine, path string) (engine.Format, bool) {
	f := eng.FileType(path)
	return f, f != engine.FormatUnknown
}

// ImageType returns the symbolic name of the format of the file at path, or
// "" when it cannot be determined.
func ImageType(eng engine.Engine, path string) string {
	f, ok := FileType(eng, path)
	if !ok {
		return ""
	}
	return f.String()
}
