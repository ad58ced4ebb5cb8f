package engine

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatCodes(t *testing.T) {
	tests := []struct {
		format Format
		code   int
		name   string
	}{
		{FormatUnknown, -1, "UNKNOWN"},
		{FormatBMP, 0, "BMP"},
		{FormatICO, 1, "ICO"},
		{FormatJPEG, 2, "JPEG"},
		{FormatPNG, 13, "PNG"},
		{FormatTARGA, 17, "TARGA"},
		{FormatTIFF, 18, "TIFF"},
		{FormatGIF, 25, "GIF"},
		{FormatJP2, 31, "JP2"},
		{FormatWEBP, 35, "WEBP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, int(tt.format))
			require.Equal(t, tt.name, tt.format.String())
		})
	}
}

func TestFormatCapabilities(t *testing.T) {
	require.True(t, FormatPNG.CanRead())
	require.True(t, FormatPNG.CanWrite())
	require.True(t, FormatWEBP.CanRead())
	require.False(t, FormatWEBP.CanWrite())
	require.True(t, FormatPSD.Known())
	require.False(t, FormatPSD.CanRead())
	require.False(t, FormatUnknown.Known())
	require.False(t, Format(33).Known())

	require.Equal(t, "image/jpeg", FormatJPEG.MimeType())
	require.Equal(t, "application/octet-stream", FormatPSD.MimeType())
}

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Format
	}{
		{".jpg", FormatJPEG},
		{"JPEG", FormatJPEG},
		{".PNG", FormatPNG},
		{"tif", FormatTIFF},
		{".gif", FormatGIF},
		{".webp", FormatWEBP},
		{".psd", FormatPSD},
		{".txt", FormatUnknown},
		{"", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			require.Equal(t, tt.want, FormatFromExtension(tt.ext))
		})
	}

	require.Equal(t, FormatPNG, FormatFromFilename("/a/b/photo.final.png"))
	require.Equal(t, FormatUnknown, FormatFromFilename("/a/b/README"))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSniffBytes(t *testing.T) {
	require.Equal(t, FormatPNG, SniffBytes(pngBytes(t)))
	require.Equal(t, FormatUnknown, SniffBytes(nil))
	require.Equal(t, FormatUnknown, SniffBytes([]byte("not an image")))
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()

	// Header wins over a misleading extension.
	misnamed := filepath.Join(dir, "really-a-png.jpg")
	require.NoError(t, os.WriteFile(misnamed, pngBytes(t), 0644))
	require.Equal(t, FormatPNG, DetectFile(misnamed))

	// Unrecognised content falls back to the extension.
	fake := filepath.Join(dir, "layers.psd")
	require.NoError(t, os.WriteFile(fake, []byte("8BPS"), 0644))
	require.Equal(t, FormatPSD, DetectFile(fake))

	require.Equal(t, FormatTIFF, DetectFile(filepath.Join(dir, "missing.tiff")))
	require.Equal(t, FormatUnknown, DetectFile(filepath.Join(dir, "missing")))
}
