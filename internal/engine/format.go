package engine

import (
	"bytes"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Format identifies an image file format.
//
// The numbering follows the FreeImage format identifiers so that codes
// reported by this package line up with files produced by older tooling.
type Format int

// Known formats. Only a subset can actually be decoded or encoded; see
// CanRead and CanWrite.
const (
	FormatUnknown Format = -1
	FormatBMP     Format = iota - 1
	FormatICO
	FormatJPEG
	FormatJNG
	FormatKOALA
	FormatIFF
	FormatMNG
	FormatPBM
	FormatPBMRAW
	FormatPCD
	FormatPCX
	FormatPGM
	FormatPGMRAW
	FormatPNG
	FormatPPM
	FormatPPMRAW
	FormatRAS
	FormatTARGA
	FormatTIFF
	FormatWBMP
	FormatPSD
	FormatCUT
	FormatXBM
	FormatXPM
	FormatDDS
	FormatGIF
	FormatHDR
	FormatFAXG3
	FormatSGI
	FormatEXR
	FormatJ2K
	FormatJP2
)

// FormatWEBP sits outside the contiguous block, matching FreeImage.
const FormatWEBP Format = 35

var formatNames = map[Format]string{
	FormatBMP: "BMP", FormatICO: "ICO", FormatJPEG: "JPEG", FormatJNG: "JNG",
	FormatKOALA: "KOALA", FormatIFF: "IFF", FormatMNG: "MNG", FormatPBM: "PBM",
	FormatPBMRAW: "PBMRAW", FormatPCD: "PCD", FormatPCX: "PCX", FormatPGM: "PGM",
	FormatPGMRAW: "PGMRAW", FormatPNG: "PNG", FormatPPM: "PPM", FormatPPMRAW: "PPMRAW",
	FormatRAS: "RAS", FormatTARGA: "TARGA", FormatTIFF: "TIFF", FormatWBMP: "WBMP",
	FormatPSD: "PSD", FormatCUT: "CUT", FormatXBM: "XBM", FormatXPM: "XPM",
	FormatDDS: "DDS", FormatGIF: "GIF", FormatHDR: "HDR", FormatFAXG3: "FAXG3",
	FormatSGI: "SGI", FormatEXR: "EXR", FormatJ2K: "J2K", FormatJP2: "JP2",
	FormatWEBP: "WEBP",
}

// extensions maps lower-case file extensions to formats.
var extensions = map[string]Format{
	".bmp":   FormatBMP,
	".dib":   FormatBMP,
	".ico":   FormatICO,
	".jpg":   FormatJPEG,
	".jpeg":  FormatJPEG,
	".jpe":   FormatJPEG,
	".jif":   FormatJPEG,
	".jng":   FormatJNG,
	".koa":   FormatKOALA,
	".iff":   FormatIFF,
	".lbm":   FormatIFF,
	".mng":   FormatMNG,
	".pbm":   FormatPBM,
	".pcd":   FormatPCD,
	".pcx":   FormatPCX,
	".pgm":   FormatPGM,
	".png":   FormatPNG,
	".ppm":   FormatPPM,
	".ras":   FormatRAS,
	".tga":   FormatTARGA,
	".targa": FormatTARGA,
	".tif":   FormatTIFF,
	".tiff":  FormatTIFF,
	".wbmp":  FormatWBMP,
	".psd":   FormatPSD,
	".cut":   FormatCUT,
	".xbm":   FormatXBM,
	".xpm":   FormatXPM,
	".dds":   FormatDDS,
	".gif":   FormatGIF,
	".hdr":   FormatHDR,
	".g3":    FormatFAXG3,
	".sgi":   FormatSGI,
	".exr":   FormatEXR,
	".j2k":   FormatJ2K,
	".j2c":   FormatJ2K,
	".jp2":   FormatJP2,
	".webp":  FormatWEBP,
}

// decoderNames maps the names registered with the image package to formats.
var decoderNames = map[string]Format{
	"bmp":  FormatBMP,
	"gif":  FormatGIF,
	"jpeg": FormatJPEG,
	"png":  FormatPNG,
	"tiff": FormatTIFF,
	"webp": FormatWEBP,
}

// String returns the symbolic name of the format, or "UNKNOWN".
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "UNKNOWN"
}

// Known reports whether f names a real format.
func (f Format) Known() bool {
	_, ok := formatNames[f]
	return ok
}

// CanRead reports whether the engines can decode f.
func (f Format) CanRead() bool {
	switch f {
	case FormatBMP, FormatGIF, FormatJPEG, FormatPNG, FormatTIFF, FormatWEBP:
		return true
	}
	return false
}

// CanWrite reports whether the engines can encode f.
func (f Format) CanWrite() bool {
	_, ok := f.imagingFormat()
	return ok
}

// MimeType returns the MIME type for writable formats, or
// "application/octet-stream".
func (f Format) MimeType() string {
	switch f {
	case FormatBMP:
		return "image/bmp"
	case FormatGIF:
		return "image/gif"
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatTIFF:
		return "image/tiff"
	case FormatWEBP:
		return "image/webp"
	}
	return "application/octet-stream"
}

func (f Format) imagingFormat() (imaging.Format, bool) {
	switch f {
	case FormatBMP:
		return imaging.BMP, true
	case FormatGIF:
		return imaging.GIF, true
	case FormatJPEG:
		return imaging.JPEG, true
	case FormatPNG:
		return imaging.PNG, true
	case FormatTIFF:
		return imaging.TIFF, true
	}
	return 0, false
}

// FormatFromExtension returns the format for an extension such as ".jpg" or
// "jpg". The lookup is case-insensitive.
func FormatFromExtension(ext string) Format {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if f, ok := extensions[ext]; ok {
		return f
	}
	return FormatUnknown
}

// FormatFromFilename returns the format implied by the extension of path.
func FormatFromFilename(path string) Format {
	return FormatFromExtension(filepath.Ext(path))
}

// sniffFormat identifies the format from the header of r without decoding
// pixel data.
func sniffFormat(r io.Reader) Format {
	_, name, err := image.DecodeConfig(r)
	if err != nil {
		return FormatUnknown
	}
	if f, ok := decoderNames[name]; ok {
		return f
	}
	return FormatUnknown
}

// SniffBytes identifies the format of an in-memory image.
func SniffBytes(data []byte) Format {
	if len(data) == 0 {
		return FormatUnknown
	}
	return sniffFormat(bytes.NewReader(data))
}

// DetectFile identifies the format of the file at path. The header is
// checked first; if it is not recognised the extension decides. A missing
// file still yields the format its name implies.
func DetectFile(path string) Format {
	if f, err := os.Open(path); err == nil {
		format := sniffFormat(f)
		f.Close()
		if format != FormatUnknown {
			return format
		}
	}
	return FormatFromFilename(path)
}
