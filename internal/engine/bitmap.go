package engine

import (
	"image"
	"image/color"
)

// Colour type codes reported by Bitmap.ColorType. They follow the FreeImage
// convention.
const (
	ColorMinIsWhite = 0 // monochrome/greyscale, 0 is white
	ColorMinIsBlack = 1 // monochrome/greyscale, 0 is black
	ColorRGB        = 2
	ColorPalette    = 3
	ColorRGBAlpha   = 4
	ColorCMYK       = 5
)

// Bitmap is one decoded raster owned by an Engine. A Bitmap must be handed
// back with Engine.Unload exactly once; after that its pixels are gone.
type Bitmap struct {
	img       image.Image
	depth     int
	colorType int
}

func newBitmap(img image.Image) *Bitmap {
	colorType, depth := describe(img)
	return &Bitmap{img: img, depth: depth, colorType: colorType}
}

// Image returns the decoded raster, or nil once the bitmap is unloaded.
func (b *Bitmap) Image() image.Image {
	return b.img
}

// Width returns the width in pixels.
func (b *Bitmap) Width() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dx()
}

// Height returns the height in pixels.
func (b *Bitmap) Height() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dy()
}

// Depth returns the bits per pixel.
func (b *Bitmap) Depth() int { return b.depth }

// ColorType returns the colour type code (see the Color* constants).
func (b *Bitmap) ColorType() int { return b.colorType }

// Unloaded reports whether the bitmap has been released.
func (b *Bitmap) Unloaded() bool { return b.img == nil }

// describe derives the colour type code and bit depth for a Go image.
func describe(img image.Image) (colorType, depth int) {
	switch m := img.(type) {
	case *image.Gray:
		return ColorMinIsBlack, 8
	case *image.Gray16:
		return ColorMinIsBlack, 16
	case *image.Paletted:
		return describePalette(m.Palette)
	case *image.CMYK:
		return ColorCMYK, 32
	case *image.YCbCr:
		return ColorRGB, 24
	case *image.RGBA64, *image.NRGBA64:
		if isOpaque(img) {
			return ColorRGB, 48
		}
		return ColorRGBAlpha, 64
	}
	if isOpaque(img) {
		return ColorRGB, 24
	}
	return ColorRGBAlpha, 32
}

func describePalette(p color.Palette) (colorType, depth int) {
	black := color.Gray{Y: 0}
	white := color.Gray{Y: 255}
	if len(p) == 2 {
		switch {
		case sameColor(p[0], black) && sameColor(p[1], white):
			return ColorMinIsBlack, 1
		case sameColor(p[0], white) && sameColor(p[1], black):
			return ColorMinIsWhite, 1
		}
	}
	switch {
	case len(p) <= 2:
		return ColorPalette, 1
	case len(p) <= 16:
		return ColorPalette, 4
	}
	return ColorPalette, 8
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
