package engine

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)

	opaque := image.NewNRGBA(rect)
	translucent := image.NewNRGBA(rect)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			opaque.Set(x, y, color.NRGBA{R: 10, A: 255})
			translucent.Set(x, y, color.NRGBA{R: 10, A: 100})
		}
	}

	tests := []struct {
		name      string
		img       image.Image
		colorType int
		depth     int
	}{
		{"gray", image.NewGray(rect), ColorMinIsBlack, 8},
		{"gray16", image.NewGray16(rect), ColorMinIsBlack, 16},
		{"bilevel", image.NewPaletted(rect, color.Palette{color.Black, color.White}), ColorMinIsBlack, 1},
		{"inverted bilevel", image.NewPaletted(rect, color.Palette{color.White, color.Black}), ColorMinIsWhite, 1},
		{"palette 16", image.NewPaletted(rect, make(color.Palette, 16)), ColorPalette, 4},
		{"palette 256", image.NewPaletted(rect, make(color.Palette, 256)), ColorPalette, 8},
		{"cmyk", image.NewCMYK(rect), ColorCMYK, 32},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio444), ColorRGB, 24},
		{"opaque nrgba", opaque, ColorRGB, 24},
		{"translucent nrgba", translucent, ColorRGBAlpha, 32},
		{"transparent nrgba64", image.NewNRGBA64(rect), ColorRGBAlpha, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, depth := describe(tt.img)
			require.Equal(t, tt.colorType, ct)
			require.Equal(t, tt.depth, depth)
		})
	}
}

func TestBitmapUnloaded(t *testing.T) {
	b := newBitmap(image.NewGray(image.Rect(0, 0, 3, 2)))
	require.Equal(t, 3, b.Width())
	require.Equal(t, 2, b.Height())
	require.False(t, b.Unloaded())

	b.img = nil
	require.True(t, b.Unloaded())
	require.Zero(t, b.Width())
	require.Zero(t, b.Height())
	require.Nil(t, b.Image())
}
