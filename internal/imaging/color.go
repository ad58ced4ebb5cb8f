package imaging

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// PixelColor is the colour of one pixel as 8-bit channels. Alpha is not
// part of the sampling contract.
type PixelColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Hex returns the colour as "#RRGGBB".
func (c PixelColor) Hex() string {
	return strings.ToUpper(c.toColorful().Hex())
}

func (c PixelColor) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string     `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  PixelColor `json:"rgb"`  // RGB components
	RGBA RGBAColor  `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor   `json:"hsl"`  // HSL representation
}

// ColorAt returns the colour of the pixel at (x, y).
//
// The origin is the top-left corner and y grows downward. Valid coordinates
// are 0 <= x < Width() and 0 <= y < Height(); anything else fails with
// ErrOutOfBounds. Palette images resolve through their palette and
// translucent pixels report their un-premultiplied channels.
func (h *Handle) ColorAt(x, y int) (PixelColor, error) {
	c, err := h.pixel(x, y)
	if err != nil {
		return PixelColor{}, err
	}
	return PixelColor{R: c.R, G: c.G, B: c.B}, nil
}

// SampleColor returns the colour at (x, y) as hex, RGB, RGBA and HSL.
func (h *Handle) SampleColor(x, y int) (*ColorResult, error) {
	c, err := h.pixel(x, y)
	if err != nil {
		return nil, err
	}

	rgb := PixelColor{R: c.R, G: c.G, B: c.B}
	hue, sat, light := rgb.toColorful().Hsl()

	return &ColorResult{
		Hex:  rgb.Hex(),
		RGB:  rgb,
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL: HSLColor{
			H: int(math.Round(hue)) % 360,
			S: int(math.Round(sat * 100)),
			L: int(math.Round(light * 100)),
		},
	}, nil
}

func (h *Handle) pixel(x, y int) (color.NRGBA, error) {
	if err := h.check(); err != nil {
		return color.NRGBA{}, err
	}
	if x < 0 || x >= h.Width() || y < 0 || y >= h.Height() {
		return color.NRGBA{}, fmt.Errorf("%w: coordinates (%d,%d) outside %dx%d image",
			ErrOutOfBounds, x, y, h.Width(), h.Height())
	}

	img := h.bitmap.Image()
	origin := img.Bounds().Min
	return color.NRGBAModel.Convert(img.At(origin.X+x, origin.Y+y)).(color.NRGBA), nil
}

// LabeledPoint is a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains color samples from multiple points, in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples every point in order. Any out-of-bounds point
// fails the whole call; no partial result is returned.
func (h *Handle) SampleColorsMulti(points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := h.SampleColor(p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string     `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64    `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        PixelColor `json:"rgb"`        // RGB components (quantized)
}

// DominantColorsResult lists colours by frequency, most common first.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors returns up to count of the most common colours in region,
// or in the whole image when region is nil.
//
// Channels are quantized to multiples of 16 so that near-identical colours
// are counted together.
func (h *Handle) DominantColors(count int, region *CropRect) (*DominantColorsResult, error) {
	if err := h.check(); err != nil {
		return nil, err
	}

	r := CropRect{Right: h.Width(), Bottom: h.Height()}
	if region != nil {
		r = *region
		if r.Left < 0 || r.Top < 0 || r.Right > h.Width() || r.Bottom > h.Height() {
			return nil, fmt.Errorf("%w: region (%d,%d)-(%d,%d)", ErrOutOfBounds, r.Left, r.Top, r.Right, r.Bottom)
		}
	}

	counts := make(map[PixelColor]int)
	total := 0
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			c, err := h.pixel(x, y)
			if err != nil {
				return nil, err
			}
			counts[PixelColor{R: c.R / 16 * 16, G: c.G / 16 * 16, B: c.B / 16 * 16}]++
			total++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        c.Hex(),
			Percentage: float64(n) / float64(total) * 100,
			RGB:        c,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if count >= 0 && len(colors) > count {
		colors = colors[:count]
	}

	return &DominantColorsResult{Colors: colors}, nil
}
