package imaging

// ColorType names the colour space of an image.
type ColorType string

// Colour types derived from an engine colour type code and bit depth.
const (
	InvertedMonochrome ColorType = "InvertedMonochrome"
	InvertedGrayscale  ColorType = "InvertedGrayscale"
	Monochrome         ColorType = "Monochrome"
	Grayscale          ColorType = "Grayscale"
	RGB                ColorType = "RGB"
	Indexed            ColorType = "Indexed"
	RGBA               ColorType = "RGBA"
	CMYK               ColorType = "CMYK"
)

// colorTypes is indexed by colour type code; the two entries per code are
// the 1-bit variant and everything else.
var colorTypes = [...][2]ColorType{
	{InvertedMonochrome, InvertedGrayscale},
	{Monochrome, Grayscale},
	{RGB, RGB},
	{Indexed, Indexed},
	{RGBA, RGBA},
	{CMYK, CMYK},
}

// ColorTypeOf maps a colour type code and bit depth to a ColorType. Codes
// 0 and 1 are the monochrome/greyscale families, where a depth of 1 selects
// the monochrome variant. Unknown codes yield "".
func ColorTypeOf(code, depth int) ColorType {
	if code < 0 || code >= len(colorTypes) {
		return ""
	}
	if depth == 1 {
		return colorTypes[code][0]
	}
	return colorTypes[code][1]
}
