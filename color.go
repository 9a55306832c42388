package teximage

import (
	"fmt"
	"image/color"
)

// Color is a non-premultiplied 8-bit RGBA color, the cell type of every
// image. Its memory layout is four consecutive bytes R, G, B, A.
type Color struct {
	R, G, B, A uint8
}

// EmptyColor is fully transparent white. Cells that gain no content on
// resize are filled with it.
var EmptyColor = Color{R: 255, G: 255, B: 255, A: 0}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
	Red         = Color{R: 255, A: 255}
	Green       = Color{G: 255, A: 255}
	Blue        = Color{B: 255, A: 255}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// String returns the color as "#rrggbbaa".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// FromColor converts any color.Color to a Color.
func FromColor(c color.Color) Color {
	return Color(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// ColorModel converts colors to Color.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})

// Hex parses a color from a hex string with an optional leading '#'.
// Supported forms: "RGB", "RGBA", "RRGGBB", "RRGGBBAA".
func Hex(hex string) (Color, error) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var v [4]uint8
	v[3] = 255

	switch len(hex) {
	case 3, 4:
		for i := range len(hex) {
			n, ok := parseHexDigit(hex[i])
			if !ok {
				return Color{}, fmt.Errorf("%w: hex color %q", ErrInvalidArgument, hex)
			}
			v[i] = n * 17
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			hi, ok1 := parseHexDigit(hex[i])
			lo, ok2 := parseHexDigit(hex[i+1])
			if !ok1 || !ok2 {
				return Color{}, fmt.Errorf("%w: hex color %q", ErrInvalidArgument, hex)
			}
			v[i/2] = hi<<4 | lo
		}
	default:
		return Color{}, fmt.Errorf("%w: hex color %q", ErrInvalidArgument, hex)
	}

	return Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func parseHexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
