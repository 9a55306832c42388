package codec

import "strings"

// Format is an output file format.
type Format int

const (
	// FormatBMP is the Windows bitmap format. It is the fallback format.
	// Encoded bitmaps carry no alpha; decoding yields opaque pixels.
	FormatBMP Format = iota
	// FormatPNG is the Portable Network Graphics format.
	FormatPNG
	// FormatTGA is the Truevision TGA format, written uncompressed.
	FormatTGA
)

// String returns the lowercase file extension of the format without the dot.
func (f Format) String() string {
	switch f {
	case FormatBMP:
		return "bmp"
	case FormatPNG:
		return "png"
	case FormatTGA:
		return "tga"
	default:
		return "unknown"
	}
}

// FormatForPath selects the output format from the last four characters of
// path, ignoring case: ".png" selects PNG, ".tga" selects TGA and anything
// else, including paths shorter than four characters, selects BMP.
func FormatForPath(path string) Format {
	if len(path) < 4 {
		return FormatBMP
	}
	switch strings.ToLower(path[len(path)-4:]) {
	case ".png":
		return FormatPNG
	case ".tga":
		return FormatTGA
	default:
		return FormatBMP
	}
}
