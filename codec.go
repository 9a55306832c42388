package teximage

import (
	"io"

	"github.com/gogpu/teximage/internal/codec"
)

// Format selects the encoding used by Image.Encode.
type Format = codec.Format

// Output formats.
const (
	FormatBMP = codec.FormatBMP
	FormatPNG = codec.FormatPNG
	FormatTGA = codec.FormatTGA
)

// Decoded is an image decoded to RGBA8. Call Release once its pixels have
// been copied.
type Decoded = codec.Decoded

// Codec decodes image files to RGBA8 and encodes RGBA8 pixels.
//
// A Device uses the default codec unless WithCodec supplies another one.
type Codec interface {
	// Decode decodes an image read from r.
	Decode(r io.Reader) (*Decoded, error)

	// DecodeFile decodes the image stored at path.
	DecodeFile(path string) (*Decoded, error)

	// Encode writes width×height RGBA8 pixels to w.
	Encode(w io.Writer, format Format, width, height int, pix []byte) error
}

// FormatForPath returns the format Image.Write uses for path.
func FormatForPath(path string) Format {
	return codec.FormatForPath(path)
}

// DefaultCodec returns the built-in codec. It decodes PNG, JPEG, GIF, BMP,
// TIFF, WebP and TGA, and encodes BMP, PNG and TGA.
func DefaultCodec() Codec {
	return defaultCodec{}
}

type defaultCodec struct{}

func (defaultCodec) Decode(r io.Reader) (*Decoded, error) {
	return codec.Decode(r)
}

func (defaultCodec) DecodeFile(path string) (*Decoded, error) {
	return codec.DecodeFile(path)
}

func (defaultCodec) Encode(w io.Writer, format Format, width, height int, pix []byte) error {
	return codec.Encode(w, format, width, height, pix)
}
