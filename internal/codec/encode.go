package codec

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
)

// Encode writes width×height RGBA8 pixels to w in the given format.
// pix must hold at least width*height*4 bytes.
func Encode(w io.Writer, format Format, width, height int, pix []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("codec: encode %s: invalid size %dx%d", format, width, height)
	}
	if len(pix) < width*height*4 {
		return fmt.Errorf("codec: encode %s: have %d bytes, need %d", format, len(pix), width*height*4)
	}

	img := &image.NRGBA{
		Pix:    pix[:width*height*4],
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatTGA:
		err = encodeTGA(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("codec: encode: unknown format %d", int(format))
	}
	if err != nil {
		return fmt.Errorf("codec: encode %s: %w", format, err)
	}
	return nil
}
