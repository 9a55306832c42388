package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

const (
	tgaHeaderSize = 18
	tgaTopLeft    = 0x20 // image descriptor bit 5: rows stored top to bottom
	tgaRightLeft  = 0x10 // image descriptor bit 4: columns stored right to left
)

// errNotTGA reports data that does not carry a TGA header this reader
// understands. The caller turns it into ErrUnsupportedFormat.
var errNotTGA = errors.New("codec: not a TGA image")

// errTGATruncated reports pixel data shorter than the header promises.
var errTGATruncated = errors.New("codec: truncated TGA data")

// decodeTGA decodes an uncompressed or RLE true-color or grayscale TGA.
// Color-mapped images are not supported.
func decodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, errNotTGA
	}
	idLen := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(binary.LittleEndian.Uint16(data[12:14]))
	height := int(binary.LittleEndian.Uint16(data[14:16]))
	depth := int(data[16])
	desc := data[17]

	if colorMapType != 0 || width == 0 || height == 0 {
		return nil, errNotTGA
	}
	gray := false
	switch imageType {
	case tgaTrueColor, tgaTrueColorRLE:
		if depth != 24 && depth != 32 {
			return nil, errNotTGA
		}
	case tgaGray, tgaGrayRLE:
		if depth != 8 {
			return nil, errNotTGA
		}
		gray = true
	default:
		return nil, errNotTGA
	}

	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	bpp := depth / 8
	if tgaHeaderSize+idLen > len(data) {
		return nil, errTGATruncated
	}
	src := data[tgaHeaderSize+idLen:]

	raw := src
	if imageType == tgaTrueColorRLE || imageType == tgaGrayRLE {
		var err error
		raw, err = unpackTGA(src, width*height, bpp)
		if err != nil {
			return nil, err
		}
	}
	if len(raw) < width*height*bpp {
		return nil, errTGATruncated
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for sy := range height {
		dy := height - 1 - sy
		if desc&tgaTopLeft != 0 {
			dy = sy
		}
		for sx := range width {
			dx := sx
			if desc&tgaRightLeft != 0 {
				dx = width - 1 - sx
			}
			s := raw[(sy*width+sx)*bpp:]
			d := img.Pix[img.PixOffset(dx, dy):]
			switch {
			case gray:
				d[0], d[1], d[2], d[3] = s[0], s[0], s[0], 0xFF
			case bpp == 4:
				d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
			default:
				d[0], d[1], d[2], d[3] = s[2], s[1], s[0], 0xFF
			}
		}
	}
	return img, nil
}

// unpackTGA expands run-length encoded packets into n raw pixels.
// A packet expands to at most 128 pixels, which bounds the output by the
// input length.
func unpackTGA(src []byte, n, bpp int) ([]byte, error) {
	out := make([]byte, 0, min(n*bpp, len(src)*128*bpp))
	for len(out) < n*bpp {
		if len(src) == 0 {
			return nil, errTGATruncated
		}
		hdr := src[0]
		src = src[1:]
		count := int(hdr&0x7F) + 1
		if hdr&0x80 != 0 {
			if len(src) < bpp {
				return nil, errTGATruncated
			}
			px := src[:bpp]
			src = src[bpp:]
			for range count {
				out = append(out, px...)
			}
		} else {
			if len(src) < count*bpp {
				return nil, errTGATruncated
			}
			out = append(out, src[:count*bpp]...)
			src = src[count*bpp:]
		}
	}
	return out[:n*bpp], nil
}

// encodeTGA writes img as an uncompressed 32-bit top-left origin TGA.
func encodeTGA(w io.Writer, img *image.NRGBA) error {
	b := img.Bounds()
	if b.Dx() > 0xFFFF || b.Dy() > 0xFFFF {
		return fmt.Errorf("codec: TGA size %dx%d exceeds 65535", b.Dx(), b.Dy())
	}

	var hdr [tgaHeaderSize]byte
	hdr[2] = tgaTrueColor
	binary.LittleEndian.PutUint16(hdr[12:14], uint16(b.Dx())) //nolint:gosec // checked above
	binary.LittleEndian.PutUint16(hdr[14:16], uint16(b.Dy())) //nolint:gosec // checked above
	hdr[16] = 32
	hdr[17] = tgaTopLeft | 8 // 8 alpha bits
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	row := make([]byte, b.Dx()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		s := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := range b.Dx() {
			row[x*4+0] = s[x*4+2]
			row[x*4+1] = s[x*4+1]
			row[x*4+2] = s[x*4+0]
			row[x*4+3] = s[x*4+3]
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
