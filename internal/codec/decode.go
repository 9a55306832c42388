package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// maxDimension bounds decoded width and height. Larger images cannot be
// stored in a texture.
var maxDimension = int(gputypes.DefaultLimits().MaxTextureDimension2D)

// Decode errors.
var (
	// ErrEmptyData is returned when there is nothing to decode.
	ErrEmptyData = errors.New("codec: empty data")

	// ErrUnsupportedFormat is returned when no decoder recognizes the data.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")

	// ErrTooLarge is returned when the header declares dimensions beyond
	// the texture size limit. Nothing is decoded.
	ErrTooLarge = errors.New("codec: image too large")
)

// Decoded is an image decoded to tightly packed, non-premultiplied RGBA8.
type Decoded struct {
	Width  int
	Height int
	// Pix holds Width*Height*4 bytes, rows top to bottom.
	Pix []byte
	// Format is the name of the decoder that recognized the data.
	Format string

	pool *Pool
}

// Release returns Pix to the pool it came from. Pix must not be used
// afterwards. Release is idempotent.
func (d *Decoded) Release() {
	if d == nil || d.Pix == nil {
		return
	}
	if d.pool != nil {
		d.pool.Put(d.Pix)
	}
	d.Pix = nil
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*Decoded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("codec: read: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeFile decodes the image stored at path.
func DecodeFile(path string) (*Decoded, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("codec: open file: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an in-memory image, auto-detecting the format.
func DecodeBytes(data []byte) (*Decoded, error) {
	return defaultPool.decode(data)
}

func (p *Pool) decode(data []byte) (*Decoded, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
			return nil, fmt.Errorf("codec: decode %s: %w", format, err)
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		// TGA has no signature, so it is tried last.
		img, err = decodeTGA(data)
		format = "tga"
		if errors.Is(err, errNotTGA) {
			return nil, ErrUnsupportedFormat
		}
	}
	if err != nil {
		return nil, fmt.Errorf("codec: decode %s: %w", format, err)
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("codec: decode %s: %w", format, ErrEmptyData)
	}

	d := &Decoded{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    p.Get(b.Dx() * b.Dy() * 4),
		Format: format,
		pool:   p,
	}
	dst := &image.NRGBA{
		Pix:    d.Pix,
		Stride: d.Width * 4,
		Rect:   image.Rect(0, 0, d.Width, d.Height),
	}
	toNRGBA(dst, img)
	return d, nil
}

func checkDimensions(width, height int) error {
	if width > maxDimension || height > maxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrTooLarge, width, height, maxDimension)
	}
	return nil
}

// toNRGBA converts src into dst, which has the same size and a zero origin.
func toNRGBA(dst *image.NRGBA, src image.Image) {
	b := src.Bounds()

	// Fast path: same pixel layout, copy rows.
	if n, ok := src.(*image.NRGBA); ok {
		rowLen := b.Dx() * 4
		for y := range b.Dy() {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], n.Pix[off:off+rowLen])
		}
		return
	}

	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
}
