package teximage

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LoadFile decodes the image file at path and loads its pixels. On error
// the image is left unchanged.
func (img *Image) LoadFile(path string) error {
	if img.released {
		return ErrReleased
	}
	d, err := img.dev.codec.DecodeFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return img.loadDecoded(d)
}

// LoadMemory decodes an image held in data and loads its pixels. On error
// the image is left unchanged.
func (img *Image) LoadMemory(data []byte) error {
	return img.LoadReader(bytes.NewReader(data))
}

// LoadReader decodes an image read from r and loads its pixels. On error
// the image is left unchanged.
func (img *Image) LoadReader(r io.Reader) error {
	if img.released {
		return ErrReleased
	}
	d, err := img.dev.codec.Decode(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img.loadDecoded(d)
}

func (img *Image) loadDecoded(d *Decoded) error {
	defer d.Release()
	return img.LoadRawBytes(d.Width, d.Height, d.Pix)
}

// Write encodes the image to path. The format is chosen from the last four
// characters of path, ignoring case: ".png" writes PNG, ".tga" writes TGA
// and anything else writes BMP. BMP output is opaque: alpha reads back as
// 255.
func (img *Image) Write(path string) error {
	return img.writeFile(path, FormatForPath(path))
}

// WriteBMP encodes the image to path as BMP. Alpha is not kept.
func (img *Image) WriteBMP(path string) error {
	return img.writeFile(path, FormatBMP)
}

// WritePNG encodes the image to path as PNG.
func (img *Image) WritePNG(path string) error {
	return img.writeFile(path, FormatPNG)
}

// WriteTGA encodes the image to path as uncompressed 32-bit TGA.
func (img *Image) WriteTGA(path string) error {
	return img.writeFile(path, FormatTGA)
}

// Encode writes the image to w in the given format.
func (img *Image) Encode(w io.Writer, format Format) error {
	if img.pixels.Empty() {
		return ErrEmptyImage
	}
	width, height := img.Size()
	if err := img.dev.codec.Encode(w, format, width, height, img.pixels.Bytes()); err != nil {
		return fmt.Errorf("teximage: encode %s: %w", format, err)
	}
	return nil
}

func (img *Image) writeFile(path string, format Format) error {
	if img.pixels.Empty() {
		return ErrEmptyImage
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("teximage: create file: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err := img.Encode(bw, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("teximage: write %s: %w", path, err)
	}
	return f.Close()
}
