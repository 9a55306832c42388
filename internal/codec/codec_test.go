package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testPixels returns a w×h RGBA8 gradient with varying alpha.
func testPixels(w, h int) []byte {
	pix := make([]byte, w*h*4)
	for y := range h {
		for x := range w {
			i := (y*w + x) * 4
			pix[i+0] = byte(x * 40)
			pix[i+1] = byte(y * 60)
			pix[i+2] = byte(x + y)
			pix[i+3] = byte(255 - x*10 - y)
		}
	}
	return pix
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	const w, h = 5, 3
	want := testPixels(w, h)

	for _, f := range []Format{FormatBMP, FormatPNG, FormatTGA} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, f, w, h, want); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			d, err := DecodeBytes(buf.Bytes())
			if err != nil {
				t.Fatalf("DecodeBytes() error = %v", err)
			}
			defer d.Release()

			if d.Width != w || d.Height != h {
				t.Fatalf("size = %dx%d, want %dx%d", d.Width, d.Height, w, h)
			}
			if d.Format != f.String() {
				t.Errorf("Format = %q, want %q", d.Format, f.String())
			}
			exp := want
			if f == FormatBMP {
				exp = opaque(want)
			}
			if diff := cmp.Diff(exp, d.Pix); diff != "" {
				t.Errorf("pixels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// opaque returns a copy of pix with every alpha byte set to 255.
func opaque(pix []byte) []byte {
	out := append([]byte(nil), pix...)
	for i := 3; i < len(out); i += 4 {
		out[i] = 255
	}
	return out
}

func TestDecodeFile(t *testing.T) {
	const w, h = 2, 2
	want := testPixels(w, h)
	path := filepath.Join(t.TempDir(), "out.tga")

	var buf bytes.Buffer
	if err := Encode(&buf, FormatForPath(path), w, h, want); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	d, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	defer d.Release()
	if diff := cmp.Diff(want, d.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeErrors(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		name   string
		format Format
		w, h   int
		pix    []byte
	}{
		{"zero width", FormatPNG, 0, 1, nil},
		{"short buffer", FormatBMP, 2, 2, make([]byte, 15)},
		{"unknown format", Format(9), 1, 1, make([]byte, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Encode(&buf, tt.format, tt.w, tt.h, tt.pix); err == nil {
				t.Error("Encode() succeeded, want error")
			}
		})
	}
}

func TestDecodeConvertsPaletted(t *testing.T) {
	pal := color.Palette{
		color.NRGBA{R: 255, A: 255},
		color.NRGBA{G: 255, A: 255},
	}
	img := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
	img.SetColorIndex(1, 0, 1)

	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}

	d, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer d.Release()

	want := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	if diff := cmp.Diff(want, d.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrEmptyData},
		{"garbage", []byte("this is certainly not an image file"), ErrUnsupportedFormat},
		{"short", []byte{1, 2, 3}, ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeBytes() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeCorruptPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatPNG, 4, 4, testPixels(4, 4)); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()[:buf.Len()/2]

	_, err := DecodeBytes(data)
	if err == nil {
		t.Fatal("DecodeBytes(truncated PNG) succeeded")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("truncated PNG reported as unsupported format: %v", err)
	}
}

func TestDecodeFileMissing(t *testing.T) {
	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("DecodeFile(missing) succeeded")
	}
}

func TestDecodedRelease(t *testing.T) {
	p := NewPool(1)
	var buf bytes.Buffer
	if err := Encode(&buf, FormatPNG, 3, 3, testPixels(3, 3)); err != nil {
		t.Fatal(err)
	}

	d, err := p.decode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	d.Release()
	if d.Pix != nil {
		t.Error("Pix not cleared by Release")
	}
	d.Release()
	if p.Len() != 1 {
		t.Errorf("pool Len() = %d, want 1", p.Len())
	}

	var nilDecoded *Decoded
	nilDecoded.Release()
}

func TestDecodeRejectsOversizedHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	// Rewrite the IHDR width and its checksum. IHDR data starts after the
	// 8 byte signature and the chunk length and type.
	const ihdr = 8 + 4
	binary.BigEndian.PutUint32(data[ihdr+4:], 100000)
	binary.BigEndian.PutUint32(data[ihdr+4+13:], crc32.ChecksumIEEE(data[ihdr:ihdr+4+13]))

	if _, err := DecodeBytes(data); !errors.Is(err, ErrTooLarge) {
		t.Errorf("DecodeBytes() error = %v, want ErrTooLarge", err)
	}
}
