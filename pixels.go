package teximage

import (
	"fmt"
	"unsafe"
)

// PixelStore is a row-major grid of width×height colors.
//
// The store owns its dimensions and storage together: a store with a zero
// dimension holds no storage. The zero value is an empty store.
type PixelStore struct {
	width  int
	height int
	cells  []Color
}

// NewPixelStore creates a store of width×height cells set to Transparent.
// A zero or negative dimension yields an empty store.
func NewPixelStore(width, height int) *PixelStore {
	p := &PixelStore{}
	p.Reset(width, height)
	return p
}

// Width returns the number of columns.
func (p *PixelStore) Width() int { return p.width }

// Height returns the number of rows.
func (p *PixelStore) Height() int { return p.height }

// Len returns the number of cells.
func (p *PixelStore) Len() int { return len(p.cells) }

// Empty reports whether the store holds no storage.
func (p *PixelStore) Empty() bool { return len(p.cells) == 0 }

// Reset reallocates the store for width×height cells. Previous content is
// discarded.
func (p *PixelStore) Reset(width, height int) {
	if width <= 0 || height <= 0 {
		p.Free()
		return
	}
	p.width = width
	p.height = height
	p.cells = make([]Color, width*height)
}

// Free drops the storage and sets both dimensions to zero.
func (p *PixelStore) Free() {
	p.width, p.height = 0, 0
	p.cells = nil
}

// At returns the cell at (x, y). Coordinates are not checked.
func (p *PixelStore) At(x, y int) Color {
	return p.cells[y*p.width+x]
}

// Set stores c at (x, y). Coordinates are not checked.
func (p *PixelStore) Set(x, y int, c Color) {
	p.cells[y*p.width+x] = c
}

// In reports whether (x, y) addresses a cell.
func (p *PixelStore) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.width && y < p.height
}

// AtChecked is At with a bounds check.
func (p *PixelStore) AtChecked(x, y int) (Color, error) {
	if !p.In(x, y) {
		return Color{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, p.width, p.height)
	}
	return p.At(x, y), nil
}

// SetChecked is Set with a bounds check.
func (p *PixelStore) SetChecked(x, y int, c Color) error {
	if !p.In(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, p.width, p.height)
	}
	p.Set(x, y, c)
	return nil
}

// Fill sets every cell to c.
func (p *PixelStore) Fill(c Color) {
	for i := range p.cells {
		p.cells[i] = c
	}
}

// Replace copies the first Len() colors of src into the store.
func (p *PixelStore) Replace(src []Color) error {
	if len(src) < len(p.cells) {
		return fmt.Errorf("%w: have %d pixels, need %d", ErrInvalidArgument, len(src), len(p.cells))
	}
	copy(p.cells, src)
	return nil
}

// ReplaceBytes copies Len()*4 RGBA8 bytes of src into the store.
func (p *PixelStore) ReplaceBytes(src []byte) error {
	if len(src) < len(p.cells)*4 {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrInvalidArgument, len(src), len(p.cells)*4)
	}
	copy(p.Bytes(), src)
	return nil
}

// Cells returns the backing slice. Writes through it are visible to the
// store.
func (p *PixelStore) Cells() []Color {
	return p.cells
}

// Bytes returns the storage as tightly packed RGBA8 bytes. The slice shares
// memory with the store.
func (p *PixelStore) Bytes() []byte {
	if len(p.cells) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&p.cells[0])), len(p.cells)*4)
}

// Clone returns a deep copy of the store.
func (p *PixelStore) Clone() *PixelStore {
	c := &PixelStore{width: p.width, height: p.height}
	if p.cells != nil {
		c.cells = make([]Color, len(p.cells))
		copy(c.cells, p.cells)
	}
	return c
}

// CopyOverlap copies the region src and p have in common, both anchored at
// the top-left corner, into p. Every cell of p outside that region is set
// to fill.
func (p *PixelStore) CopyOverlap(src *PixelStore, fill Color) {
	w := min(p.width, src.width)
	h := min(p.height, src.height)

	for y := range h {
		dst := p.cells[y*p.width : (y+1)*p.width]
		copy(dst[:w], src.cells[y*src.width:y*src.width+w])
		for x := w; x < p.width; x++ {
			dst[x] = fill
		}
	}
	for i := h * p.width; i < len(p.cells); i++ {
		p.cells[i] = fill
	}
}
