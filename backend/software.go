package backend

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/teximage/driver"
)

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() driver.Driver {
		return NewSoftwareDriver()
	})
}

// SoftwareStats counts the driver calls that reached the software driver.
type SoftwareStats struct {
	Creates       int
	Deletes       int
	Binds         int
	Allocs        int
	Uploads       int
	FilterChanges int
}

// SoftwareTexture is the CPU copy of a texture held by SoftwareDriver.
type SoftwareTexture struct {
	Width  int
	Height int
	Pix    []byte
	Filter gputypes.FilterMode
}

// SoftwareDriver is a driver.Driver that keeps texture storage in memory.
//
// It behaves like a GPU with no rendering: storage is allocated, uploads are
// copied, and binding state is tracked per context. Requests larger than the
// configured maximum texture dimension are rejected like on a real device.
// It is used for headless operation and tests.
type SoftwareDriver struct {
	maxDimension int
	nextID       driver.TextureID
	textures     map[driver.TextureID]*SoftwareTexture
	bound        map[driver.ContextID]driver.TextureID
	stats        SoftwareStats
}

// SoftwareOption configures a SoftwareDriver.
type SoftwareOption func(*SoftwareDriver)

// WithMaxTextureDimension sets the largest width or height AllocTexture
// accepts. The default is the WebGPU default limit.
func WithMaxTextureDimension(n int) SoftwareOption {
	return func(d *SoftwareDriver) {
		d.maxDimension = n
	}
}

// NewSoftwareDriver creates a software driver.
func NewSoftwareDriver(opts ...SoftwareOption) *SoftwareDriver {
	d := &SoftwareDriver{
		maxDimension: int(gputypes.DefaultLimits().MaxTextureDimension2D),
		textures:     make(map[driver.TextureID]*SoftwareTexture),
		bound:        make(map[driver.ContextID]driver.TextureID),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the backend identifier.
func (d *SoftwareDriver) Name() string {
	return BackendSoftware
}

// NewTexture reserves a texture ID.
func (d *SoftwareDriver) NewTexture() (driver.TextureID, error) {
	d.nextID++
	d.textures[d.nextID] = &SoftwareTexture{}
	d.stats.Creates++
	return d.nextID, nil
}

// DeleteTexture drops the texture and unbinds it from every context.
func (d *SoftwareDriver) DeleteTexture(id driver.TextureID) {
	if _, ok := d.textures[id]; !ok {
		return
	}
	delete(d.textures, id)
	for ctx, b := range d.bound {
		if b == id {
			d.bound[ctx] = driver.NoTexture
		}
	}
	d.stats.Deletes++
}

// BindTexture records id as the bound texture of ctx.
func (d *SoftwareDriver) BindTexture(ctx driver.ContextID, id driver.TextureID) error {
	if id != driver.NoTexture {
		if _, ok := d.textures[id]; !ok {
			return fmt.Errorf("%w: %v", driver.ErrUnknownTexture, id)
		}
	}
	d.bound[ctx] = id
	d.stats.Binds++
	return nil
}

// AllocTexture replaces the texture storage. New storage is zeroed.
func (d *SoftwareDriver) AllocTexture(id driver.TextureID, width, height int) error {
	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: %v", driver.ErrUnknownTexture, id)
	}
	if width <= 0 || height <= 0 || width > d.maxDimension || height > d.maxDimension {
		return fmt.Errorf("%w: %dx%d exceeds limit %d", driver.ErrAllocation, width, height, d.maxDimension)
	}
	t.Width = width
	t.Height = height
	t.Pix = make([]byte, width*height*driver.BytesPerPixel)
	d.stats.Allocs++
	return nil
}

// WriteTexture copies pix into the texture storage.
func (d *SoftwareDriver) WriteTexture(id driver.TextureID, width, height int, pix []byte) error {
	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: %v", driver.ErrUnknownTexture, id)
	}
	if t.Pix == nil {
		return fmt.Errorf("%w: %v", driver.ErrNotAllocated, id)
	}
	if width > t.Width || height > t.Height {
		return fmt.Errorf("%w: region %dx%d exceeds texture %dx%d",
			driver.ErrDataSize, width, height, t.Width, t.Height)
	}
	if err := driver.CheckSize(width, height, pix); err != nil {
		return err
	}
	rowBytes := width * driver.BytesPerPixel
	stride := t.Width * driver.BytesPerPixel
	for y := range height {
		copy(t.Pix[y*stride:y*stride+rowBytes], pix[y*rowBytes:(y+1)*rowBytes])
	}
	d.stats.Uploads++
	return nil
}

// SetTextureFilter records the sampling filter.
func (d *SoftwareDriver) SetTextureFilter(id driver.TextureID, filter gputypes.FilterMode) error {
	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: %v", driver.ErrUnknownTexture, id)
	}
	t.Filter = filter
	d.stats.FilterChanges++
	return nil
}

// Stats returns the call counters.
func (d *SoftwareDriver) Stats() SoftwareStats {
	return d.stats
}

// ResetStats zeroes the call counters.
func (d *SoftwareDriver) ResetStats() {
	d.stats = SoftwareStats{}
}

// Texture returns the texture state for id. The returned value shares
// storage with the driver and must not be modified.
func (d *SoftwareDriver) Texture(id driver.TextureID) (*SoftwareTexture, bool) {
	t, ok := d.textures[id]
	return t, ok
}

// Bound returns the texture bound in ctx.
func (d *SoftwareDriver) Bound(ctx driver.ContextID) driver.TextureID {
	return d.bound[ctx]
}

// Len returns the number of live textures.
func (d *SoftwareDriver) Len() int {
	return len(d.textures)
}
