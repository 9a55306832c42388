package teximage

import (
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/teximage/driver"
)

var (
	_ gpucontext.Texture              = (*Image)(nil)
	_ gpucontext.TextureUpdater       = (*Image)(nil)
	_ gpucontext.TextureRegionUpdater = (*Image)(nil)
)

// Image is a 2D image with a CPU pixel store and a GPU texture.
//
// Pixel writes only touch the CPU copy and mark the image dirty. The GPU
// texture is brought up to date by the next Bind.
//
// Image is not safe for concurrent use.
type Image struct {
	dev     *Device
	texture driver.TextureID
	pixels  PixelStore

	textureUpdated bool
	smooth         bool
	released       bool
}

// NewImage creates an empty image with a fresh texture on dev. The texture
// samples with nearest filtering until SetSmooth(true) is called.
func NewImage(dev *Device) (*Image, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w: nil device", ErrInvalidArgument)
	}
	dev.contexts.Ensure()

	tex, err := dev.driver.NewTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureAllocation, err)
	}

	// smooth starts out true so SetSmooth(false) reaches the driver and
	// the GPU filter state matches the flag.
	img := &Image{
		dev:            dev,
		texture:        tex,
		smooth:         true,
		textureUpdated: true,
	}
	if err := img.SetSmooth(false); err != nil {
		dev.binder.WillDelete(tex)
		dev.driver.DeleteTexture(tex)
		return nil, err
	}
	return img, nil
}

// Texture returns the driver texture ID.
func (img *Image) Texture() driver.TextureID { return img.texture }

// Width returns the width in pixels, 0 for an empty image.
func (img *Image) Width() int { return img.pixels.Width() }

// Height returns the height in pixels, 0 for an empty image.
func (img *Image) Height() int { return img.pixels.Height() }

// Size returns the width and height.
func (img *Image) Size() (width, height int) {
	return img.pixels.Width(), img.pixels.Height()
}

// Empty reports whether the image has no pixels.
func (img *Image) Empty() bool { return img.pixels.Empty() }

// Dirty reports whether the pixels changed since the last upload.
func (img *Image) Dirty() bool { return !img.textureUpdated }

// Released reports whether Release was called.
func (img *Image) Released() bool { return img.released }

// CreateWithSize sizes the image to width×height.
//
// When the size changes the texture storage is reallocated and the pixel
// content is discarded. The new pixels are zeroed. Either way the image is
// marked dirty. On ErrTextureAllocation the image keeps its previous size
// and content.
func (img *Image) CreateWithSize(width, height int) error {
	if img.released {
		return ErrReleased
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidArgument, width, height)
	}

	if width != img.pixels.Width() || height != img.pixels.Height() {
		img.dev.contexts.Ensure()
		if err := img.dev.binder.MakeCurrent(img.texture); err != nil {
			return fmt.Errorf("%w: %w", ErrTextureAllocation, err)
		}
		if err := img.dev.driver.AllocTexture(img.texture, width, height); err != nil {
			img.dev.log.Debug("teximage: texture allocation rejected",
				"texture", img.texture, "width", width, "height", height, "err", err)
			return fmt.Errorf("%w: %dx%d: %w", ErrTextureAllocation, width, height, err)
		}
		img.pixels.Reset(width, height)
		img.dev.log.Debug("teximage: texture allocated",
			"texture", img.texture, "width", width, "height", height)
	}

	img.textureUpdated = false
	return nil
}

// LoadRaw sizes the image to width×height and copies the first
// width*height colors of pix into it.
func (img *Image) LoadRaw(width, height int, pix []Color) error {
	if width > 0 && height > 0 && len(pix) < width*height {
		return fmt.Errorf("%w: have %d pixels, need %d", ErrInvalidArgument, len(pix), width*height)
	}
	if err := img.CreateWithSize(width, height); err != nil {
		return err
	}
	return img.pixels.Replace(pix)
}

// LoadRawBytes is LoadRaw for tightly packed RGBA8 bytes.
func (img *Image) LoadRawBytes(width, height int, pix []byte) error {
	if width > 0 && height > 0 && len(pix) < width*height*4 {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrInvalidArgument, len(pix), width*height*4)
	}
	if err := img.CreateWithSize(width, height); err != nil {
		return err
	}
	return img.pixels.ReplaceBytes(pix)
}

// Resize changes the size to width×height and keeps the content of the
// region the old and new sizes share. Cells outside it are EmptyColor.
func (img *Image) Resize(width, height int) error {
	old := img.pixels
	if err := img.CreateWithSize(width, height); err != nil {
		return err
	}
	if old.Width() == width && old.Height() == height {
		return nil
	}
	img.pixels.CopyOverlap(&old, EmptyColor)
	return nil
}

// At returns the pixel at (x, y). Coordinates are not checked.
func (img *Image) At(x, y int) Color {
	return img.pixels.At(x, y)
}

// Set stores c at (x, y) and marks the image dirty. Coordinates are not
// checked.
func (img *Image) Set(x, y int, c Color) {
	img.pixels.Set(x, y, c)
	img.textureUpdated = false
}

// AtChecked is At with a bounds check.
func (img *Image) AtChecked(x, y int) (Color, error) {
	return img.pixels.AtChecked(x, y)
}

// SetChecked is Set with a bounds check.
func (img *Image) SetChecked(x, y int, c Color) error {
	if err := img.pixels.SetChecked(x, y, c); err != nil {
		return err
	}
	img.textureUpdated = false
	return nil
}

// Fill sets every pixel to c and marks the image dirty.
func (img *Image) Fill(c Color) {
	img.pixels.Fill(c)
	img.textureUpdated = false
}

// Buffer returns the pixel storage by reference. Writes through it are not
// tracked; call MarkDirty afterwards.
func (img *Image) Buffer() []Color {
	return img.pixels.Cells()
}

// Bytes returns the pixel storage as RGBA8 bytes, sharing memory with
// Buffer.
func (img *Image) Bytes() []byte {
	return img.pixels.Bytes()
}

// MarkDirty forces the next Bind to upload the pixels.
func (img *Image) MarkDirty() {
	img.textureUpdated = false
}

// ToImage returns a copy of the pixels as an *image.NRGBA.
func (img *Image) ToImage() *image.NRGBA {
	w, h := img.Size()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(out.Pix, img.pixels.Bytes())
	return out
}

// Bind makes the image's texture current and uploads the pixels if they
// changed since the last upload. A failed upload leaves the image dirty.
func (img *Image) Bind() error {
	if img.released {
		return ErrReleased
	}
	img.dev.contexts.Ensure()
	if err := img.dev.binder.MakeCurrent(img.texture); err != nil {
		return err
	}
	if !img.textureUpdated && !img.pixels.Empty() {
		return img.upload()
	}
	return nil
}

// UpdateTexture makes the texture current and uploads the pixels
// unconditionally.
func (img *Image) UpdateTexture() error {
	if img.released {
		return ErrReleased
	}
	img.dev.contexts.Ensure()
	if err := img.dev.binder.MakeCurrent(img.texture); err != nil {
		return err
	}
	if img.pixels.Empty() {
		return nil
	}
	return img.upload()
}

func (img *Image) upload() error {
	w, h := img.Size()
	if err := img.dev.driver.WriteTexture(img.texture, w, h, img.pixels.Bytes()); err != nil {
		return fmt.Errorf("teximage: upload %v: %w", img.texture, err)
	}
	img.textureUpdated = true
	img.dev.log.Debug("teximage: texture uploaded", "texture", img.texture, "width", w, "height", h)
	return nil
}

// Unbind makes no texture current.
func (img *Image) Unbind() error {
	return img.dev.Unbind()
}

// UpdateData replaces all pixels with data and uploads them. data must be
// exactly Width*Height*4 RGBA8 bytes.
func (img *Image) UpdateData(data []byte) error {
	if img.released {
		return ErrReleased
	}
	if img.pixels.Empty() {
		return ErrEmptyImage
	}
	if len(data) != img.pixels.Len()*4 {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrInvalidArgument, len(data), img.pixels.Len()*4)
	}
	copy(img.pixels.Bytes(), data)
	img.textureUpdated = false
	return img.Bind()
}

// UpdateRegion replaces the w×h pixels at (x, y) with data and uploads the
// image. data must be exactly w*h*4 RGBA8 bytes.
func (img *Image) UpdateRegion(x, y, w, h int, data []byte) error {
	if img.released {
		return ErrReleased
	}
	if w <= 0 || h <= 0 || x < 0 || y < 0 || x+w > img.Width() || y+h > img.Height() {
		return fmt.Errorf("%w: region (%d,%d) %dx%d in %dx%d",
			ErrOutOfBounds, x, y, w, h, img.Width(), img.Height())
	}
	if len(data) != w*h*4 {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrInvalidArgument, len(data), w*h*4)
	}
	dst := img.pixels.Bytes()
	stride := img.Width() * 4
	for row := range h {
		off := (y+row)*stride + x*4
		copy(dst[off:off+w*4], data[row*w*4:(row+1)*w*4])
	}
	img.textureUpdated = false
	return img.Bind()
}

// SetSmooth selects linear (true) or nearest (false) texture filtering.
// Nothing reaches the driver when the mode does not change.
func (img *Image) SetSmooth(smooth bool) error {
	if img.released {
		return ErrReleased
	}
	if smooth == img.smooth {
		return nil
	}
	img.dev.contexts.Ensure()
	if err := img.dev.binder.MakeCurrent(img.texture); err != nil {
		return err
	}
	filter := driver.FilterFor(smooth)
	if err := img.dev.driver.SetTextureFilter(img.texture, filter); err != nil {
		return fmt.Errorf("teximage: set filter %v: %w", filter, err)
	}
	img.smooth = smooth
	img.dev.log.Debug("teximage: filter changed", "texture", img.texture, "filter", filter.String())
	return nil
}

// IsSmooth reports whether linear filtering is selected.
func (img *Image) IsSmooth() bool {
	return img.smooth
}

// Release deletes the texture and frees the pixels. The binder forgets the
// texture first so the ID cannot be mistaken for a bound one. Release is
// idempotent.
func (img *Image) Release() {
	if img.released {
		img.dev.log.Warn("teximage: release of released image", "texture", img.texture)
		return
	}
	img.dev.binder.WillDelete(img.texture)
	img.dev.driver.DeleteTexture(img.texture)
	img.pixels.Free()
	img.textureUpdated = true
	img.released = true
	img.dev.log.Debug("teximage: image released", "texture", img.texture)
}
