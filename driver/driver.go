// Package driver defines the GPU surface that teximage talks to.
//
// A Driver owns texture objects identified by TextureID and keeps one bound
// texture slot per rendering context. Unlike immediate-mode graphics APIs,
// every call that can fail reports the failure through its error result;
// there is no global error flag to poll.
//
// Drivers are not safe for concurrent use. All calls are expected to come
// from the single goroutine that owns GPU work.
package driver

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Driver errors.
var (
	// ErrAllocation is returned when the GPU rejects texture storage.
	ErrAllocation = errors.New("driver: texture allocation rejected")

	// ErrUnknownTexture is returned for a TextureID the driver never issued
	// or has already deleted.
	ErrUnknownTexture = errors.New("driver: unknown texture")

	// ErrNotAllocated is returned when uploading to a texture that has no storage.
	ErrNotAllocated = errors.New("driver: texture storage not allocated")

	// ErrDataSize is returned when upload data does not cover the region.
	ErrDataSize = errors.New("driver: pixel data size mismatch")
)

// TextureID identifies a texture object. The zero value means "no texture".
type TextureID uint64

// NoTexture is the reserved "nothing bound" texture.
const NoTexture TextureID = 0

// String returns a debug representation of the ID.
func (id TextureID) String() string {
	if id == NoTexture {
		return "tex(none)"
	}
	return fmt.Sprintf("tex(%d)", uint64(id))
}

// ContextID identifies a rendering context. Binding state is per context.
type ContextID uint64

// BytesPerPixel is the size of one RGBA8 texel.
const BytesPerPixel = 4

// TextureFormat is the storage format of every texture a Driver allocates.
const TextureFormat = gputypes.TextureFormatRGBA8Unorm

// Driver is the texture-level GPU surface.
//
// AllocTexture and WriteTexture mirror glTexImage2D(NULL) and a full-extent
// glTexSubImage2D; SetTextureFilter sets both minification and magnification
// filters.
type Driver interface {
	// Name returns a short identifier for logging ("software", "wgpu", ...).
	Name() string

	// NewTexture reserves a texture object without storage.
	NewTexture() (TextureID, error)

	// DeleteTexture releases the texture and its storage. Contexts that had
	// it bound fall back to NoTexture. Deleting an unknown ID is a no-op.
	DeleteTexture(id TextureID)

	// BindTexture makes id the bound texture of ctx. NoTexture unbinds.
	BindTexture(ctx ContextID, id TextureID) error

	// AllocTexture (re)allocates storage of the given size with undefined
	// content. Failures wrap ErrAllocation.
	AllocTexture(id TextureID, width, height int) error

	// WriteTexture uploads width*height RGBA8 texels at the origin.
	WriteTexture(id TextureID, width, height int, pix []byte) error

	// SetTextureFilter sets the min and mag sampling filter of the texture.
	SetTextureFilter(id TextureID, filter gputypes.FilterMode) error
}

// FilterFor returns the sampling filter for the smooth flag.
func FilterFor(smooth bool) gputypes.FilterMode {
	if smooth {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}

// CheckSize validates an upload region against its data.
func CheckSize(width, height int, pix []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: region %dx%d", ErrDataSize, width, height)
	}
	if want := width * height * BytesPerPixel; len(pix) < want {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrDataSize, len(pix), want)
	}
	return nil
}
