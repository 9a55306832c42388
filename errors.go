package teximage

import "errors"

// Errors returned by image operations. They are wrapped with context and
// must be matched with errors.Is.
var (
	// ErrInvalidArgument is returned for zero or negative dimensions and
	// for pixel buffers smaller than width*height.
	ErrInvalidArgument = errors.New("teximage: invalid argument")

	// ErrTextureAllocation is returned when the driver rejects a texture
	// allocation. The image keeps its previous size and content.
	ErrTextureAllocation = errors.New("teximage: texture allocation failed")

	// ErrDecode is returned when an image file or buffer cannot be decoded.
	ErrDecode = errors.New("teximage: decode failed")

	// ErrEmptyImage is returned when writing an image with no pixels.
	ErrEmptyImage = errors.New("teximage: empty image")

	// ErrReleased is returned by GPU operations on a released image.
	ErrReleased = errors.New("teximage: image released")

	// ErrOutOfBounds is returned by checked pixel access outside the image.
	ErrOutOfBounds = errors.New("teximage: pixel out of bounds")

	// ErrNilDriver is returned when a Device is created without a driver.
	ErrNilDriver = errors.New("teximage: nil driver")
)
