package backend

import (
	"errors"

	"github.com/gogpu/teximage/driver"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend name constants.
const (
	// BackendSoftware is the in-memory CPU driver.
	BackendSoftware = "software"
	// BackendWGPU is a driver on a real gogpu/wgpu HAL device.
	BackendWGPU = "wgpu"
	// BackendNoop is a HAL driver on the wgpu noop device (headless).
	BackendNoop = "noop"
)

// Factory creates a new driver instance.
type Factory func() driver.Driver
