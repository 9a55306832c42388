package backend

import (
	"sort"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/teximage/driver"
)

// backends holds registered driver factories.
// Priority order for selection: a real device first, then the CPU driver,
// then the headless HAL device.
var backends = gpucontext.NewRegistry[driver.Driver](
	gpucontext.WithPriority(BackendWGPU, BackendSoftware, BackendNoop),
)

// Register registers a driver factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	backends.Register(name, factory)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	backends.Unregister(name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	names := backends.Available()
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return backends.Has(name)
}

// Get returns a new driver from the named backend.
// Returns nil if the backend is not registered.
func Get(name string) driver.Driver {
	return backends.Get(name)
}

// Default returns a driver from the best available backend.
// Returns nil if no backends are registered.
func Default() driver.Driver {
	return backends.Best()
}

// DefaultName returns the name of the backend Default would use.
func DefaultName() string {
	return backends.BestName()
}

// Open returns a driver from the named backend, or the default one when name
// is empty.
func Open(name string) (driver.Driver, error) {
	var d driver.Driver
	if name == "" {
		d = Default()
	} else {
		d = Get(name)
	}
	if d == nil {
		return nil, ErrBackendNotAvailable
	}
	return d, nil
}
