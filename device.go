package teximage

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/teximage/backend"
	"github.com/gogpu/teximage/driver"
)

// Device bundles the services images share: the GPU driver, the context
// registry, the texture binder and the codec.
//
// A Device and every Image created from it must be used from one
// goroutine.
type Device struct {
	driver   driver.Driver
	contexts *ContextRegistry
	binder   *TextureBinder
	codec    Codec
	log      *slog.Logger
}

// NewDevice creates a device on drv.
func NewDevice(drv driver.Driver, opts ...DeviceOption) (*Device, error) {
	if drv == nil {
		return nil, ErrNilDriver
	}

	o := defaultDeviceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		o.codec = DefaultCodec()
	}
	if o.contexts == nil {
		o.contexts = NewContextRegistry()
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	d := &Device{
		driver:   drv,
		contexts: o.contexts,
		binder:   NewTextureBinder(drv, o.contexts),
		codec:    o.codec,
	}
	d.SetLogger(o.logger)
	d.log.Info("teximage: device created", "backend", drv.Name())
	return d, nil
}

// OpenDevice creates a device on a driver from the named backend. An empty
// name selects the highest-priority registered backend.
func OpenDevice(name string, opts ...DeviceOption) (*Device, error) {
	drv, err := backend.Open(name)
	if err != nil {
		if name == "" {
			name = "default"
		}
		return nil, fmt.Errorf("teximage: open backend %q: %w", name, err)
	}
	return NewDevice(drv, opts...)
}

// Driver returns the device's driver.
func (d *Device) Driver() driver.Driver { return d.driver }

// Contexts returns the device's context registry.
func (d *Device) Contexts() *ContextRegistry { return d.contexts }

// Binder returns the device's texture binder.
func (d *Device) Binder() *TextureBinder { return d.binder }

// Codec returns the device's codec.
func (d *Device) Codec() Codec { return d.codec }

// Logger returns the device logger.
func (d *Device) Logger() *slog.Logger { return d.log }

// SetLogger replaces the device logger and passes it on to the driver if
// the driver accepts one. Nil restores the silent logger.
func (d *Device) SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger()
	}
	d.log = l
	d.binder.log = l
	propagateLogger(d.driver, l)
}

// Unbind makes no texture current in the current context.
func (d *Device) Unbind() error {
	return d.binder.MakeCurrent(driver.NoTexture)
}
