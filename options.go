package teximage

import "log/slog"

// DeviceOption configures a Device during creation.
//
// Example:
//
//	// Default codec, headless context, package logger
//	dev, err := teximage.OpenDevice("")
//
//	// Shared context registry owned by the windowing layer
//	dev, err := teximage.NewDevice(drv, teximage.WithContextRegistry(win.Contexts()))
type DeviceOption func(*deviceOptions)

// deviceOptions holds optional configuration for Device creation.
type deviceOptions struct {
	codec    Codec
	contexts *ContextRegistry
	logger   *slog.Logger
}

// defaultDeviceOptions returns the default device options.
func defaultDeviceOptions() deviceOptions {
	return deviceOptions{
		codec:    nil, // DefaultCodec
		contexts: nil, // fresh registry
		logger:   nil, // package Logger
	}
}

// WithCodec replaces the codec used by LoadFile, LoadMemory, LoadReader and
// the Write methods.
func WithCodec(c Codec) DeviceOption {
	return func(o *deviceOptions) {
		o.codec = c
	}
}

// WithContextRegistry shares a context registry with the device. Windowing
// integrations pass the registry their contexts are made current in.
func WithContextRegistry(r *ContextRegistry) DeviceOption {
	return func(o *deviceOptions) {
		o.contexts = r
	}
}

// WithLogger sets the device logger. It is also handed to the driver when
// the driver accepts a logger.
func WithLogger(l *slog.Logger) DeviceOption {
	return func(o *deviceOptions) {
		o.logger = l
	}
}
