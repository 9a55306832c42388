// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/teximage/backend"
	"github.com/gogpu/teximage/driver"
	"github.com/gogpu/teximage/internal/cache"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// Driver errors.
var (
	// ErrNilDevice is returned when New is given a nil device or queue.
	ErrNilDevice = errors.New("wgpu: nil device or queue")

	// ErrNoHALProvider is returned when a provider does not expose HAL types.
	ErrNoHALProvider = errors.New("wgpu: provider does not expose HAL device and queue")
)

// textureUsage is the usage of every texture the driver allocates.
const textureUsage = gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageCopyDst |
	gputypes.TextureUsageCopySrc

func init() {
	backend.Register(backend.BackendNoop, func() driver.Driver {
		return NewHeadless()
	})
}

// texture is the HAL state behind one TextureID.
type texture struct {
	tex     hal.Texture
	view    hal.TextureView
	width   uint32
	height  uint32
	filter  gputypes.FilterMode
	sampler hal.Sampler
}

// Driver implements driver.Driver on a HAL device.
//
// Driver is not safe for concurrent use.
type Driver struct {
	name   string
	device hal.Device
	queue  hal.Queue
	limits gputypes.Limits

	nextID   driver.TextureID
	textures map[driver.TextureID]*texture
	bound    map[driver.ContextID]driver.TextureID
	samplers *cache.Cache[gputypes.FilterMode, hal.Sampler]

	log *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithLimits sets the device limits used to validate allocations.
// The default is gputypes.DefaultLimits.
func WithLimits(l gputypes.Limits) Option {
	return func(d *Driver) {
		d.limits = l
	}
}

// WithName overrides the backend name reported by Name.
func WithName(name string) Option {
	return func(d *Driver) {
		d.name = name
	}
}

// New creates a driver on the given device and queue.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Driver, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	d := &Driver{
		name:     backend.BackendWGPU,
		device:   device,
		queue:    queue,
		limits:   gputypes.DefaultLimits(),
		textures: make(map[driver.TextureID]*texture),
		bound:    make(map[driver.ContextID]driver.TextureID),
		log:      slog.New(discardHandler{}),
	}
	d.samplers = cache.New[gputypes.FilterMode, hal.Sampler](device.DestroySampler)
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewFromProvider creates a driver on the HAL device of provider.
// The provider must expose HalDevice() and HalQueue() returning hal.Device
// and hal.Queue.
func NewFromProvider(provider any, opts ...Option) (*Driver, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return New(device, queue, opts...)
}

// NewHeadless creates a driver on the HAL noop device. Texture contents are
// discarded; allocation limits and binding state behave as on a real device.
func NewHeadless(opts ...Option) *Driver {
	opts = append([]Option{WithName(backend.BackendNoop)}, opts...)
	d, _ := New(&noop.Device{}, &noop.Queue{}, opts...)
	return d
}

// Register registers a "wgpu" backend that creates drivers on the HAL
// device of provider.
func Register(provider any) error {
	if _, err := NewFromProvider(provider); err != nil {
		return err
	}
	backend.Register(backend.BackendWGPU, func() driver.Driver {
		d, err := NewFromProvider(provider)
		if err != nil {
			return nil
		}
		return d
	})
	return nil
}

// SetLogger sets the logger used for allocation and upload diagnostics.
// A nil logger disables logging.
func (d *Driver) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	d.log = l
}

// Name returns the backend identifier.
func (d *Driver) Name() string {
	return d.name
}

// NewTexture reserves a texture ID. HAL storage is created by AllocTexture.
func (d *Driver) NewTexture() (driver.TextureID, error) {
	d.nextID++
	d.textures[d.nextID] = &texture{}
	return d.nextID, nil
}

// DeleteTexture destroys the texture and unbinds it from every context.
func (d *Driver) DeleteTexture(id driver.TextureID) {
	t, ok := d.textures[id]
	if !ok {
		return
	}
	d.destroyStorage(t)
	delete(d.textures, id)
	for ctx, b := range d.bound {
		if b == id {
			d.bound[ctx] = driver.NoTexture
		}
	}
}

// BindTexture records id as the texture ctx samples from.
func (d *Driver) BindTexture(ctx driver.ContextID, id driver.TextureID) error {
	if id != driver.NoTexture {
		if _, ok := d.textures[id]; !ok {
			return fmt.Errorf("%w: %v", driver.ErrUnknownTexture, id)
		}
	}
	d.bound[ctx] = id
	return nil
}

// AllocTexture replaces the texture storage with a new width×height texture.
// On failure the previous storage is kept.
func (d *Driver) AllocTexture(id driver.TextureID, width, height int) error {
	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: %v", driver.ErrUnknownTexture, id)
	}
	maxDim := int(d.limits.MaxTextureDimension2D)
	if width <= 0 || height <= 0 || width > maxDim || height > maxDim {
		return fmt.Errorf("%w: %dx%d exceeds limit %d", driver.ErrAllocation, width, height, maxDim)
	}

	size := hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1} //nolint:gosec // validated against limits
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         fmt.Sprintf("teximage_%d", uint64(id)),
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        driver.TextureFormat,
		Usage:         textureUsage,
	})
	if err != nil {
		return fmt.Errorf("%w: create texture: %v", driver.ErrAllocation, err)
	}

	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         fmt.Sprintf("teximage_%d_view", uint64(id)),
		Format:        driver.TextureFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return fmt.Errorf("%w: create texture view: %v", driver.ErrAllocation, err)
	}

	d.destroyStorage(t)
	t.tex = tex
	t.view = view
	t.width = size.Width
	t.height = size.Height
	d.log.Debug("wgpu: texture allocated", "id", id, "width", width, "height", height)
	return nil
}

// WriteTexture uploads width×height RGBA8 texels at the texture origin.
func (d *Driver) WriteTexture(id driver.TextureID, width, height int, pix []byte) error {
	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: %v", driver.ErrUnknownTexture, id)
	}
	if t.tex == nil {
		return fmt.Errorf("%w: %v", driver.ErrNotAllocated, id)
	}
	if err := driver.CheckSize(width, height, pix); err != nil {
		return err
	}
	w, h := uint32(width), uint32(height) //nolint:gosec // checked positive
	if w > t.width || h > t.height {
		return fmt.Errorf("%w: region %dx%d exceeds texture %dx%d",
			driver.ErrDataSize, w, h, t.width, t.height)
	}

	return d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Aspect:   gputypes.TextureAspectAll,
		},
		pix[:width*height*driver.BytesPerPixel],
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * driver.BytesPerPixel,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
}

// SetTextureFilter assigns the shared sampler for filter to the texture.
func (d *Driver) SetTextureFilter(id driver.TextureID, filter gputypes.FilterMode) error {
	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: %v", driver.ErrUnknownTexture, id)
	}
	s, err := d.samplers.GetOrCreate(filter, func() (hal.Sampler, error) {
		return d.device.CreateSampler(&hal.SamplerDescriptor{
			Label:        "teximage_sampler_" + filter.String(),
			AddressModeU: gputypes.AddressModeClampToEdge,
			AddressModeV: gputypes.AddressModeClampToEdge,
			AddressModeW: gputypes.AddressModeClampToEdge,
			MagFilter:    filter,
			MinFilter:    filter,
			MipmapFilter: gputypes.FilterModeNearest,
			LodMaxClamp:  32,
		})
	})
	if err != nil {
		d.log.Warn("wgpu: sampler creation failed", "filter", filter.String(), "err", err)
		return fmt.Errorf("wgpu: create sampler: %w", err)
	}
	t.filter = filter
	t.sampler = s
	return nil
}

// Bound returns the texture bound in ctx.
func (d *Driver) Bound(ctx driver.ContextID) driver.TextureID {
	return d.bound[ctx]
}

// View returns the texture view of id, or nil if it has no storage.
func (d *Driver) View(id driver.TextureID) hal.TextureView {
	if t, ok := d.textures[id]; ok {
		return t.view
	}
	return nil
}

// Sampler returns the sampler assigned to id, or nil.
func (d *Driver) Sampler(id driver.TextureID) hal.Sampler {
	if t, ok := d.textures[id]; ok {
		return t.sampler
	}
	return nil
}

// Filter returns the filter mode of id.
func (d *Driver) Filter(id driver.TextureID) gputypes.FilterMode {
	if t, ok := d.textures[id]; ok {
		return t.filter
	}
	return gputypes.FilterModeUndefined
}

// Size returns the allocated size of id.
func (d *Driver) Size(id driver.TextureID) (width, height int) {
	if t, ok := d.textures[id]; ok {
		return int(t.width), int(t.height)
	}
	return 0, 0
}

// Samplers returns the number of samplers the driver owns.
func (d *Driver) Samplers() int {
	return d.samplers.Len()
}

// Close destroys every texture and sampler. The device itself belongs to
// the caller and is left open.
func (d *Driver) Close() {
	for id := range d.textures {
		d.DeleteTexture(id)
	}
	d.samplers.Clear()
}

func (d *Driver) destroyStorage(t *texture) {
	if t.view != nil {
		d.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		d.device.DestroyTexture(t.tex)
		t.tex = nil
	}
	t.width, t.height = 0, 0
}

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
