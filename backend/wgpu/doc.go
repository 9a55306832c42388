// Package wgpu provides a texture driver on top of the gogpu/wgpu HAL.
//
// The driver maps teximage's texture operations onto WebGPU objects:
//
//   - NewTexture reserves an ID; storage is created lazily by AllocTexture
//   - AllocTexture creates an RGBA8Unorm hal.Texture and its view
//   - WriteTexture uploads through hal.Queue.WriteTexture
//   - SetTextureFilter picks a shared hal.Sampler per filter mode
//   - BindTexture records the texture a context will sample from
//
// WebGPU has no global "bound texture"; the per-context binding recorded here
// is what a renderer consults (Bound, View, Sampler) when it builds bind
// groups for the next draw.
//
// # Device Sources
//
// New wraps an explicit hal.Device and hal.Queue. NewFromProvider accepts any
// provider exposing HalDevice() and HalQueue(), such as a gogpu window.
// NewHeadless runs on the HAL noop device and is registered as the "noop"
// backend on import.
package wgpu
