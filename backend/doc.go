// Package backend provides pluggable GPU driver backends for teximage.
//
// A backend is a named factory producing a [driver.Driver]. Backends register
// themselves from init functions and are selected at runtime, by name or by
// priority.
//
// # Backend Registration
//
// The software backend is registered on import of this package:
//
//	import "github.com/gogpu/teximage/backend"
//
//	drv := backend.Get(backend.BackendSoftware)
//
// The wgpu package registers a headless HAL backend on import and a device
// backed one through wgpu.Register:
//
//	import "github.com/gogpu/teximage/backend/wgpu"
//
//	if err := wgpu.Register(provider); err != nil {
//		log.Fatal(err)
//	}
//	drv := backend.Default() // the provider's device
//
// # Backend Selection
//
// Default walks the priority list (wgpu, software, noop) and falls back to any
// registered factory. Factories are called on every Get and Default; callers
// own the returned driver.
package backend
