// Package teximage manages 2D images that live both in CPU memory and in a
// GPU texture, and keeps the two copies synchronized lazily.
//
// # Overview
//
// An Image owns a PixelStore (row-major RGBA8 colors) and a texture handle
// of a driver.Driver. Pixel writes only touch the CPU copy and mark the
// image dirty; the next Bind makes the texture current and uploads the
// pixels once.
//
//	dev, err := teximage.OpenDevice("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img, err := teximage.NewImage(dev)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer img.Release()
//
//	_ = img.CreateWithSize(64, 64)
//	img.Fill(teximage.Red)
//	_ = img.Bind() // one upload
//	_ = img.Bind() // nothing to do
//	_ = img.Write("red.png")
//
// # Binding
//
// A Device carries a TextureBinder that remembers the last texture bound and
// the context it was bound in. Binding the same texture again in the same
// context does not reach the driver; a context switch forces a re-bind.
// Every bind of a device's textures must go through its binder.
//
// # Backends
//
// Drivers come from the backend registry. The software backend is always
// registered. Importing github.com/gogpu/teximage/backend/wgpu registers a
// headless WebGPU HAL driver and lets applications register one on their
// own device.
//
// # Concurrency
//
// A Device and its images belong to a single goroutine, usually the one
// that owns the window's GPU context.
package teximage
