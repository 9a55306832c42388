// Package codec decodes image files into tightly packed RGBA8 pixels and
// encodes RGBA8 pixels as BMP, PNG or TGA.
//
// Decoding goes through image.Decode, so every format registered with the
// image package is accepted. The package registers GIF, JPEG and PNG from
// the standard library and BMP, TIFF and WebP from golang.org/x/image.
// Uncompressed and run-length encoded TGA files, which carry no magic
// number, are handled by a built-in reader when no registered format
// matches.
//
// Decoded pixel buffers come from a size-bucketed Pool and must be handed
// back with Decoded.Release once copied.
package codec
