// Package stackblur applies an approximate Gaussian blur, in place, to a
// packed 4-channel 8-bit pixel buffer.
//
// # Overview
//
// stackblur is a small, pure Go image filter designed to work alongside
// the GoGPU ecosystem. It implements an iterated box approximation to a
// Gaussian blur: three successive box-filter passes per channel, each pass
// accelerated by a summed-area table so its cost is independent of the
// blur radius.
//
// # Quick Start
//
//	import "github.com/gogpu/stackblur"
//
//	// Blur the backing store of an image.RGBA in place.
//	img := image.NewRGBA(image.Rect(0, 0, 512, 512))
//	// ... draw into img ...
//	err := stackblur.Blur(img.Pix, 512, 512, img.Stride, 8)
//
// # Pixel Format
//
// The filter treats every pixel as four independent byte channels at a
// fixed stride of 4 bytes per pixel. It has no notion of channel meaning:
// RGBA, BGRA and ARGB buffers all blur identically, and alpha is neither
// premultiplied nor handled specially. Row padding is supported through an
// explicit stride parameter.
//
// # Radius Semantics
//
// The effective half-window is always one less than the caller-supplied
// radius. A radius of 1 therefore performs a well-defined no-op, and
// pixels within the effective radius of any image edge are never
// rewritten. Downstream callers were written against this exact semantic;
// it is deliberate and stable.
//
// # Determinism
//
// All accumulation is unsigned integer arithmetic and the final per-pixel
// average uses a single consistent double-precision multiply with
// truncation, so identical inputs produce bit-for-bit identical outputs,
// in both the sequential and the parallel-channel modes.
package stackblur

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
