// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the bitmap surface that owns the pixel buffers
// stackblur mutates.
//
// Surface is a narrow rendering-target abstraction in the Cairo/Skia
// mold: a 2D canvas whose backing store can be drawn into, flushed,
// mutated in place, and re-marked dirty. The blur core never allocates or
// owns pixel memory; this package is the caller-side collaborator that
// does.
//
// # Surface Types
//
//   - ImageSurface: CPU-based surface backed by *image.RGBA
//
// # The Flush / MarkDirty Contract
//
// In-place filters bypass the drawing API, so the surface has to be told
// about them. Blur performs the full dance on the caller's behalf:
//
//  1. Flush, so pending drawing reaches the backing store.
//  2. Read width, height and stride fresh from the backing image.
//  3. Run the filter directly on the pixel bytes.
//  4. MarkDirty, so cached derived state (snapshots) is dropped.
//
// Callers mutating the backing store themselves must follow the same
// sequence.
//
// # Usage
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	s.DrawImage(photo, image.Point{X: 40, Y: 40})
//
//	if err := s.Blur(12); err != nil {
//	    return err
//	}
//	err := s.SavePNG("blurred.png")
//
// # References
//
//   - Cairo: https://cairographics.org/manual/cairo-Image-Surfaces.html
//   - Skia: https://skia.org/docs/user/api/skcanvas_overview/
package surface
