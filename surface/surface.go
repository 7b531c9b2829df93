// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/stackblur"
)

// ErrSurfaceClosed is reported by operations on a closed surface.
var ErrSurfaceClosed = errors.New("surface: surface is closed")

// Surface is the bitmap rendering-target abstraction.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear fills the entire surface with the given color.
	Clear(c color.Color)

	// DrawImage draws an image with its top-left corner at the given point.
	DrawImage(img image.Image, at image.Point)

	// Blur applies a stack blur of the given radius to the surface,
	// in place. It flushes pending drawing first and marks the surface
	// dirty afterwards.
	Blur(radius int) error

	// Flush ensures all pending drawing operations have reached the
	// backing store. For CPU surfaces this is typically a no-op.
	Flush() error

	// MarkDirty tells the surface its backing store was mutated outside
	// the drawing API, invalidating any cached derived state.
	MarkDirty()

	// Snapshot returns the current surface contents as an RGBA image.
	// The returned image is a copy; modifications to it do not affect
	// the surface.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// After Close, the surface must not be used.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// ImageSurface is a CPU-based surface backed by an *image.RGBA.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	if err := s.Blur(8); err != nil {
//	    return err
//	}
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	// snapshot caches the last Snapshot result until the next mutation.
	snapshot *image.RGBA

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface draws into and blurs the provided image directly.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	bounds := img.Bounds()
	return &ImageSurface{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		img:    img,
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	fillUniform(s.img, c)
	s.MarkDirty()
}

// DrawImage draws an image with its top-left corner at the given point.
// Pixels outside the surface are clipped; source alpha is composited
// source-over.
func (s *ImageSurface) DrawImage(img image.Image, at image.Point) {
	if s.closed || img == nil {
		return
	}
	drawOver(s.img, img, at)
	s.MarkDirty()
}

// Blur applies a stack blur of the given radius to the surface, in place.
//
// The geometry is read fresh from the backing image after Flush, so the
// filter always sees the current stride and bounds. The surface is marked
// dirty on success since the mutation bypasses the drawing API.
func (s *ImageSurface) Blur(radius int) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if err := s.Flush(); err != nil {
		return err
	}

	bounds := s.img.Bounds()
	if err := stackblur.Blur(s.img.Pix, bounds.Dx(), bounds.Dy(), s.img.Stride, radius); err != nil {
		return err
	}

	s.MarkDirty()
	return nil
}

// Flush ensures all pending operations are complete.
// For ImageSurface, drawing is synchronous, so only the closed state is
// checked.
func (s *ImageSurface) Flush() error {
	if s.closed {
		return ErrSurfaceClosed
	}
	return nil
}

// MarkDirty invalidates cached derived state after the backing store was
// mutated outside the drawing API.
func (s *ImageSurface) MarkDirty() {
	s.snapshot = nil
}

// Snapshot returns a copy of the current surface contents.
// The copy is cached until the surface is mutated again.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}
	if s.snapshot == nil {
		result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
		copy(result.Pix, s.img.Pix)
		s.snapshot = result
	}

	out := image.NewRGBA(s.snapshot.Rect)
	copy(out.Pix, s.snapshot.Pix)
	return out
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy; callers mutating it must call
// MarkDirty afterwards.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	s.snapshot = nil
	return nil
}

// fillUniform fills dst with a solid color.
func fillUniform(dst *image.RGBA, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// drawOver composites src onto dst with its top-left corner at "at",
// clipping to the destination bounds.
func drawOver(dst *image.RGBA, src image.Image, at image.Point) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(at)
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
}

// Verify ImageSurface implements Surface interface.
var _ Surface = (*ImageSurface)(nil)
