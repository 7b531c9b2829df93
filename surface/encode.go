// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// EncodePNG writes the surface contents to w in PNG format.
func (s *ImageSurface) EncodePNG(w io.Writer) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	return png.Encode(w, s.img)
}

// EncodeBMP writes the surface contents to w in BMP format.
func (s *ImageSurface) EncodeBMP(w io.Writer) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	return bmp.Encode(w, s.img)
}

// EncodeTIFF writes the surface contents to w in uncompressed TIFF format.
func (s *ImageSurface) EncodeTIFF(w io.Writer) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	return tiff.Encode(w, s.img, nil)
}

// SavePNG saves the surface to a PNG file.
func (s *ImageSurface) SavePNG(path string) error {
	return s.saveWith(path, s.EncodePNG)
}

// SaveBMP saves the surface to a BMP file.
func (s *ImageSurface) SaveBMP(path string) error {
	return s.saveWith(path, s.EncodeBMP)
}

// SaveTIFF saves the surface to a TIFF file.
func (s *ImageSurface) SaveTIFF(path string) error {
	return s.saveWith(path, s.EncodeTIFF)
}

// Save saves the surface to a file, choosing the format from the
// extension: .png, .bmp, .tif or .tiff.
func (s *ImageSurface) Save(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return s.SavePNG(path)
	case ".bmp":
		return s.SaveBMP(path)
	case ".tif", ".tiff":
		return s.SaveTIFF(path)
	default:
		return fmt.Errorf("surface: unsupported image format %q", filepath.Ext(path))
	}
}

// saveWith flushes the surface and streams it to path with the given
// encoder.
func (s *ImageSurface) saveWith(path string, encode func(io.Writer) error) error {
	if err := s.Flush(); err != nil {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return encode(f)
}
