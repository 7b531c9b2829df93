// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func newTestSurface(t *testing.T) *ImageSurface {
	t.Helper()
	s := NewImageSurface(16, 12)
	t.Cleanup(func() { _ = s.Close() })
	s.Clear(color.RGBA{R: 40, G: 80, B: 120, A: 255})
	return s
}

func TestEncodePNG(t *testing.T) {
	s := newTestSurface(t)

	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() = %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() = %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 12 {
		t.Errorf("decoded bounds = %v, want 16x12", img.Bounds())
	}
	r, g, b, _ := img.At(8, 6).RGBA()
	if r>>8 != 40 || g>>8 != 80 || b>>8 != 120 {
		t.Errorf("decoded pixel = (%d,%d,%d), want (40,80,120)", r>>8, g>>8, b>>8)
	}
}

func TestEncodeBMP(t *testing.T) {
	s := newTestSurface(t)

	var buf bytes.Buffer
	if err := s.EncodeBMP(&buf); err != nil {
		t.Fatalf("EncodeBMP() = %v", err)
	}

	img, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("bmp.Decode() = %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 12 {
		t.Errorf("decoded bounds = %v, want 16x12", img.Bounds())
	}
}

func TestEncodeTIFF(t *testing.T) {
	s := newTestSurface(t)

	var buf bytes.Buffer
	if err := s.EncodeTIFF(&buf); err != nil {
		t.Fatalf("EncodeTIFF() = %v", err)
	}

	img, err := tiff.Decode(&buf)
	if err != nil {
		t.Fatalf("tiff.Decode() = %v", err)
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 40 {
		t.Errorf("decoded pixel R = %d, want 40", r>>8)
	}
}

func TestEncodeClosedSurface(t *testing.T) {
	s := NewImageSurface(4, 4)
	_ = s.Close()

	var buf bytes.Buffer
	for name, encode := range map[string]func() error{
		"png":  func() error { return s.EncodePNG(&buf) },
		"bmp":  func() error { return s.EncodeBMP(&buf) },
		"tiff": func() error { return s.EncodeTIFF(&buf) },
	} {
		if err := encode(); err != ErrSurfaceClosed {
			t.Errorf("%s encode on closed surface = %v, want %v", name, err, ErrSurfaceClosed)
		}
	}
}

func TestSaveByExtension(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{"png", "out.png", false},
		{"bmp", "out.bmp", false},
		{"tif", "out.tif", false},
		{"tiff uppercase", "out.TIFF", false},
		{"unsupported", "out.webp", true},
		{"no extension", "out", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSurface(t)
			path := filepath.Join(dir, tt.file)

			err := s.Save(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Save() = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Save() = %v", err)
			}

			info, statErr := os.Stat(path)
			if statErr != nil {
				t.Fatalf("stat %s: %v", path, statErr)
			}
			if info.Size() == 0 {
				t.Errorf("%s is empty", path)
			}
		})
	}
}
