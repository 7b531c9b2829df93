package stackblur

import (
	"image"
	"image/color"
)

// Buffer is a bounds-checked view over a packed 4-channel pixel buffer.
// It replaces raw pointer walking with explicit (x, y, channel)
// addressing, computing byte offsets internally from the stride.
//
// A Buffer either owns its backing slice (NewBuffer) or adopts a
// caller-owned one (WrapBuffer); it never reallocates or resizes it.
type Buffer struct {
	width  int
	height int
	stride int // bytes per row, >= width*4
	data   []uint8
}

// NewBuffer creates a buffer with the given dimensions and no row padding
// (stride = width*4).
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		stride: width * BytesPerPixel,
		data:   make([]uint8, width*height*BytesPerPixel),
	}
}

// WrapBuffer adopts an existing packed pixel slice without copying.
// The slice remains owned by the caller; mutations through the returned
// view are visible to it. WrapBuffer validates the geometry up front with
// the same rules as Blur.
func WrapBuffer(data []uint8, width, height, stride int) (*Buffer, error) {
	// Radius is not part of buffer geometry; 1 passes the radius check.
	if err := validateGeometry(data, width, height, stride, 1); err != nil {
		return nil, err
	}
	return &Buffer{
		width:  width,
		height: height,
		stride: stride,
		data:   data,
	}, nil
}

// Width returns the width of the buffer in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the height of the buffer in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Stride returns the row length in bytes.
func (b *Buffer) Stride() int {
	return b.stride
}

// Data returns the raw pixel data (4 bytes per pixel, row-major).
func (b *Buffer) Data() []uint8 {
	return b.data
}

// Channel returns the byte value of channel c (0..3) at (x, y).
// Out-of-range coordinates return 0.
func (b *Buffer) Channel(x, y, c int) uint8 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || c < 0 || c >= channels {
		return 0
	}
	return b.data[y*b.stride+x*BytesPerPixel+c]
}

// SetChannel sets the byte value of channel c (0..3) at (x, y).
// Out-of-range coordinates are silently ignored.
func (b *Buffer) SetChannel(x, y, c int, v uint8) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || c < 0 || c >= channels {
		return
	}
	b.data[y*b.stride+x*BytesPerPixel+c] = v
}

// SetPixel sets all four channel bytes of a single pixel.
func (b *Buffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	i := y*b.stride + x*BytesPerPixel
	b.data[i+0] = c.R
	b.data[i+1] = c.G
	b.data[i+2] = c.B
	b.data[i+3] = c.A
}

// GetPixel returns all four channel bytes of a single pixel.
func (b *Buffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	i := y*b.stride + x*BytesPerPixel
	return color.RGBA{
		R: b.data[i+0],
		G: b.data[i+1],
		B: b.data[i+2],
		A: b.data[i+3],
	}
}

// Clear fills every pixel with a color. Row padding bytes are untouched.
func (b *Buffer) Clear(c color.RGBA) {
	for y := 0; y < b.height; y++ {
		row := y * b.stride
		for x := 0; x < b.width; x++ {
			i := row + x*BytesPerPixel
			b.data[i+0] = c.R
			b.data[i+1] = c.G
			b.data[i+2] = c.B
			b.data[i+3] = c.A
		}
	}
}

// Clone returns a deep copy of the buffer, including any row padding.
func (b *Buffer) Clone() *Buffer {
	data := make([]uint8, len(b.data))
	copy(data, b.data)
	return &Buffer{
		width:  b.width,
		height: b.height,
		stride: b.stride,
		data:   data,
	}
}

// Blur applies a stack blur of the given radius to the buffer in place.
func (b *Buffer) Blur(radius int) error {
	return Blur(b.data, b.width, b.height, b.stride, radius)
}

// ToImage converts the buffer to an image.RGBA, dropping row padding.
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		src := b.data[y*b.stride : y*b.stride+b.width*BytesPerPixel]
		dst := img.Pix[y*img.Stride:]
		copy(dst, src)
	}
	return img
}

// FromImage creates a buffer from an image.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	buf := NewBuffer(width, height)

	// Fast path: image.RGBA shares the packed byte layout.
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < height; y++ {
			src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*BytesPerPixel]
			copy(buf.data[y*buf.stride:], src)
		}
		return buf
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			buf.SetPixel(x, y, c)
		}
	}
	return buf
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	return b.GetPixel(x, y)
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}
