package stackblur

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Iterations is the number of box-filter passes applied to every channel.
// Three passes are the standard approximation to a true Gaussian; the
// count is fixed and not configurable.
const Iterations = 3

// BytesPerPixel is the packed pixel width the filter operates on.
const BytesPerPixel = 4

// channels is the number of independent byte planes per pixel.
const channels = 4

var (
	// ErrNilBuffer is reported when the pixel buffer is nil.
	ErrNilBuffer = errors.New("stackblur: pixel buffer must not be nil")

	// ErrInvalidRadius is reported when the radius is less than 1.
	// A radius of exactly 1 is valid and performs a no-op blur.
	ErrInvalidRadius = errors.New("stackblur: radius must be >= 1")
)

// StackBlur applies an iterated box blur to a packed 4-channel pixel
// buffer, in place. Each of the three iterations builds a summed-area
// table per channel and rewrites the channel from windowed averages, so
// the cost is O(width*height) regardless of radius.
//
// The effective half-window is Radius-1: callers were written against
// this off-by-one semantic and it must not be "corrected".
type StackBlur struct {
	// Radius is the caller-facing blur radius in pixels.
	// The effective half-window is Radius-1; a Radius of 1 is a no-op.
	Radius int

	// Parallel runs the four channels of each iteration on separate
	// goroutines. Channels are data-independent within one iteration, so
	// the numeric output is bit-for-bit identical to sequential mode.
	// Iterations always remain strictly sequential.
	Parallel bool
}

// New creates a stack blur filter with the given radius.
func New(radius int) *StackBlur {
	return &StackBlur{Radius: radius}
}

// Blur applies a stack blur of the given radius to pix, in place.
// It is shorthand for New(radius).Apply(pix, width, height, stride).
func Blur(pix []uint8, width, height, stride, radius int) error {
	return New(radius).Apply(pix, width, height, stride)
}

// Apply blurs pix in place. The buffer is row-major with 4 bytes per
// pixel and stride bytes per row (stride >= width*4, allowing row
// padding). Bytes outside the inset rectangle
// [Radius-1, width-Radius+1) x [Radius-1, height-Radius+1) are left
// exactly as supplied: the border is never rewritten.
//
// Apply validates its inputs and fails fast on malformed geometry rather
// than reading out of bounds. It never allocates buffer memory on behalf
// of the caller and never retains pix.
func (f *StackBlur) Apply(pix []uint8, width, height, stride int) error {
	if err := validateGeometry(pix, width, height, stride, f.Radius); err != nil {
		return err
	}

	eff := f.Radius - 1
	log := Logger()
	if eff > 0 && (width-2*eff <= 0 || height-2*eff <= 0) {
		log.Warn("blur inset is empty, buffer left unchanged",
			slog.Int("width", width),
			slog.Int("height", height),
			slog.Int("radius", f.Radius))
	}

	start := time.Now()
	if f.Parallel && eff > 0 {
		blurParallel(pix, width, height, stride, eff)
	} else {
		blurSequential(pix, width, height, stride, eff)
	}

	log.Debug("stack blur applied",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("stride", stride),
		slog.Int("radius", f.Radius),
		slog.Bool("parallel", f.Parallel),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// validateGeometry checks the caller-enforced invariants up front so that
// malformed inputs produce a descriptive error instead of an out-of-bounds
// access.
func validateGeometry(pix []uint8, width, height, stride, radius int) error {
	if pix == nil {
		return ErrNilBuffer
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("stackblur: invalid dimensions: width=%d, height=%d (both must be > 0)", width, height)
	}
	if stride < width*BytesPerPixel {
		return fmt.Errorf("stackblur: stride %d too small for width %d (need at least %d)", stride, width, width*BytesPerPixel)
	}
	if len(pix) < stride*height {
		return fmt.Errorf("stackblur: buffer too small: have %d bytes, need stride*height = %d", len(pix), stride*height)
	}
	if radius < 1 {
		return ErrInvalidRadius
	}
	return nil
}

// blurSequential runs all iterations on the calling goroutine, channels
// in order 0,1,2,3, reusing a single pooled accumulator throughout.
func blurSequential(pix []uint8, width, height, stride, eff int) {
	acc := getAccumulator(width * height)
	defer putAccumulator(acc)

	for iter := 0; iter < Iterations; iter++ {
		for ch := 0; ch < channels; ch++ {
			boxBlurChannel(pix, width, height, stride, eff, ch, acc)
		}
	}
}

// blurParallel fans the four channels of each iteration out to separate
// goroutines. Each channel owns a private accumulator for the whole call;
// a barrier between iterations preserves the read-after-write ordering
// that makes iteration N+1 consume iteration N's output.
func blurParallel(pix []uint8, width, height, stride, eff int) {
	var accs [channels][]uint64
	for i := range accs {
		accs[i] = getAccumulator(width * height)
	}
	defer func() {
		for _, a := range accs {
			putAccumulator(a)
		}
	}()

	for iter := 0; iter < Iterations; iter++ {
		var wg sync.WaitGroup
		for ch := 0; ch < channels; ch++ {
			wg.Add(1)
			go func(ch int) {
				defer wg.Done()
				boxBlurChannel(pix, width, height, stride, eff, ch, accs[ch])
			}(ch)
		}
		wg.Wait()
	}
}

// boxBlurChannel runs one box-filter pass over a single byte channel:
// a full 2D prefix sum of the channel into acc, then a windowed average
// written back over the inset rectangle.
//
// acc must hold at least width*height elements. Every cell is written by
// the prefix pass before it is read, so acc needs no clearing between
// reuses.
func boxBlurChannel(pix []uint8, width, height, stride, eff, ch int, acc []uint64) {
	// Pass 1: inclusion-exclusion prefix sum. acc[y*width+x] holds the sum
	// of the channel over the rectangle [0,x] x [0,y] inclusive.
	for y := 0; y < height; y++ {
		row := y * stride
		ai := y * width
		for x := 0; x < width; x++ {
			tot := uint64(pix[row+x*BytesPerPixel+ch])
			if x > 0 {
				tot += acc[ai+x-1]
			}
			if y > 0 {
				tot += acc[ai+x-width]
				if x > 0 {
					tot -= acc[ai+x-width-1]
				}
			}
			acc[ai+x] = tot
		}
	}

	if eff < 1 {
		// Empty inset: the prefix-sum bookkeeping ran, nothing is rewritten.
		return
	}

	// Pass 2: windowed average over the inset rectangle. The divisor
	// assumes a full (2*eff)x(2*eff) window even where the window corners
	// are clamped, which slightly biases values near the inset rim.
	// Callers depend on that exact output; do not renormalize.
	mul := 1.0 / float64((2*eff)*(2*eff))
	for y := eff; y < height-eff; y++ {
		row := y * stride
		t := max(0, y-eff)
		b := min(height-1, y+eff)
		for x := eff; x < width-eff; x++ {
			l := max(0, x-eff)
			r := min(width-1, x+eff)

			// Range sum over the window (l,r] x (t,b] via the standard
			// four-corner formula. All operands are prefix sums of
			// non-negative values, so this order never underflows.
			tot := acc[b*width+r] + acc[t*width+l] - acc[b*width+l] - acc[t*width+r]

			pix[row+x*BytesPerPixel+ch] = uint8(float64(tot) * mul)
		}
	}
}
