package stackblur

import "sync"

// accBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type accBuffer struct {
	data []uint64
}

// Accumulator pool for blur operations. One accumulator is checked out per
// call (one per channel in parallel mode) and reused across every
// iteration/channel pair within that call.
var accPool = sync.Pool{
	New: func() interface{} {
		// Start with a reasonable default size (1024x1024 image)
		return &accBuffer{data: make([]uint64, 1024*1024)}
	},
}

// getAccumulator retrieves an accumulator from the pool.
// The slice is guaranteed to have at least size elements. Its contents are
// stale; callers must write every cell before reading it.
func getAccumulator(size int) []uint64 {
	wrapper := accPool.Get().(*accBuffer)

	if len(wrapper.data) < size {
		// Need larger buffer - return old one and allocate new
		accPool.Put(wrapper)
		return make([]uint64, size)
	}

	return wrapper.data[:size]
}

// putAccumulator returns an accumulator to the pool.
func putAccumulator(acc []uint64) {
	// Only pool reasonably-sized buffers
	if cap(acc) <= 16*1024*1024 {
		accPool.Put(&accBuffer{data: acc[:cap(acc)]})
	}
}
