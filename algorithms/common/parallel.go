package common

import (
	"runtime"
	"sync"
)

// serialThreshold is the item count below which ParallelFor stays on the
// calling goroutine.
const serialThreshold = 2048

// WorkerCount determines the number of workers for n independent items.
func WorkerCount(n int) int {
	numCPU := runtime.NumCPU()

	// For small workloads, don't over-parallelize
	if n < 100 {
		return max(1, min(numCPU/2, n))
	}

	// Medium workloads cap at 8 workers
	if n < 1000 {
		return min(numCPU, 8)
	}

	return numCPU
}

// NumChunks returns how many chunks ParallelChunks splits n items into.
func NumChunks(n int) int {
	chunks, _ := chunking(n)
	return chunks
}

func chunking(n int) (chunks, size int) {
	if n <= 0 {
		return 0, 0
	}
	if n < serialThreshold {
		return 1, n
	}
	size = (n + WorkerCount(n) - 1) / WorkerCount(n)
	return (n + size - 1) / size, size
}

// ParallelChunks splits [0, n) into NumChunks(n) contiguous chunks and runs
// fn(chunk, lo, hi) on each from its own goroutine. Chunks are disjoint, so
// fn may write to index-aligned outputs without locking. It returns once
// every chunk is done.
func ParallelChunks(n int, fn func(chunk, lo, hi int)) {
	chunks, size := chunking(n)
	if chunks == 0 {
		return
	}
	if chunks == 1 {
		fn(0, 0, n)
		return
	}

	var wg sync.WaitGroup
	for c := range chunks {
		lo := c * size
		hi := min(lo+size, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(c, lo, hi)
		}()
	}
	wg.Wait()
}

// ParallelFor is ParallelChunks without the chunk number.
func ParallelFor(n int, fn func(lo, hi int)) {
	ParallelChunks(n, func(_, lo, hi int) {
		fn(lo, hi)
	})
}
