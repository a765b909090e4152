package clustools

import (
	"runtime"
	"sync"
)

// parallelThreshold is the element count below which work stays on the
// calling goroutine.
const parallelThreshold = 256

// parallelRows splits [0, n) into contiguous ranges and calls fn on each
// from its own goroutine. Ranges never overlap, so fn may write to disjoint
// slots of shared slices without synchronization. With workers <= 1 or a
// small n, fn runs once over the whole range.
func parallelRows(n, workers int, fn func(start, end int)) {
	if workers <= 1 || n < parallelThreshold {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	rowsPerWorker := (n + workers - 1) / workers
	for start := 0; start < n; start += rowsPerWorker {
		end := min(start+rowsPerWorker, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}

func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}
