package operator

import "sync"

// ParallelFor executes fn over [0, n) in contiguous chunks, one goroutine per
// chunk. Ranges shorter than minChunk, or a single worker, run inline.
func ParallelFor(n, minChunk, numWorkers int, fn func(start, end int)) {
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if minChunk > 0 && n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
