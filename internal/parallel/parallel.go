// Package parallel provides the worker-splitting helper used by the host
// backend's matmul and convolution kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how loops are split across goroutines.
type Config struct {
	Enabled    bool // Whether to split at all.
	NumWorkers int  // Goroutines to fan out to.
	MinPerCall int  // Minimum iterations before splitting pays off.
}

// DefaultConfig sizes the split to the machine.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinPerCall: 64,
	}
}

// For executes f(i) for i in [0, n), splitting the range across workers
// when the configuration allows it. Iterations must be independent.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinPerCall {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	if chunk < 1 {
		chunk = 1
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
