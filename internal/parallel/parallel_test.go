package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForSequentialFallback(t *testing.T) {
	cfg := Config{Enabled: false}
	var sum int
	For(100, func(i int) { sum += i }, cfg)
	if sum != 4950 {
		t.Errorf("sequential For sum = %d, want 4950", sum)
	}
}

func TestForBelowThreshold(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinPerCall: 64}
	var sum int
	// 10 < MinPerCall, so this must run on the calling goroutine.
	For(10, func(i int) { sum += i }, cfg)
	if sum != 45 {
		t.Errorf("small For sum = %d, want 45", sum)
	}
}

func TestForParallelCoversRange(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinPerCall: 1}
	const n = 10000
	hits := make([]int32, n)
	For(n, func(i int) { atomic.AddInt32(&hits[i], 1) }, cfg)
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestForZeroIterations(t *testing.T) {
	called := false
	For(0, func(int) { called = true }, DefaultConfig())
	if called {
		t.Error("For(0) must not invoke the body")
	}
}
