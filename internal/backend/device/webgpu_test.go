//go:build windows

package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golgebra/golgebra/internal/matrix"
)

func TestWebGPUPoolStats(t *testing.T) {
	bridge, err := NewWebGPU()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	defer bridge.Close()

	assert.Equal(t, PoolStats{}, bridge.PoolStats())

	src, err := bridge.Alloc(16)
	require.NoError(t, err)
	defer bridge.Free(src)
	dims := matrix.Of(4)

	// The first launch has an empty pool, so its output buffer is a
	// fresh allocation.
	out1, err := bridge.Launch(OpCopy, LaunchParams{A: dims, Out: dims}, src)
	require.NoError(t, err)
	require.NoError(t, bridge.Synchronize())

	stats := bridge.PoolStats()
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)

	// Freeing parks the buffer, and an equal-sized launch reuses it.
	require.NoError(t, bridge.Free(out1))
	assert.Equal(t, 1, bridge.PoolStats().PooledBuffers)

	out2, err := bridge.Launch(OpCopy, LaunchParams{A: dims, Out: dims}, src)
	require.NoError(t, err)
	require.NoError(t, bridge.Synchronize())
	defer bridge.Free(out2)

	after := bridge.PoolStats()
	assert.Equal(t, uint64(1), after.Hits)
	assert.Equal(t, uint64(1), after.Misses)
	assert.Equal(t, 0, after.PooledBuffers)
}
