//go:build windows

package device

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

const (
	smallThreshold  = 4 * 1024    // 4KB
	mediumThreshold = 1024 * 1024 // 1MB
	maxPooled       = 64          // max buffers kept per category
)

type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
	usage  wgpu.BufferUsage
}

// bufferPool keeps released GPU buffers for reuse, categorized by size, to
// cut allocation overhead on repeated kernel dispatch.
type bufferPool struct {
	device *wgpu.Device

	mu     sync.Mutex
	small  []*pooledBuffer
	medium []*pooledBuffer
	large  []*pooledBuffer

	hits   uint64
	misses uint64
}

func newBufferPool(device *wgpu.Device) *bufferPool {
	return &bufferPool{device: device}
}

// acquire returns a pooled buffer of at least size bytes with the wanted
// usage, or creates a fresh one. Pooled buffers keep their previous
// contents; callers must fully overwrite them.
func (p *bufferPool) acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	p.mu.Lock()
	pool := p.categorize(size)
	for i, pb := range *pool {
		if pb.size >= size && pb.usage&usage == usage {
			*pool = append((*pool)[:i], (*pool)[i+1:]...)
			p.hits++
			p.mu.Unlock()
			return pb.buffer
		}
	}
	p.misses++
	p.mu.Unlock()

	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  size,
	})
}

// release returns a buffer to the pool, or frees it when the category is
// full.
func (p *bufferPool) release(buffer *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	p.mu.Lock()
	pool := p.categorize(size)
	if len(*pool) >= maxPooled {
		p.mu.Unlock()
		buffer.Release()
		return
	}
	*pool = append(*pool, &pooledBuffer{buffer: buffer, size: size, usage: usage})
	p.mu.Unlock()
}

// stats reports reuse counters and the number of buffers currently held.
func (p *bufferPool) stats() (hits, misses uint64, pooled int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses, len(p.small) + len(p.medium) + len(p.large)
}

// clear frees every pooled buffer.
func (p *bufferPool) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pool := range []*[]*pooledBuffer{&p.small, &p.medium, &p.large} {
		for _, pb := range *pool {
			pb.buffer.Release()
		}
		*pool = nil
	}
}

func (p *bufferPool) categorize(size uint64) *[]*pooledBuffer {
	switch {
	case size < smallThreshold:
		return &p.small
	case size < mediumThreshold:
		return &p.medium
	default:
		return &p.large
	}
}
