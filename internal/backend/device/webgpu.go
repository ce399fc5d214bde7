//go:build windows

package device

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/golgebra/golgebra/internal/matrix"
)

// WebGPU is the production bridge: device memory and kernel execution on
// the GPU through WebGPU compute pipelines. Launches are encoded
// immediately but submitted in batches; Synchronize flushes the batch,
// and CopyToHost flushes before mapping the staging buffer, so a
// host-side read never observes unfinished kernels.
type WebGPU struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu        sync.RWMutex
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline

	pool *bufferPool

	pendingMu sync.Mutex
	pending   []*wgpu.CommandBuffer
}

// Compile-time check that WebGPU implements Bridge.
var _ Bridge = (*WebGPU)(nil)

type gpuBuffer struct {
	buf  *wgpu.Buffer
	size uint64
}

// ByteSize returns the buffer size in bytes.
func (g *gpuBuffer) ByteSize() int { return int(g.size) }

// NewWebGPU creates a WebGPU bridge on the highest-performance adapter.
// Returns an error when WebGPU is unavailable on this system.
func NewWebGPU() (bridge *WebGPU, err error) {
	// The native library loads lazily and panics when missing.
	defer func() {
		if r := recover(); r != nil {
			bridge = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	dev, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := dev.GetQueue()
	if queue == nil {
		dev.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.New("webgpu: failed to get queue")
	}

	return &WebGPU{
		instance:  instance,
		adapter:   adapter,
		device:    dev,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
		pool:      newBufferPool(dev),
	}, nil
}

// Name returns the bridge name.
func (w *WebGPU) Name() string { return "webgpu" }

// PoolStats reports buffer-pool reuse since the bridge was created.
type PoolStats struct {
	// Acquisitions served from the pool
	Hits uint64
	// Acquisitions that had to allocate a fresh buffer
	Misses uint64
	// Buffers currently held for reuse
	PooledBuffers int
}

// PoolStats returns the current buffer-pool counters.
func (w *WebGPU) PoolStats() PoolStats {
	hits, misses, pooled := w.pool.stats()
	return PoolStats{Hits: hits, Misses: misses, PooledBuffers: pooled}
}

// Alloc reserves a zero-initialized storage buffer.
func (w *WebGPU) Alloc(byteSize int) (matrix.DeviceHandle, error) {
	if byteSize < 0 {
		return nil, fmt.Errorf("webgpu: negative allocation size %d", byteSize)
	}
	size := alignUp(uint64(byteSize), 4)
	// Fresh buffers only: WebGPU zero-initializes new allocations, pooled
	// ones keep stale contents.
	buf := w.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	return &gpuBuffer{buf: buf, size: uint64(byteSize)}, nil
}

// Free returns the buffer to the pool.
func (w *WebGPU) Free(h matrix.DeviceHandle) error {
	g, err := w.unwrap(h)
	if err != nil {
		return err
	}
	w.pool.release(g.buf, alignUp(g.size, 4), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	return nil
}

// CopyToDevice uploads host bytes through a mapped staging buffer.
func (w *WebGPU) CopyToDevice(src []byte, dst matrix.DeviceHandle) error {
	g, err := w.unwrap(dst)
	if err != nil {
		return err
	}
	if uint64(len(src)) != g.size {
		return fmt.Errorf("webgpu: upload of %d bytes into %d-byte buffer", len(src), g.size)
	}
	if len(src) == 0 {
		return nil
	}

	size := alignUp(uint64(len(src)), 4)
	staging := w.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageCopySrc,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	defer staging.Release()

	mappedPtr := staging.GetMappedRange(0, size)
	mapped := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mapped, src)
	staging.Unmap()

	encoder := w.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(staging, 0, g.buf, 0, size)
	w.queue.Submit(encoder.Finish(nil))
	return nil
}

// CopyToHost flushes pending kernels, then downloads through a staging
// buffer. Mapping the staging buffer is the blocking join.
func (w *WebGPU) CopyToHost(src matrix.DeviceHandle, dst []byte) error {
	g, err := w.unwrap(src)
	if err != nil {
		return err
	}
	if uint64(len(dst)) != g.size {
		return fmt.Errorf("webgpu: download of %d-byte buffer into %d bytes", g.size, len(dst))
	}
	if err := w.Synchronize(); err != nil {
		return err
	}
	if len(dst) == 0 {
		return nil
	}

	size := alignUp(g.size, 4)
	staging := w.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := w.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(g.buf, 0, staging, 0, size)
	w.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(w.device, wgpu.MapModeRead, 0, size); err != nil {
		return fmt.Errorf("webgpu: failed to map staging buffer: %w", err)
	}
	mappedPtr := staging.GetMappedRange(0, size)
	mapped := unsafe.Slice((*byte)(mappedPtr), size)
	copy(dst, mapped[:len(dst)])
	staging.Unmap()
	return nil
}

// Launch encodes one kernel dispatch and queues its command buffer; the
// GPU work is submitted at the next Synchronize.
func (w *WebGPU) Launch(op Op, p LaunchParams, operands ...matrix.DeviceHandle) (matrix.DeviceHandle, error) {
	bufs := make([]*gpuBuffer, len(operands))
	for i, h := range operands {
		g, err := w.unwrap(h)
		if err != nil {
			return nil, err
		}
		bufs[i] = g
	}

	outSize := uint64(p.Out.NumElements() * matrix.Float32.Size())
	result := &gpuBuffer{
		buf: w.pool.acquire(alignUp(outSize, 4),
			wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst),
		size: outSize,
	}

	spec, err := kernelFor(op, p)
	if err != nil {
		return nil, err
	}

	pipeline := w.getOrCreatePipeline(spec.name, spec.code)
	paramsBuf := w.createUniformBuffer(spec.params)
	defer paramsBuf.Release()

	entries := make([]wgpu.BindGroupEntry, 0, len(bufs)+2)
	for i, g := range bufs {
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), g.buf, 0, alignUp(g.size, 4)))
	}
	entries = append(entries,
		wgpu.BufferBindingEntry(uint32(len(bufs)), result.buf, 0, alignUp(outSize, 4)),
		wgpu.BufferBindingEntry(uint32(len(bufs)+1), paramsBuf, 0, alignUp(uint64(len(spec.params)), 16)),
	)

	bindGroup := w.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), entries)
	defer bindGroup.Release()

	encoder := w.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(spec.groupsX, spec.groupsY, 1)
	pass.End()

	w.pendingMu.Lock()
	w.pending = append(w.pending, encoder.Finish(nil))
	w.pendingMu.Unlock()
	return result, nil
}

// Synchronize submits every queued command buffer.
func (w *WebGPU) Synchronize() error {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	w.queue.Submit(w.pending...)
	w.pending = w.pending[:0]
	return nil
}

// Close flushes and releases every WebGPU resource.
func (w *WebGPU) Close() error {
	err := w.Synchronize()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pool.clear()
	for _, p := range w.pipelines {
		p.Release()
	}
	for _, s := range w.shaders {
		s.Release()
	}
	w.pipelines = map[string]*wgpu.ComputePipeline{}
	w.shaders = map[string]*wgpu.ShaderModule{}

	w.device.Release()
	w.adapter.Release()
	w.instance.Release()
	return err
}

// kernelSpec is one resolved dispatch: shader, packed uniform params, and
// workgroup counts.
type kernelSpec struct {
	name    string
	code    string
	params  []byte
	groupsX uint32
	groupsY uint32
}

func kernelFor(op Op, p LaunchParams) (kernelSpec, error) {
	total := p.Out.NumElements()
	linear := uint32((total + workgroupSize - 1) / workgroupSize)

	switch op {
	case OpAdd, OpSub, OpHadamard, OpScaleBy:
		code := map[Op]string{OpAdd: addShader, OpSub: subShader, OpHadamard: hadamardShader, OpScaleBy: scaleByShader}[op]
		return kernelSpec{string(op), code, packU32(uint32(total)), linear, 1}, nil
	case OpCopy:
		return kernelSpec{string(op), copyShader, packU32(uint32(total)), linear, 1}, nil
	case OpScale, OpDivScalar:
		code := scaleShader
		if op == OpDivScalar {
			code = divScalarShader
		}
		params := packU32(uint32(total))
		binary.LittleEndian.PutUint32(params[4:8], math.Float32bits(float32(p.Scalar)))
		return kernelSpec{string(op), code, params, linear, 1}, nil
	case OpMatMul:
		m, k, n := uint32(p.A.Y()), uint32(p.A.X()), uint32(p.B.X())
		return kernelSpec{
			name:    string(op),
			code:    matmulShader,
			params:  packU32(m, k, n),
			groupsX: (n + 15) / 16,
			groupsY: (m + 15) / 16,
		}, nil
	case OpTranspose:
		return kernelSpec{string(op), transposeShader, packU32(uint32(p.A.X()), uint32(p.A.Y())), linear, 1}, nil
	case OpConv:
		var padX, padY, padZ int
		if p.Pad == matrix.PadSame {
			padX = matrix.SamePadLow(p.A.X(), p.B.X(), p.Stride)
			padY = matrix.SamePadLow(p.A.Y(), p.B.Y(), p.Stride)
			padZ = matrix.SamePadLow(p.A.Z(), p.B.Z(), p.Stride)
		}
		return kernelSpec{
			name: string(op),
			code: convShader,
			params: packU32(
				uint32(p.A.X()), uint32(p.A.Y()), uint32(p.A.Z()),
				uint32(p.B.X()), uint32(p.B.Y()), uint32(p.B.Z()),
				uint32(p.Out.X()), uint32(p.Out.Y()), uint32(p.Out.Z()),
				uint32(p.Stride),
				uint32(padX), uint32(padY), uint32(padZ),
			),
			groupsX: linear,
			groupsY: 1,
		}, nil
	default:
		return kernelSpec{}, fmt.Errorf("webgpu: unknown op %q", op)
	}
}

// packU32 packs values little-endian into a 16-byte-aligned uniform blob.
func packU32(vals ...uint32) []byte {
	size := alignUp(uint64(len(vals)*4), 16)
	out := make([]byte, size)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:(i+1)*4], v)
	}
	return out
}

func (w *WebGPU) getOrCreatePipeline(name, code string) *wgpu.ComputePipeline {
	w.mu.RLock()
	if p, ok := w.pipelines[name]; ok {
		w.mu.RUnlock()
		return p
	}
	w.mu.RUnlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.pipelines[name]; ok {
		return p
	}
	shader, ok := w.shaders[name]
	if !ok {
		shader = w.device.CreateShaderModuleWGSL(code)
		w.shaders[name] = shader
	}
	pipeline := w.device.CreateComputePipelineSimple(nil, shader, "main")
	w.pipelines[name] = pipeline
	return pipeline
}

// createUniformBuffer uploads params with the 16-byte alignment uniform
// buffers require.
func (w *WebGPU) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := alignUp(uint64(len(data)), 16)
	buf := w.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	mappedPtr := buf.GetMappedRange(0, size)
	mapped := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mapped, data)
	buf.Unmap()
	return buf
}

func (w *WebGPU) unwrap(h matrix.DeviceHandle) (*gpuBuffer, error) {
	g, ok := h.(*gpuBuffer)
	if !ok {
		return nil, fmt.Errorf("webgpu: foreign device handle %T", h)
	}
	return g, nil
}

func alignUp(v, to uint64) uint64 {
	return (v + to - 1) &^ (to - 1)
}
