package device

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golgebra/golgebra/internal/backend/host"
	"github.com/golgebra/golgebra/internal/matrix"
)

// MockBridge is a CPU-backed bridge for development and tests. It
// satisfies the Bridge contract including its asynchrony: Launch only
// enqueues the kernel; nothing executes until Synchronize. Kernels are
// evaluated by the host backend.
type MockBridge struct {
	mu      sync.Mutex
	pending []func() error
	cpu     *host.Backend

	// Launched records the dispatched ops in order, for tests.
	Launched []Op

	// Fault injection. A set field makes the corresponding call fail.
	FailAlloc    bool
	FailTransfer bool
	FailLaunch   bool
	FailSync     bool

	live int // currently allocated buffers
}

type mockBuffer struct {
	data []byte
	free bool
}

// ByteSize returns the buffer size in bytes.
func (m *mockBuffer) ByteSize() int { return len(m.data) }

// NewMockBridge creates a mock bridge with a single fake device.
func NewMockBridge() *MockBridge {
	return &MockBridge{cpu: host.New()}
}

// Name returns the bridge name.
func (b *MockBridge) Name() string { return "mock" }

// Alloc reserves a zero-filled in-memory buffer.
func (b *MockBridge) Alloc(byteSize int) (matrix.DeviceHandle, error) {
	if b.FailAlloc {
		return nil, errors.New("mock: allocation failure injected")
	}
	if byteSize < 0 {
		return nil, fmt.Errorf("mock: negative allocation size %d", byteSize)
	}
	b.mu.Lock()
	b.live++
	b.mu.Unlock()
	return &mockBuffer{data: make([]byte, byteSize)}, nil
}

// Free marks the buffer released.
func (b *MockBridge) Free(h matrix.DeviceHandle) error {
	buf, err := b.unwrap(h)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if buf.free {
		return errors.New("mock: double free")
	}
	buf.free = true
	b.live--
	return nil
}

// CopyToDevice uploads host bytes into a mock buffer.
func (b *MockBridge) CopyToDevice(src []byte, dst matrix.DeviceHandle) error {
	if b.FailTransfer {
		return errors.New("mock: transfer failure injected")
	}
	buf, err := b.unwrap(dst)
	if err != nil {
		return err
	}
	if len(src) != len(buf.data) {
		return fmt.Errorf("mock: upload of %d bytes into %d-byte buffer", len(src), len(buf.data))
	}
	copy(buf.data, src)
	return nil
}

// CopyToHost completes pending work, then downloads a mock buffer.
func (b *MockBridge) CopyToHost(src matrix.DeviceHandle, dst []byte) error {
	if b.FailTransfer {
		return errors.New("mock: transfer failure injected")
	}
	if err := b.Synchronize(); err != nil {
		return err
	}
	buf, err := b.unwrap(src)
	if err != nil {
		return err
	}
	if len(dst) != len(buf.data) {
		return fmt.Errorf("mock: download of %d-byte buffer into %d bytes", len(buf.data), len(dst))
	}
	copy(dst, buf.data)
	return nil
}

// Launch allocates the result buffer and enqueues the kernel. The
// computation runs at the next Synchronize, matching the asynchronous
// device contract.
func (b *MockBridge) Launch(op Op, p LaunchParams, operands ...matrix.DeviceHandle) (matrix.DeviceHandle, error) {
	if b.FailLaunch {
		return nil, errors.New("mock: launch failure injected")
	}
	bufs := make([]*mockBuffer, len(operands))
	for i, h := range operands {
		buf, err := b.unwrap(h)
		if err != nil {
			return nil, err
		}
		bufs[i] = buf
	}
	result := &mockBuffer{data: make([]byte, p.Out.NumElements()*matrix.Float32.Size())}

	b.mu.Lock()
	b.live++
	b.Launched = append(b.Launched, op)
	b.pending = append(b.pending, func() error {
		return b.execute(op, p, bufs, result)
	})
	b.mu.Unlock()
	return result, nil
}

// Synchronize runs every pending kernel in dispatch order.
func (b *MockBridge) Synchronize() error {
	if b.FailSync {
		return errors.New("mock: synchronize failure injected")
	}
	b.mu.Lock()
	queue := b.pending
	b.pending = nil
	b.mu.Unlock()
	for _, run := range queue {
		if err := run(); err != nil {
			return err
		}
	}
	return nil
}

// Close drops the pending queue.
func (b *MockBridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
	return nil
}

// Live returns the number of currently allocated buffers, for leak tests.
func (b *MockBridge) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live
}

// execute evaluates one kernel on the host backend.
func (b *MockBridge) execute(op Op, p LaunchParams, operands []*mockBuffer, result *mockBuffer) error {
	if op == OpCopy {
		copy(result.data, operands[0].data)
		return nil
	}

	a, err := b.hostView(p.A, operands[0])
	if err != nil {
		return err
	}

	var out *matrix.RawMatrix
	switch op {
	case OpAdd, OpSub, OpHadamard, OpMatMul, OpConv, OpScaleBy:
		c, err := b.hostView(p.B, operands[1])
		if err != nil {
			return err
		}
		switch op {
		case OpAdd:
			out, err = b.cpu.Add(a, c)
		case OpSub:
			out, err = b.cpu.Sub(a, c)
		case OpHadamard:
			out, err = b.cpu.Hadamard(a, c)
		case OpMatMul:
			out, err = b.cpu.MatMul(a, c)
		case OpConv:
			out, err = b.cpu.Conv(a, c, p.Stride, p.Pad)
		case OpScaleBy:
			out, err = b.cpu.Scale(a, c.AsFloat32()[0])
		}
		if err != nil {
			return err
		}
	case OpScale:
		if out, err = b.cpu.Scale(a, float32(p.Scalar)); err != nil {
			return err
		}
	case OpDivScalar:
		if out, err = b.cpu.DivScalar(a, float32(p.Scalar)); err != nil {
			return err
		}
	case OpTranspose:
		if out, err = b.cpu.Transpose(a); err != nil {
			return err
		}
	default:
		return fmt.Errorf("mock: unknown op %q", op)
	}

	if out.ByteSize() != len(result.data) {
		return fmt.Errorf("mock: %s produced %d bytes, result buffer holds %d", op, out.ByteSize(), len(result.data))
	}
	copy(result.data, out.Bytes())
	return nil
}

// hostView copies a mock buffer into a host RawMatrix for evaluation.
func (b *MockBridge) hostView(d matrix.Dims, buf *mockBuffer) (*matrix.RawMatrix, error) {
	raw, err := matrix.NewRaw(d, matrix.Float32)
	if err != nil {
		return nil, err
	}
	if raw.ByteSize() != len(buf.data) {
		return nil, fmt.Errorf("mock: extents %s against %d-byte buffer", d, len(buf.data))
	}
	copy(raw.Bytes(), buf.data)
	return raw, nil
}

func (b *MockBridge) unwrap(h matrix.DeviceHandle) (*mockBuffer, error) {
	buf, ok := h.(*mockBuffer)
	if !ok {
		return nil, fmt.Errorf("mock: foreign device handle %T", h)
	}
	if buf.free {
		return nil, errors.New("mock: use after free")
	}
	return buf, nil
}
