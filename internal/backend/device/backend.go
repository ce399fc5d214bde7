package device

import (
	"fmt"

	"github.com/golgebra/golgebra/internal/matrix"
)

// Backend implements matrix.Backend for device-resident matrices on top
// of a Bridge. Kernel dispatch is asynchronous relative to the host; the
// backend joins through Bridge.Synchronize before any host-side read.
//
// Device matrices are float32 only, matching the shader set.
type Backend struct {
	bridge Bridge
}

// Compile-time check that Backend implements matrix.Backend.
var _ matrix.Backend = (*Backend)(nil)

// New wraps a bridge in a device backend.
func New(bridge Bridge) *Backend {
	return &Backend{bridge: bridge}
}

// Name returns the bridge name.
func (b *Backend) Name() string { return b.bridge.Name() }

// Residency returns matrix.Device.
func (b *Backend) Residency() matrix.Residency { return matrix.Device }

// Synchronize joins all dispatched kernels.
func (b *Backend) Synchronize() error {
	if err := b.bridge.Synchronize(); err != nil {
		return fmt.Errorf("device: synchronize: %w: %v", matrix.ErrDevice, err)
	}
	return nil
}

// Add launches the elementwise sum kernel.
func (b *Backend) Add(x, y *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	return b.elementwise(OpAdd, x, y)
}

// Sub launches the elementwise difference kernel.
func (b *Backend) Sub(x, y *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	return b.elementwise(OpSub, x, y)
}

// Hadamard launches the elementwise product kernel.
func (b *Backend) Hadamard(x, y *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	return b.elementwise(OpHadamard, x, y)
}

func (b *Backend) elementwise(op Op, x, y *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	if err := b.checkOperands(string(op), x, y); err != nil {
		return nil, err
	}
	if !x.Dims().Equal(y.Dims()) {
		return nil, fmt.Errorf("device: %s: %w: extents %s and %s", op, matrix.ErrShapeMismatch, x.Dims(), y.Dims())
	}
	return b.launch(op, LaunchParams{A: x.Dims(), B: y.Dims(), Out: x.Dims()}, x, y)
}

// MatMul launches the matrix product kernel; a (1,1) operand on either
// side degenerates to the scale-by-buffer kernel.
func (b *Backend) MatMul(x, y *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	if err := b.checkOperands("matmul", x, y); err != nil {
		return nil, err
	}
	if isScalarDims(x.Dims()) {
		return b.launch(OpScaleBy, LaunchParams{A: y.Dims(), B: x.Dims(), Out: y.Dims()}, y, x)
	}
	if isScalarDims(y.Dims()) {
		return b.launch(OpScaleBy, LaunchParams{A: x.Dims(), B: y.Dims(), Out: x.Dims()}, x, y)
	}
	outDims, err := matrix.MatMulDims(x.Dims(), y.Dims())
	if err != nil {
		return nil, fmt.Errorf("device: matmul: %w", err)
	}
	return b.launch(OpMatMul, LaunchParams{A: x.Dims(), B: y.Dims(), Out: outDims}, x, y)
}

// Scale launches the scalar multiply kernel.
func (b *Backend) Scale(x *matrix.RawMatrix, s any) (*matrix.RawMatrix, error) {
	return b.scalarOp(OpScale, x, s)
}

// DivScalar launches the scalar divide kernel; IEEE float semantics apply.
func (b *Backend) DivScalar(x *matrix.RawMatrix, s any) (*matrix.RawMatrix, error) {
	return b.scalarOp(OpDivScalar, x, s)
}

func (b *Backend) scalarOp(op Op, x *matrix.RawMatrix, s any) (*matrix.RawMatrix, error) {
	if err := b.checkOperands(string(op), x); err != nil {
		return nil, err
	}
	v, ok := s.(float32)
	if !ok {
		return nil, fmt.Errorf("device: %s: %w: scalar %T against element kind %s",
			op, matrix.ErrShapeMismatch, s, x.Kind())
	}
	return b.launch(op, LaunchParams{A: x.Dims(), Out: x.Dims(), Scalar: float64(v)}, x)
}

// Transpose launches the rank-2 transpose kernel; rank-1 vectors are
// relabeled around a plain buffer copy. Rank-3 transpose is undefined.
func (b *Backend) Transpose(x *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	if err := b.checkOperands("transpose", x); err != nil {
		return nil, err
	}
	d := x.Dims()
	if d.Z() > 1 {
		return nil, fmt.Errorf("device: transpose: %w: undefined for 3-D extents %s", matrix.ErrUnsupportedOperation, d)
	}
	if d.Y() == 1 {
		return b.launch(OpCopy, LaunchParams{A: d, Out: matrix.Of(1, d.X())}, x)
	}
	return b.launch(OpTranspose, LaunchParams{A: d, Out: matrix.Of(d.Y(), d.X())}, x)
}

// Conv launches the convolution kernel.
func (b *Backend) Conv(input, kernel *matrix.RawMatrix, stride int, pad matrix.PadMode) (*matrix.RawMatrix, error) {
	if err := b.checkOperands("conv", input, kernel); err != nil {
		return nil, err
	}
	outDims, err := matrix.ConvOutDims(input.Dims(), kernel.Dims(), stride, pad)
	if err != nil {
		return nil, fmt.Errorf("device: conv: %w", err)
	}
	return b.launch(OpConv, LaunchParams{A: input.Dims(), B: kernel.Dims(), Out: outDims, Stride: stride, Pad: pad}, input, kernel)
}

// Clone duplicates a device matrix through the copy kernel.
func (b *Backend) Clone(x *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	if err := b.checkOperands("clone", x); err != nil {
		return nil, err
	}
	return b.launch(OpCopy, LaunchParams{A: x.Dims(), Out: x.Dims()}, x)
}

// FromHost uploads a host matrix to the device. Only float32 matrices
// have device kernels; other kinds fail with ErrDevice.
func (b *Backend) FromHost(x *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	if x.Residency() != matrix.Host {
		return nil, fmt.Errorf("device: fromhost: %w: operand is already device-resident", matrix.ErrUnsupportedOperation)
	}
	if x.Kind() != matrix.Float32 {
		return nil, fmt.Errorf("device: fromhost: %w: element kind %s has no device kernels", matrix.ErrDevice, x.Kind())
	}
	h, err := b.bridge.Alloc(x.ByteSize())
	if err != nil {
		return nil, fmt.Errorf("device: fromhost: %w: %v", matrix.ErrDevice, err)
	}
	if err := b.bridge.CopyToDevice(x.Bytes(), h); err != nil {
		_ = b.bridge.Free(h)
		return nil, fmt.Errorf("device: fromhost: %w: %v", matrix.ErrDevice, err)
	}
	return matrix.NewRawDevice(x.Dims(), x.Kind(), h), nil
}

// ToHost joins all pending work and downloads a device matrix into fresh
// host storage.
func (b *Backend) ToHost(x *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	if err := b.checkOperands("tohost", x); err != nil {
		return nil, err
	}
	if err := b.Synchronize(); err != nil {
		return nil, err
	}
	out, err := matrix.NewRaw(x.Dims(), x.Kind())
	if err != nil {
		return nil, err
	}
	if err := b.bridge.CopyToHost(x.Device(), out.Bytes()); err != nil {
		return nil, fmt.Errorf("device: tohost: %w: %v", matrix.ErrDevice, err)
	}
	return out, nil
}

// Release returns the device buffer to the bridge.
func (b *Backend) Release(x *matrix.RawMatrix) error {
	if x.Residency() != matrix.Device {
		return nil
	}
	if err := b.bridge.Free(x.Device()); err != nil {
		return fmt.Errorf("device: release: %w: %v", matrix.ErrDevice, err)
	}
	return nil
}

func (b *Backend) launch(op Op, p LaunchParams, operands ...*matrix.RawMatrix) (*matrix.RawMatrix, error) {
	handles := make([]matrix.DeviceHandle, len(operands))
	for i, m := range operands {
		handles[i] = m.Device()
	}
	h, err := b.bridge.Launch(op, p, handles...)
	if err != nil {
		return nil, fmt.Errorf("device: %s: %w: %v", op, matrix.ErrDevice, err)
	}
	return matrix.NewRawDevice(p.Out, matrix.Float32, h), nil
}

func (b *Backend) checkOperands(op string, ms ...*matrix.RawMatrix) error {
	for _, m := range ms {
		if m.Residency() != matrix.Device {
			return fmt.Errorf("device: %s: %w: operand is host-resident; transfer explicitly first",
				op, matrix.ErrUnsupportedOperation)
		}
		if m.Kind() != matrix.Float32 {
			return fmt.Errorf("device: %s: %w: element kind %s has no device kernels",
				op, matrix.ErrDevice, m.Kind())
		}
	}
	return nil
}

func isScalarDims(d matrix.Dims) bool {
	return d.X() == 1 && d.Y() == 1 && d.Z() == 1
}
