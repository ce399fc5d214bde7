package matrix

import (
	"fmt"
	"unsafe"
)

// Residency identifies where a matrix's buffer lives.
type Residency int

// Supported residencies.
const (
	Host Residency = iota
	Device
)

// String returns a human-readable residency name.
func (r Residency) String() string {
	switch r {
	case Host:
		return "host"
	case Device:
		return "device"
	default:
		return "unknown"
	}
}

// DeviceHandle is an opaque reference to a device-resident buffer, owned by
// a device bridge. The core never dereferences it; it only threads it
// between bridge calls.
type DeviceHandle interface {
	ByteSize() int
}

// RawMatrix is the low-level storage representation: extents, element kind,
// residency, and exactly one of a host byte buffer or a device handle.
// The buffer length is always dims.NumElements() * kind.Size().
type RawMatrix struct {
	buf   []byte
	dev   DeviceHandle
	dims  Dims
	kind  ElemKind
	where Residency
}

// NewRaw allocates a zero-filled host RawMatrix.
func NewRaw(dims Dims, kind ElemKind) (*RawMatrix, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	return &RawMatrix{
		buf:   make([]byte, dims.NumElements()*kind.Size()),
		dims:  dims.Clone(),
		kind:  kind,
		where: Host,
	}, nil
}

// NewRawDevice wraps a device handle produced by a bridge. The handle must
// hold exactly dims.NumElements() * kind.Size() bytes.
func NewRawDevice(dims Dims, kind ElemKind, h DeviceHandle) *RawMatrix {
	return &RawMatrix{
		dev:   h,
		dims:  dims.Clone(),
		kind:  kind,
		where: Device,
	}
}

// Dims returns the extents.
func (r *RawMatrix) Dims() Dims { return r.dims }

// Kind returns the element kind.
func (r *RawMatrix) Kind() ElemKind { return r.kind }

// Residency returns where the buffer lives.
func (r *RawMatrix) Residency() Residency { return r.where }

// NumElements returns the total element count.
func (r *RawMatrix) NumElements() int { return r.dims.NumElements() }

// ByteSize returns the buffer size in bytes.
func (r *RawMatrix) ByteSize() int { return r.NumElements() * r.kind.Size() }

// Bytes returns the host byte buffer.
// Panics when the matrix is device-resident; transfer it first.
func (r *RawMatrix) Bytes() []byte {
	if r.where != Host {
		panic("matrix: Bytes on device-resident matrix; transfer to host first")
	}
	return r.buf
}

// Device returns the device handle of a device-resident matrix.
// Panics when the matrix is host-resident.
func (r *RawMatrix) Device() DeviceHandle {
	if r.where != Device {
		panic("matrix: Device on host-resident matrix")
	}
	return r.dev
}

// AsInt32 interprets the host buffer as []int32.
// Panics if the element kind is not int32.
func (r *RawMatrix) AsInt32() []int32 {
	r.checkView(Int32)
	if len(r.buf) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&r.buf[0])), r.NumElements())
}

// AsUint32 interprets the host buffer as []uint32.
// Panics if the element kind is not uint32.
func (r *RawMatrix) AsUint32() []uint32 {
	r.checkView(Uint32)
	if len(r.buf) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&r.buf[0])), r.NumElements())
}

// AsFloat32 interprets the host buffer as []float32.
// Panics if the element kind is not float32.
func (r *RawMatrix) AsFloat32() []float32 {
	r.checkView(Float32)
	if len(r.buf) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.buf[0])), r.NumElements())
}

// AsFloat64 interprets the host buffer as []float64.
// Panics if the element kind is not double64.
func (r *RawMatrix) AsFloat64() []float64 {
	r.checkView(Double64)
	if len(r.buf) == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.buf[0])), r.NumElements())
}

// AsBool interprets the host buffer as []bool.
// Panics if the element kind is not boolean.
func (r *RawMatrix) AsBool() []bool {
	r.checkView(Boolean)
	if len(r.buf) == 0 {
		return nil
	}
	return unsafe.Slice((*bool)(unsafe.Pointer(&r.buf[0])), r.NumElements())
}

func (r *RawMatrix) checkView(want ElemKind) {
	if r.where != Host {
		panic("matrix: typed view of device-resident matrix; transfer to host first")
	}
	if r.kind != want {
		panic(fmt.Sprintf("matrix: element kind is %s, not %s", r.kind, want))
	}
}

// Clone deep-copies a host RawMatrix. Device matrices are cloned through
// their backend, which owns the bridge.
func (r *RawMatrix) Clone() (*RawMatrix, error) {
	if r.where != Host {
		return nil, fmt.Errorf("%w: raw clone of device-resident matrix", ErrUnsupportedOperation)
	}
	out, err := NewRaw(r.dims, r.kind)
	if err != nil {
		return nil, err
	}
	copy(out.buf, r.buf)
	return out, nil
}

// AppendRow grows a rank-2 host matrix by one row of zeros. cols must equal
// the current x extent; the new row lands at the end of the buffer so all
// existing rows keep their order.
func (r *RawMatrix) AppendRow(cols int) error {
	if r.where != Host {
		return fmt.Errorf("%w: row append on device-resident matrix", ErrShapeMismatch)
	}
	if r.dims.Rank() != 2 {
		return fmt.Errorf("%w: row append requires rank 2, have rank %d", ErrShapeMismatch, r.dims.Rank())
	}
	if cols != r.dims.X() {
		return fmt.Errorf("%w: row of %d columns appended to matrix with %d columns", ErrShapeMismatch, cols, r.dims.X())
	}
	r.buf = append(r.buf, make([]byte, cols*r.kind.Size())...)
	r.dims[1]++
	return nil
}

// ScalarValue returns the first element of a host matrix boxed per kind.
func (r *RawMatrix) ScalarValue() (any, error) {
	if r.where != Host {
		return nil, fmt.Errorf("%w: scalar read of device-resident matrix", ErrUnsupportedOperation)
	}
	if r.NumElements() < 1 {
		return nil, fmt.Errorf("%w: scalar read of empty matrix", ErrIndexOutOfRange)
	}
	switch r.kind {
	case Int32:
		return r.AsInt32()[0], nil
	case Uint32:
		return r.AsUint32()[0], nil
	case Float32:
		return r.AsFloat32()[0], nil
	case Double64:
		return r.AsFloat64()[0], nil
	case Boolean:
		return r.AsBool()[0], nil
	default:
		return nil, fmt.Errorf("%w: unknown element kind", ErrUnsupportedOperation)
	}
}
