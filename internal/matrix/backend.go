package matrix

import "fmt"

// PadMode selects the convolution output-size policy.
type PadMode int

const (
	// PadValid applies no padding; the output shrinks by kernel overhang.
	PadValid PadMode = iota
	// PadSame zero-pads symmetrically so output extents match the input.
	PadSame
)

// String returns the policy name.
func (p PadMode) String() string {
	switch p {
	case PadValid:
		return "valid"
	case PadSame:
		return "same"
	default:
		return "unknown"
	}
}

// Backend is the compute strategy behind a Matrix. The host implementation
// runs synchronously in pure Go; the device implementation dispatches
// kernels through a device bridge and surfaces bridge failures as ErrDevice.
//
// Binary operations require both operands on the backend's own residency;
// results are allocated on that residency as well. Backends validate the
// shape contract and report violations with the sentinel error set.
type Backend interface {
	// Elementwise operations over identical extents.
	Add(a, b *RawMatrix) (*RawMatrix, error)
	Sub(a, b *RawMatrix) (*RawMatrix, error)
	Hadamard(a, b *RawMatrix) (*RawMatrix, error)

	// MatMul is the linear matrix product for rank-2 operands; a (1,1)
	// operand on either side degenerates to a scalar scale of the other.
	MatMul(a, b *RawMatrix) (*RawMatrix, error)

	// Scalar operations; the scalar must match the matrix element kind.
	Scale(x *RawMatrix, s any) (*RawMatrix, error)
	DivScalar(x *RawMatrix, s any) (*RawMatrix, error)

	// Transpose swaps x and y for rank <= 2.
	Transpose(x *RawMatrix) (*RawMatrix, error)

	// Conv applies a rank-2 or rank-3 kernel by sliding-window
	// sum-of-products with a uniform stride per axis.
	Conv(input, kernel *RawMatrix, stride int, pad PadMode) (*RawMatrix, error)

	// Clone duplicates a matrix within the backend's residency.
	Clone(x *RawMatrix) (*RawMatrix, error)

	// FromHost and ToHost are the explicit residency transfers. The host
	// backend implements both as deep copies.
	FromHost(x *RawMatrix) (*RawMatrix, error)
	ToHost(x *RawMatrix) (*RawMatrix, error)

	// Release frees the buffer of a matrix owned by this backend. Host
	// buffers are garbage-collected, so the host backend treats it as a
	// no-op; device buffers go back to the bridge.
	Release(x *RawMatrix) error

	// Synchronize joins all dispatched work. Host backends complete every
	// call before returning, so this is a no-op there.
	Synchronize() error

	Name() string
	Residency() Residency
}

// MatMulDims derives the product extents for the linear matrix product
// a (m×n) × b (n×p) → (m×p). Operands are viewed as y rows of x columns;
// both must have a trivial z extent. The (1,1) scalar degeneration is
// handled by callers before this check.
func MatMulDims(a, b Dims) (Dims, error) {
	if a.Z() != 1 || b.Z() != 1 {
		return nil, fmt.Errorf("%w: matmul on 3-D operands %s x %s", ErrShapeMismatch, a, b)
	}
	if a.X() != b.Y() {
		return nil, fmt.Errorf("%w: matmul %s x %s", ErrShapeMismatch, a, b)
	}
	return Of(b.X(), a.Y()), nil
}

// ConvOutDims derives the convolution output extents per axis:
// floor((in-k)/stride)+1 under valid padding, in under same padding.
// The result keeps the rank of the wider operand, so a rank-2 input
// convolved with a rank-2 kernel yields a rank-2 output. A kernel
// overhanging the input under valid padding is a shape mismatch.
func ConvOutDims(in, kernel Dims, stride int, pad PadMode) (Dims, error) {
	if stride < 1 {
		return nil, fmt.Errorf("%w: convolution stride %d, want >= 1", ErrShapeMismatch, stride)
	}
	rank := in.Rank()
	if kernel.Rank() > rank {
		rank = kernel.Rank()
	}
	out := make(Dims, rank)
	for axis := 0; axis < rank; axis++ {
		i, k := in.extent(axis), kernel.extent(axis)
		switch pad {
		case PadSame:
			out[axis] = i
		default:
			if k > i {
				return nil, fmt.Errorf("%w: kernel extent %d exceeds input extent %d on axis %d under valid padding",
					ErrShapeMismatch, k, i, axis)
			}
			out[axis] = (i-k)/stride + 1
		}
	}
	return out, nil
}

// SamePadLow returns the leading zero-pad per axis for same padding.
// The total pad is (in-1)*stride + k - in, split symmetrically with the
// extra cell trailing.
func SamePadLow(in, kernel, stride int) int {
	total := (in-1)*stride + kernel - in
	if total < 0 {
		total = 0
	}
	return total / 2
}
