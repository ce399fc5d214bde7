// Package device implements the device compute backend. All device memory
// management and kernel execution goes through the Bridge collaborator;
// the backend itself only validates shapes, threads handles between
// bridge calls, and maps bridge failures onto matrix.ErrDevice.
package device

import "github.com/golgebra/golgebra/internal/matrix"

// Op names the compute kernels a bridge must provide.
type Op string

// Kernel operations dispatched through Bridge.Launch.
const (
	OpAdd       Op = "add"
	OpSub       Op = "sub"
	OpHadamard  Op = "hadamard"
	OpMatMul    Op = "matmul"
	OpScale     Op = "scale"
	OpDivScalar Op = "divscalar"
	// OpScaleBy scales operand 0 by the first element of operand 1,
	// the device-side form of the (1,1) matmul degeneration.
	OpScaleBy   Op = "scaleby"
	OpTranspose Op = "transpose"
	OpConv      Op = "conv"
	OpCopy      Op = "copy"
)

// LaunchParams carries the extent and kernel parameters of one dispatch.
// Out sizes the result buffer the bridge allocates.
type LaunchParams struct {
	A      matrix.Dims // extents of operand 0
	B      matrix.Dims // extents of operand 1, when present
	Out    matrix.Dims // extents of the result
	Stride int         // convolution stride
	Pad    matrix.PadMode
	Scalar float64 // scalar for OpScale / OpDivScalar
}

// Bridge is the capability set the core relies on for device residency:
// allocation, transfers, and kernel dispatch. Kernel dispatch may be
// asynchronous; Synchronize is the join every host-side read must pass
// through. Each call is all-or-nothing; the core performs no retries and
// surfaces any failure as matrix.ErrDevice.
type Bridge interface {
	// Alloc reserves a zero-initialized device buffer of byteSize bytes.
	Alloc(byteSize int) (matrix.DeviceHandle, error)

	// Free releases a buffer previously returned by Alloc or Launch.
	// Release may be deferred internally, but the handle must not be
	// used afterwards.
	Free(h matrix.DeviceHandle) error

	// CopyToDevice uploads a host buffer into a device buffer of the
	// same size.
	CopyToDevice(src []byte, dst matrix.DeviceHandle) error

	// CopyToHost downloads a device buffer. Implementations must
	// complete all pending work touching src before reading it.
	CopyToHost(src matrix.DeviceHandle, dst []byte) error

	// Launch dispatches a kernel over the operands and returns the
	// handle of the result buffer. The computation may still be in
	// flight when Launch returns.
	Launch(op Op, p LaunchParams, operands ...matrix.DeviceHandle) (matrix.DeviceHandle, error)

	// Synchronize blocks until all dispatched kernels have completed.
	Synchronize() error

	// Close releases the bridge and every resource it still owns.
	Close() error

	Name() string
}
