package matrix

import "errors"

// Sentinel errors returned by matrix and linear-algebra operations.
// Failures are detected at the offending call and surfaced immediately;
// callers can test for them across wrap layers with errors.Is.
var (
	// ErrShapeMismatch is returned when operand extents are incompatible,
	// when a construction source does not match the requested extents, or
	// when an illegal growth operation is attempted.
	ErrShapeMismatch = errors.New("golgebra: shape mismatch")

	// ErrIndexOutOfRange is returned when a coordinate lies outside the
	// matrix extents.
	ErrIndexOutOfRange = errors.New("golgebra: index out of range")

	// ErrSingular is returned when inverting a numerically singular matrix.
	ErrSingular = errors.New("golgebra: singular matrix")

	// ErrConvergence is returned when an iterative algorithm exceeds its
	// iteration bound before reaching its tolerance. It is distinct from
	// structural failures so callers can retry with a relaxed tolerance.
	ErrConvergence = errors.New("golgebra: iteration did not converge")

	// ErrUnsupportedOperation is returned when an operation is undefined
	// for the given rank, element kind, or residency (for example a 3-D
	// transpose, or matrix-by-matrix division).
	ErrUnsupportedOperation = errors.New("golgebra: unsupported operation")

	// ErrDevice is returned when a device allocation, transfer, or kernel
	// launch fails. The device bridge contract is all-or-nothing per call;
	// the core performs no retries.
	ErrDevice = errors.New("golgebra: device error")
)
