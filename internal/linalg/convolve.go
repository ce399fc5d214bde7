package linalg

import (
	"fmt"

	"github.com/golgebra/golgebra/internal/matrix"
)

// ConvOptions configures a convolution.
type ConvOptions struct {
	// Stride is applied uniformly on every axis. Zero means 1.
	Stride int
	// Padding selects the output geometry: PadValid shrinks the output
	// to fully covered positions, PadSame zero-pads so the output keeps
	// the input's extents.
	Padding matrix.PadMode
}

// Convolve cross-correlates input with kernel and returns the result on
// the same backend as the input. The kernel must be rank 2 or 3 and
// share the input's element kind and residency.
func Convolve[T matrix.Element](input, kernel *matrix.Matrix[T], opts ConvOptions) (*matrix.Matrix[T], error) {
	stride := opts.Stride
	if stride == 0 {
		stride = 1
	}
	if r := kernel.Rank(); r < 2 || r > 3 {
		return nil, fmt.Errorf("linalg: convolve: kernel rank %d: %w", r, matrix.ErrShapeMismatch)
	}
	if input.Residency() != kernel.Residency() {
		return nil, fmt.Errorf("linalg: convolve: input on %s, kernel on %s: %w",
			input.Residency(), kernel.Residency(), matrix.ErrUnsupportedOperation)
	}
	raw, err := input.Backend().Conv(input.Raw(), kernel.Raw(), stride, opts.Padding)
	if err != nil {
		return nil, err
	}
	return matrix.FromRaw[T](raw, input.Backend()), nil
}
