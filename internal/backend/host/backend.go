// Package host implements the synchronous pure-Go compute backend.
package host

import (
	"fmt"

	"github.com/golgebra/golgebra/internal/matrix"
	"github.com/golgebra/golgebra/internal/parallel"
)

// Backend implements matrix.Backend on host memory. Every call completes
// fully before returning.
type Backend struct {
	par parallel.Config
}

// Compile-time check that Backend implements matrix.Backend.
var _ matrix.Backend = (*Backend)(nil)

// New creates a host backend with machine-sized parallelism for the
// matmul and convolution kernels.
func New() *Backend {
	return &Backend{par: parallel.DefaultConfig()}
}

// Name returns the backend name.
func (b *Backend) Name() string { return "host" }

// Residency returns matrix.Host.
func (b *Backend) Residency() matrix.Residency { return matrix.Host }

// Synchronize is a no-op; host operations are synchronous.
func (b *Backend) Synchronize() error { return nil }

// Release is a no-op; host buffers are garbage-collected.
func (b *Backend) Release(*matrix.RawMatrix) error { return nil }

// Clone deep-duplicates a host matrix.
func (b *Backend) Clone(x *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	if err := b.checkResident("clone", x); err != nil {
		return nil, err
	}
	return x.Clone()
}

// FromHost adopts a host matrix by deep copy; on the host backend a
// residency transfer degenerates to duplication.
func (b *Backend) FromHost(x *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	return b.Clone(x)
}

// ToHost mirrors FromHost.
func (b *Backend) ToHost(x *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	return b.Clone(x)
}

func (b *Backend) checkResident(op string, ms ...*matrix.RawMatrix) error {
	for _, m := range ms {
		if m.Residency() != matrix.Host {
			return fmt.Errorf("host: %s: %w: operand is device-resident", op, matrix.ErrUnsupportedOperation)
		}
	}
	return nil
}
