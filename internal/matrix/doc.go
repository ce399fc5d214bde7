// Package matrix provides the core dense-matrix type for the golgebra
// linear-algebra library.
//
// A Matrix unifies scalars, vectors, 2-D matrices and 3-D tensors behind a
// single type backed by one flat, contiguous buffer. Dimensions are modeled
// as up to three extents (x, y, z); unused trailing extents read as 1.
// Element offsets are computed fastest-varying first:
//
//	off(i, j, k) = i + j*x + k*x*y
//
// Computation is delegated to a Backend, the strategy seam that keeps the
// matrix contract residency-agnostic: the host backend runs synchronously in
// pure Go, the device backend dispatches kernels through a device bridge and
// joins on an explicit Synchronize call before any host-side read.
package matrix
