// Copyright 2026 The golgebra Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the public API for dense matrices in golgebra.
//
// # Overview
//
// One generic type covers scalars, vectors, 2-D and 3-D matrices:
//   - Matrix[T]: type-safe dense matrix over a flat buffer
//   - RawMatrix: untyped buffer plus extents, shared across backends
//   - Backend: interface for compute implementations (host, device)
//   - Dims, ElemKind, Residency: core shape and storage descriptors
//
// Elements are laid out row-contiguous; the element at (i, j, k) lives at
// flat offset i + j*x + k*x*y, where x and y are the first two extents.
//
// # Basic Usage
//
//	import (
//	    "github.com/golgebra/golgebra/backend/host"
//	    "github.com/golgebra/golgebra/matrix"
//	)
//
//	func main() {
//	    b := host.New()
//	    a, _ := matrix.From2D(2, 2, [][]float32{{4, 3}, {6, 3}}, b)
//	    c, _ := a.Transpose()
//	    _ = c
//	}
//
// # Supported Element Kinds
//
// The Element constraint covers int32, uint32, float32, float64 and bool.
// Boolean matrices support structural operations only; arithmetic on them
// fails with ErrUnsupportedOperation.
package matrix
