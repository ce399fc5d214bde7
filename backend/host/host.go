// Copyright 2026 The golgebra Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package host provides the pure Go host backend for matrix operations.
//
// The host backend keeps every matrix in process memory and computes
// synchronously, with optional worker fan-out for large inputs. It is
// the default backend and the reference other backends are checked
// against.
package host

import (
	internalhost "github.com/golgebra/golgebra/internal/backend/host"
	"github.com/golgebra/golgebra/matrix"
)

// Backend is the host (CPU) backend implementation.
type Backend = internalhost.Backend

// Compile-time check that Backend implements matrix.Backend.
var _ matrix.Backend = (*Backend)(nil)

// New creates a host backend with the default parallel configuration.
//
// Example:
//
//	b := host.New()
//	a, _ := matrix.Zeros2D[float32](2, 3, b)
func New() *Backend {
	return internalhost.New()
}
