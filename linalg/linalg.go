// Copyright 2026 The golgebra Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides higher-level linear algebra over golgebra
// matrices: inversion, determinants, eigen-decomposition and
// convolution.
package linalg

import (
	internallinalg "github.com/golgebra/golgebra/internal/linalg"
	"github.com/golgebra/golgebra/matrix"
)

// Defaults for the eigen iteration.
const (
	DefaultEigenTol     = internallinalg.DefaultEigenTol
	DefaultEigenMaxIter = internallinalg.DefaultEigenMaxIter
)

// EigenOptions configures Eigen.
type EigenOptions = internallinalg.EigenOptions

// Eigenpair is one eigenvalue with its eigenvector.
type Eigenpair = internallinalg.Eigenpair

// ConvOptions configures Convolve.
type ConvOptions = internallinalg.ConvOptions

// Inverse returns the inverse of a square rank-2 host matrix with
// float elements, computed by Gauss-Jordan elimination with partial
// pivoting. Singular input fails with matrix.ErrSingular.
func Inverse[T matrix.Element](m *matrix.Matrix[T]) (*matrix.Matrix[T], error) {
	return internallinalg.Inverse(m)
}

// Determinant returns the determinant of a square rank-2 host matrix
// with float elements.
func Determinant[T matrix.Element](m *matrix.Matrix[T]) (float64, error) {
	return internallinalg.Determinant(m)
}

// Eigen approximates eigenvalues and eigenvectors by shifted-QR
// iteration. Input that does not converge within the iteration bound
// fails with matrix.ErrConvergence.
func Eigen[T matrix.Element](m *matrix.Matrix[T], opts EigenOptions) ([]Eigenpair, error) {
	return internallinalg.Eigen(m, opts)
}

// Convolve cross-correlates input with kernel on the input's backend.
func Convolve[T matrix.Element](input, kernel *matrix.Matrix[T], opts ConvOptions) (*matrix.Matrix[T], error) {
	return internallinalg.Convolve(input, kernel, opts)
}
