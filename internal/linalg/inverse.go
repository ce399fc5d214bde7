package linalg

import (
	"fmt"
	"math"

	"github.com/golgebra/golgebra/internal/matrix"
)

// pivotEps is the singularity threshold: when no remaining pivot
// candidate in a column exceeds it in magnitude, the matrix is treated as
// numerically singular.
const pivotEps = 1e-12

// Inverse computes the inverse of a square rank-2 host matrix by
// Gauss-Jordan elimination with partial pivoting: per column, the
// remaining row with the largest-magnitude entry becomes the pivot, which
// bounds the numerical error. O(n³).
//
// Non-square or 3-D input fails with ErrShapeMismatch; non-float element
// kinds and device residency fail with ErrUnsupportedOperation; a
// numerically singular matrix fails with ErrSingular.
func Inverse[T matrix.Element](m *matrix.Matrix[T]) (*matrix.Matrix[T], error) {
	n, err := squareHostFloat("inverse", m)
	if err != nil {
		return nil, err
	}

	// Augmented system [A | I], rows of length 2n.
	w := 2 * n
	a := make([]float64, n*w)
	src := hostFloat64(m.Raw())
	for j := 0; j < n; j++ {
		copy(a[j*w:j*w+n], src[j*n:(j+1)*n])
		a[j*w+n+j] = 1
	}

	for col := 0; col < n; col++ {
		// Partial pivot: largest-magnitude candidate in this column.
		pivot := col
		best := math.Abs(a[col*w+col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(a[r*w+col]); v > best {
				best, pivot = v, r
			}
		}
		if best <= pivotEps {
			return nil, fmt.Errorf("linalg: inverse: %w: no pivot above %g in column %d",
				matrix.ErrSingular, pivotEps, col)
		}
		if pivot != col {
			swapRows(a, w, pivot, col)
		}

		inv := 1 / a[col*w+col]
		for c := 0; c < w; c++ {
			a[col*w+c] *= inv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := a[r*w+col]
			if f == 0 {
				continue
			}
			for c := 0; c < w; c++ {
				a[r*w+c] -= f * a[col*w+c]
			}
		}
	}

	out, err := matrix.Zeros2D[T](n, n, m.Backend())
	if err != nil {
		return nil, err
	}
	res := make([]float64, n*n)
	for j := 0; j < n; j++ {
		copy(res[j*n:(j+1)*n], a[j*w+n:j*w+w])
	}
	storeFloat64(out.Raw(), res)
	return out, nil
}

// Determinant computes the determinant of a square rank-2 host matrix by
// LU-style forward elimination with partial pivoting. A singular matrix
// yields 0, not an error.
func Determinant[T matrix.Element](m *matrix.Matrix[T]) (float64, error) {
	n, err := squareHostFloat("determinant", m)
	if err != nil {
		return 0, err
	}

	a := append([]float64(nil), hostFloat64(m.Raw())...)
	det := 1.0
	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(a[col*n+col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(a[r*n+col]); v > best {
				best, pivot = v, r
			}
		}
		if best <= pivotEps {
			return 0, nil
		}
		if pivot != col {
			swapRows(a, n, pivot, col)
			det = -det
		}
		p := a[col*n+col]
		det *= p
		for r := col + 1; r < n; r++ {
			f := a[r*n+col] / p
			if f == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a[r*n+c] -= f * a[col*n+c]
			}
		}
	}
	return det, nil
}

func swapRows(a []float64, w, r1, r2 int) {
	for c := 0; c < w; c++ {
		a[r1*w+c], a[r2*w+c] = a[r2*w+c], a[r1*w+c]
	}
}

// squareHostFloat validates the shared preconditions of the direct host
// algorithms and returns the matrix order.
func squareHostFloat[T matrix.Element](op string, m *matrix.Matrix[T]) (int, error) {
	if m.Residency() != matrix.Host {
		return 0, fmt.Errorf("linalg: %s: %w: device-resident input; transfer to host first",
			op, matrix.ErrUnsupportedOperation)
	}
	if !m.Kind().IsFloat() {
		return 0, fmt.Errorf("linalg: %s: %w: element kind %s", op, matrix.ErrUnsupportedOperation, m.Kind())
	}
	if m.DimZ() != 1 {
		return 0, fmt.Errorf("linalg: %s: %w: 3-D extents %s", op, matrix.ErrShapeMismatch, m.Dims())
	}
	if m.DimX() != m.DimY() {
		return 0, fmt.Errorf("linalg: %s: %w: non-square extents %s", op, matrix.ErrShapeMismatch, m.Dims())
	}
	return m.DimX(), nil
}

// hostFloat64 reads a host float matrix into a float64 working slice.
func hostFloat64(r *matrix.RawMatrix) []float64 {
	if r.Kind() == matrix.Double64 {
		return r.AsFloat64()
	}
	src := r.AsFloat32()
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

// storeFloat64 writes a float64 working slice back per element kind.
func storeFloat64(r *matrix.RawMatrix, src []float64) {
	if r.Kind() == matrix.Double64 {
		copy(r.AsFloat64(), src)
		return
	}
	dst := r.AsFloat32()
	for i, v := range src {
		dst[i] = float32(v)
	}
}
