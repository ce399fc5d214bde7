package linalg

import (
	"fmt"
	"math"
	"sort"

	"github.com/golgebra/golgebra/internal/matrix"
)

// Defaults for the eigen iteration; both are configurable per call
// through EigenOptions.
const (
	DefaultEigenTol     = 1e-10
	DefaultEigenMaxIter = 500
)

// EigenOptions configures the eigen-decomposition.
type EigenOptions struct {
	// Tol is the convergence tolerance on the lower-triangle norm of the
	// working matrix, relative to the input's overall norm.
	// Zero means DefaultEigenTol.
	Tol float64
	// MaxIter bounds the QR iterations; exceeding it fails with
	// ErrConvergence. Zero means DefaultEigenMaxIter.
	MaxIter int
	// Sort orders the returned pairs by descending eigenvalue. Without
	// it the order follows the working matrix's diagonal.
	Sort bool
}

// Eigenpair is one eigenvalue with its corresponding eigenvector.
type Eigenpair struct {
	Value  float64
	Vector []float64
}

// Eigen approximates the eigenvalues and eigenvectors of a square rank-2
// host matrix with real entries, using shifted-QR iteration: each sweep
// applies a Wilkinson-shifted QR step built from Givens rotations and
// accumulates the orthogonal basis. The iteration has converged when the
// working matrix is upper triangular within tolerance; eigenvalues are
// its diagonal, and each eigenvector is back-solved from the triangle
// and rotated through the accumulated basis. Input whose real Schur form
// keeps a 2x2 block (a complex eigenvalue pair) never triangularizes
// over the reals; it exhausts the iteration bound and fails with
// ErrConvergence rather than returning a wrong answer.
func Eigen[T matrix.Element](m *matrix.Matrix[T], opts EigenOptions) ([]Eigenpair, error) {
	n, err := squareHostFloat("eigen", m)
	if err != nil {
		return nil, err
	}
	tol := opts.Tol
	if tol <= 0 {
		tol = DefaultEigenTol
	}
	maxIter := opts.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultEigenMaxIter
	}

	if n == 0 {
		return nil, nil
	}

	a := append([]float64(nil), hostFloat64(m.Raw())...)
	if n == 1 {
		return []Eigenpair{{Value: a[0], Vector: []float64{1}}}, nil
	}

	// v accumulates the orthogonal similarity: a_final = vᵀ a0 v.
	v := make([]float64, n*n)
	for i := 0; i < n; i++ {
		v[i*n+i] = 1
	}
	scale := math.Max(1, frobenius(a, n))

	cs := make([]float64, n-1)
	sn := make([]float64, n-1)
	converged := false
	for iter := 0; iter < maxIter; iter++ {
		if lowerNorm(a, n) <= tol*scale {
			converged = true
			break
		}

		mu := wilkinsonShift(a, n)
		for i := 0; i < n; i++ {
			a[i*n+i] -= mu
		}

		// QR by Givens: zero each subdiagonal entry rotating row pairs.
		for k := 0; k < n-1; k++ {
			c, s := givens(a[k*n+k], a[(k+1)*n+k])
			cs[k], sn[k] = c, s
			rotateRows(a, n, k, c, s)
		}
		// RQ: apply the same rotations on column pairs, and accumulate
		// them into the basis.
		for k := 0; k < n-1; k++ {
			rotateCols(a, n, k, cs[k], sn[k])
			rotateCols(v, n, k, cs[k], sn[k])
		}

		for i := 0; i < n; i++ {
			a[i*n+i] += mu
		}
	}
	if !converged && lowerNorm(a, n) > tol*scale {
		return nil, fmt.Errorf("linalg: eigen: %w: subdiagonal norm %g above %g after %d iterations",
			matrix.ErrConvergence, lowerNorm(a, n), tol*scale, maxIter)
	}

	pairs := make([]Eigenpair, n)
	for p := 0; p < n; p++ {
		pairs[p] = Eigenpair{Value: a[p*n+p], Vector: schurVector(a, v, n, p, scale)}
	}
	if opts.Sort {
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Value > pairs[j].Value })
	}
	return pairs, nil
}

// schurVector computes the unit eigenvector for diagonal position p:
// back-substitution of (T - lambda I) y = 0 through the upper triangle T,
// then rotation x = V y into the original basis.
func schurVector(tm, v []float64, n, p int, scale float64) []float64 {
	lambda := tm[p*n+p]
	y := make([]float64, p+1)
	y[p] = 1
	for j := p - 1; j >= 0; j-- {
		var s float64
		for k := j + 1; k <= p; k++ {
			s += tm[j*n+k] * y[k]
		}
		d := tm[j*n+j] - lambda
		// A repeated eigenvalue leaves a zero denominator; clamp it so
		// the solve stays finite.
		if math.Abs(d) < pivotEps*scale {
			d = math.Copysign(pivotEps*scale, d)
			if d == 0 {
				d = pivotEps * scale
			}
		}
		y[j] = -s / d
	}

	x := make([]float64, n)
	var norm float64
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j <= p; j++ {
			s += v[i*n+j] * y[j]
		}
		x[i] = s
		norm += s * s
	}
	norm = math.Sqrt(norm)
	for i := range x {
		x[i] /= norm
	}
	return x
}

// givens returns c, s with c*x + s*y = r and -s*x + c*y = 0.
func givens(x, y float64) (c, s float64) {
	if y == 0 {
		return 1, 0
	}
	r := math.Hypot(x, y)
	return x / r, y / r
}

// rotateRows applies the rotation to rows k and k+1.
func rotateRows(a []float64, n, k int, c, s float64) {
	r0, r1 := a[k*n:(k+1)*n], a[(k+1)*n:(k+2)*n]
	for j := 0; j < n; j++ {
		x, y := r0[j], r1[j]
		r0[j] = c*x + s*y
		r1[j] = -s*x + c*y
	}
}

// rotateCols applies the transposed rotation to columns k and k+1.
func rotateCols(a []float64, n, k int, c, s float64) {
	for i := 0; i < n; i++ {
		x, y := a[i*n+k], a[i*n+k+1]
		a[i*n+k] = c*x + s*y
		a[i*n+k+1] = -s*x + c*y
	}
}

// wilkinsonShift picks the trailing-2×2 eigenvalue closest to the last
// diagonal entry.
func wilkinsonShift(a []float64, n int) float64 {
	p, q := n-2, n-1
	app, aqq := a[p*n+p], a[q*n+q]
	bc := a[p*n+q] * a[q*n+p]
	if bc == 0 {
		return aqq
	}
	delta := (app - aqq) / 2
	disc := delta*delta + bc
	if disc < 0 {
		// Complex pair; no real shift improves this step.
		return aqq
	}
	denom := math.Abs(delta) + math.Sqrt(disc)
	if denom == 0 {
		return aqq
	}
	sign := 1.0
	if delta < 0 {
		sign = -1
	}
	return aqq - sign*bc/denom
}

// lowerNorm is the Frobenius norm of the strict lower triangle, the
// distance from upper-triangular form.
func lowerNorm(a []float64, n int) float64 {
	var sum float64
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			sum += a[j*n+i] * a[j*n+i]
		}
	}
	return math.Sqrt(sum)
}

func frobenius(a []float64, n int) float64 {
	var sum float64
	for _, x := range a[:n*n] {
		sum += x * x
	}
	return math.Sqrt(sum)
}
