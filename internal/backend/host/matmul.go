package host

import (
	"fmt"

	"github.com/golgebra/golgebra/internal/matrix"
	"github.com/golgebra/golgebra/internal/parallel"
)

// MatMul computes the linear matrix product for rank-2 operands:
// x viewed as (yX rows × xX cols) times y as (yY × xY) with xX == yY.
// A (1,1) operand on either side degenerates to a scalar scale.
func (b *Backend) MatMul(x, y *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	if err := b.checkResident("matmul", x, y); err != nil {
		return nil, err
	}
	if x.Kind() != y.Kind() {
		return nil, fmt.Errorf("host: matmul: %w: element kinds %s and %s", matrix.ErrShapeMismatch, x.Kind(), y.Kind())
	}

	if isScalarDims(x.Dims()) {
		s, err := x.ScalarValue()
		if err != nil {
			return nil, err
		}
		return b.Scale(y, s)
	}
	if isScalarDims(y.Dims()) {
		s, err := y.ScalarValue()
		if err != nil {
			return nil, err
		}
		return b.Scale(x, s)
	}

	outDims, err := matrix.MatMulDims(x.Dims(), y.Dims())
	if err != nil {
		return nil, fmt.Errorf("host: matmul: %w", err)
	}
	out, err := matrix.NewRaw(outDims, x.Kind())
	if err != nil {
		return nil, err
	}

	xA, yA := x.Dims().X(), x.Dims().Y()
	xB := y.Dims().X()
	switch x.Kind() {
	case matrix.Int32:
		matmulSlice(out.AsInt32(), x.AsInt32(), y.AsInt32(), xA, yA, xB, b.par)
	case matrix.Uint32:
		matmulSlice(out.AsUint32(), x.AsUint32(), y.AsUint32(), xA, yA, xB, b.par)
	case matrix.Float32:
		matmulSlice(out.AsFloat32(), x.AsFloat32(), y.AsFloat32(), xA, yA, xB, b.par)
	case matrix.Double64:
		matmulSlice(out.AsFloat64(), x.AsFloat64(), y.AsFloat64(), xA, yA, xB, b.par)
	default:
		return nil, fmt.Errorf("host: matmul: %w: element kind %s", matrix.ErrUnsupportedOperation, x.Kind())
	}
	return out, nil
}

func isScalarDims(d matrix.Dims) bool {
	return d.X() == 1 && d.Y() == 1 && d.Z() == 1
}

// matmulSlice computes c(i,j) = sum_t a(t,j) * b(i,t) with rows of the
// left operand split across workers.
func matmulSlice[N number](c, a, b []N, xA, yA, xB int, par parallel.Config) {
	parallel.For(yA, func(j int) {
		aRow := a[j*xA : (j+1)*xA]
		cRow := c[j*xB : (j+1)*xB]
		for i := range cRow {
			cRow[i] = 0
		}
		for t, av := range aRow {
			bRow := b[t*xB : (t+1)*xB]
			for i, bv := range bRow {
				cRow[i] += av * bv
			}
		}
	}, par)
}
