package host

import (
	"fmt"

	"github.com/golgebra/golgebra/internal/matrix"
)

// number restricts kernels to the arithmetic element kinds; boolean
// matrices are structural only.
type number interface {
	~int32 | ~uint32 | ~float32 | ~float64
}

// Add performs elementwise addition over identical extents.
func (b *Backend) Add(x, y *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	out, err := b.newElementwiseResult("add", x, y)
	if err != nil {
		return nil, err
	}
	switch x.Kind() {
	case matrix.Int32:
		addSlice(out.AsInt32(), x.AsInt32(), y.AsInt32())
	case matrix.Uint32:
		addSlice(out.AsUint32(), x.AsUint32(), y.AsUint32())
	case matrix.Float32:
		addSlice(out.AsFloat32(), x.AsFloat32(), y.AsFloat32())
	case matrix.Double64:
		addSlice(out.AsFloat64(), x.AsFloat64(), y.AsFloat64())
	default:
		return nil, fmt.Errorf("host: add: %w: element kind %s", matrix.ErrUnsupportedOperation, x.Kind())
	}
	return out, nil
}

// Sub performs elementwise subtraction over identical extents.
func (b *Backend) Sub(x, y *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	out, err := b.newElementwiseResult("sub", x, y)
	if err != nil {
		return nil, err
	}
	switch x.Kind() {
	case matrix.Int32:
		subSlice(out.AsInt32(), x.AsInt32(), y.AsInt32())
	case matrix.Uint32:
		subSlice(out.AsUint32(), x.AsUint32(), y.AsUint32())
	case matrix.Float32:
		subSlice(out.AsFloat32(), x.AsFloat32(), y.AsFloat32())
	case matrix.Double64:
		subSlice(out.AsFloat64(), x.AsFloat64(), y.AsFloat64())
	default:
		return nil, fmt.Errorf("host: sub: %w: element kind %s", matrix.ErrUnsupportedOperation, x.Kind())
	}
	return out, nil
}

// Hadamard performs the elementwise product over identical extents.
func (b *Backend) Hadamard(x, y *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	out, err := b.newElementwiseResult("hadamard", x, y)
	if err != nil {
		return nil, err
	}
	switch x.Kind() {
	case matrix.Int32:
		mulSlice(out.AsInt32(), x.AsInt32(), y.AsInt32())
	case matrix.Uint32:
		mulSlice(out.AsUint32(), x.AsUint32(), y.AsUint32())
	case matrix.Float32:
		mulSlice(out.AsFloat32(), x.AsFloat32(), y.AsFloat32())
	case matrix.Double64:
		mulSlice(out.AsFloat64(), x.AsFloat64(), y.AsFloat64())
	default:
		return nil, fmt.Errorf("host: hadamard: %w: element kind %s", matrix.ErrUnsupportedOperation, x.Kind())
	}
	return out, nil
}

// Scale multiplies every element by s, which must match the element kind.
func (b *Backend) Scale(x *matrix.RawMatrix, s any) (*matrix.RawMatrix, error) {
	return b.scalarOp("scale", x, s, false)
}

// DivScalar divides every element by s. A zero integer divisor is
// rejected; float kinds follow IEEE semantics.
func (b *Backend) DivScalar(x *matrix.RawMatrix, s any) (*matrix.RawMatrix, error) {
	return b.scalarOp("divscalar", x, s, true)
}

func (b *Backend) scalarOp(op string, x *matrix.RawMatrix, s any, div bool) (*matrix.RawMatrix, error) {
	if err := b.checkResident(op, x); err != nil {
		return nil, err
	}
	out, err := matrix.NewRaw(x.Dims(), x.Kind())
	if err != nil {
		return nil, err
	}
	switch x.Kind() {
	case matrix.Int32:
		v, ok := s.(int32)
		if !ok {
			return nil, scalarKindErr(op, x.Kind(), s)
		}
		if div {
			if v == 0 {
				return nil, fmt.Errorf("host: %s: %w: integer division by zero", op, matrix.ErrUnsupportedOperation)
			}
			divSlice(out.AsInt32(), x.AsInt32(), v)
		} else {
			scaleSlice(out.AsInt32(), x.AsInt32(), v)
		}
	case matrix.Uint32:
		v, ok := s.(uint32)
		if !ok {
			return nil, scalarKindErr(op, x.Kind(), s)
		}
		if div {
			if v == 0 {
				return nil, fmt.Errorf("host: %s: %w: integer division by zero", op, matrix.ErrUnsupportedOperation)
			}
			divSlice(out.AsUint32(), x.AsUint32(), v)
		} else {
			scaleSlice(out.AsUint32(), x.AsUint32(), v)
		}
	case matrix.Float32:
		v, ok := s.(float32)
		if !ok {
			return nil, scalarKindErr(op, x.Kind(), s)
		}
		if div {
			divSlice(out.AsFloat32(), x.AsFloat32(), v)
		} else {
			scaleSlice(out.AsFloat32(), x.AsFloat32(), v)
		}
	case matrix.Double64:
		v, ok := s.(float64)
		if !ok {
			return nil, scalarKindErr(op, x.Kind(), s)
		}
		if div {
			divSlice(out.AsFloat64(), x.AsFloat64(), v)
		} else {
			scaleSlice(out.AsFloat64(), x.AsFloat64(), v)
		}
	default:
		return nil, fmt.Errorf("host: %s: %w: element kind %s", op, matrix.ErrUnsupportedOperation, x.Kind())
	}
	return out, nil
}

func scalarKindErr(op string, kind matrix.ElemKind, s any) error {
	return fmt.Errorf("host: %s: %w: scalar %T against element kind %s", op, matrix.ErrShapeMismatch, s, kind)
}

// newElementwiseResult validates an elementwise operand pair and allocates
// the result.
func (b *Backend) newElementwiseResult(op string, x, y *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	if err := b.checkResident(op, x, y); err != nil {
		return nil, err
	}
	if x.Kind() != y.Kind() {
		return nil, fmt.Errorf("host: %s: %w: element kinds %s and %s", op, matrix.ErrShapeMismatch, x.Kind(), y.Kind())
	}
	if !x.Dims().Equal(y.Dims()) {
		return nil, fmt.Errorf("host: %s: %w: extents %s and %s", op, matrix.ErrShapeMismatch, x.Dims(), y.Dims())
	}
	return matrix.NewRaw(x.Dims(), x.Kind())
}

func addSlice[N number](dst, a, b []N) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subSlice[N number](dst, a, b []N) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulSlice[N number](dst, a, b []N) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func scaleSlice[N number](dst, a []N, s N) {
	for i := range dst {
		dst[i] = a[i] * s
	}
}

func divSlice[N number](dst, a []N, s N) {
	for i := range dst {
		dst[i] = a[i] / s
	}
}
