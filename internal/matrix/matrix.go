package matrix

import "fmt"

// Matrix is a generic dense matrix with element type T.
// It composes the dimension model and flat storage of a RawMatrix with the
// compute Backend that owns its buffer's residency.
//
// Example:
//
//	b := host.New()
//	m, err := matrix.Zeros2D[float32](3, 4, b)
type Matrix[T Element] struct {
	raw     *RawMatrix
	backend Backend
}

// FromRaw wraps an existing RawMatrix. The raw element kind must match T.
func FromRaw[T Element](raw *RawMatrix, b Backend) *Matrix[T] {
	if raw.Kind() != KindOf[T]() {
		panic(fmt.Sprintf("matrix: raw kind %s does not match element type %s", raw.Kind(), KindOf[T]()))
	}
	return &Matrix[T]{raw: raw, backend: b}
}

// Raw returns the underlying RawMatrix.
// Used by backends and the linear-algebra suite for low-level access.
func (m *Matrix[T]) Raw() *RawMatrix { return m.raw }

// Backend returns the compute backend.
func (m *Matrix[T]) Backend() Backend { return m.backend }

// DimX returns the first extent.
func (m *Matrix[T]) DimX() int { return m.raw.Dims().X() }

// DimY returns the second extent.
func (m *Matrix[T]) DimY() int { return m.raw.Dims().Y() }

// DimZ returns the third extent.
func (m *Matrix[T]) DimZ() int { return m.raw.Dims().Z() }

// Dims returns a copy of the extents.
func (m *Matrix[T]) Dims() Dims { return m.raw.Dims().Clone() }

// Rank returns the declared rank.
func (m *Matrix[T]) Rank() int { return m.raw.Dims().Rank() }

// Kind returns the element kind tag.
func (m *Matrix[T]) Kind() ElemKind { return m.raw.Kind() }

// Residency reports where the buffer lives.
func (m *Matrix[T]) Residency() Residency { return m.raw.Residency() }

// NumElements returns the total element count, always DimX*DimY*DimZ.
func (m *Matrix[T]) NumElements() int { return m.raw.NumElements() }

// Data returns a typed zero-copy view of the host buffer, ordered
// fastest-varying first. Modifications write through to the matrix.
// Panics on device-resident matrices; transfer to host first.
func (m *Matrix[T]) Data() []T {
	var zero T
	switch any(zero).(type) {
	case int32:
		return any(m.raw.AsInt32()).([]T)
	case uint32:
		return any(m.raw.AsUint32()).([]T)
	case float32:
		return any(m.raw.AsFloat32()).([]T)
	case float64:
		return any(m.raw.AsFloat64()).([]T)
	case bool:
		return any(m.raw.AsBool()).([]T)
	default:
		panic("unsupported element type")
	}
}

// At returns the element at the given coordinates. Missing trailing
// coordinates read as 0, so At(i) addresses a vector and At(i, j) a 2-D
// matrix. Out-of-extent coordinates fail with ErrIndexOutOfRange.
func (m *Matrix[T]) At(coords ...int) (T, error) {
	var zero T
	i, j, k, err := m.splitCoords(coords)
	if err != nil {
		return zero, err
	}
	return m.Data()[m.raw.Dims().Offset(i, j, k)], nil
}

// Set stores v at the given coordinates, with the same coordinate rules
// as At.
func (m *Matrix[T]) Set(v T, coords ...int) error {
	i, j, k, err := m.splitCoords(coords)
	if err != nil {
		return err
	}
	m.Data()[m.raw.Dims().Offset(i, j, k)] = v
	return nil
}

// First returns the element at (0,0,0), the base of the contiguous buffer.
func (m *Matrix[T]) First() (T, error) {
	return m.At(0, 0, 0)
}

func (m *Matrix[T]) splitCoords(coords []int) (i, j, k int, err error) {
	if m.raw.Residency() != Host {
		return 0, 0, 0, fmt.Errorf("%w: element access on device-resident matrix; transfer to host first",
			ErrUnsupportedOperation)
	}
	if len(coords) > MaxRank {
		return 0, 0, 0, fmt.Errorf("%w: %d coordinates exceed the %d-dimension cap",
			ErrIndexOutOfRange, len(coords), MaxRank)
	}
	c := [MaxRank]int{}
	copy(c[:], coords)
	if err := m.raw.Dims().CheckIndex(c[0], c[1], c[2]); err != nil {
		return 0, 0, 0, err
	}
	return c[0], c[1], c[2], nil
}

// String returns a human-readable description.
func (m *Matrix[T]) String() string {
	return fmt.Sprintf("Matrix[%s]%s on %s", m.raw.Kind(), m.raw.Dims(), m.raw.Residency())
}
