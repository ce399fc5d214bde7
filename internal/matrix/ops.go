package matrix

import "fmt"

// Add returns the elementwise sum. Both operands must have identical
// extents and the same residency.
func (m *Matrix[T]) Add(other *Matrix[T]) (*Matrix[T], error) {
	if err := m.binaryCheck(other); err != nil {
		return nil, err
	}
	raw, err := m.backend.Add(m.raw, other.raw)
	if err != nil {
		return nil, err
	}
	return FromRaw[T](raw, m.backend), nil
}

// Sub returns the elementwise difference under the same rules as Add.
func (m *Matrix[T]) Sub(other *Matrix[T]) (*Matrix[T], error) {
	if err := m.binaryCheck(other); err != nil {
		return nil, err
	}
	raw, err := m.backend.Sub(m.raw, other.raw)
	if err != nil {
		return nil, err
	}
	return FromRaw[T](raw, m.backend), nil
}

// Hadamard returns the elementwise product. It is deliberately a separate
// named operation; MatMul keeps the mathematically standard meaning.
func (m *Matrix[T]) Hadamard(other *Matrix[T]) (*Matrix[T], error) {
	if err := m.binaryCheck(other); err != nil {
		return nil, err
	}
	raw, err := m.backend.Hadamard(m.raw, other.raw)
	if err != nil {
		return nil, err
	}
	return FromRaw[T](raw, m.backend), nil
}

// MatMul returns the linear matrix product (m×n)×(n×p) → (m×p) for rank-2
// operands. A (1,1) operand on either side behaves as a scalar scale of
// the other; all other shape pairs fail with ErrShapeMismatch.
func (m *Matrix[T]) MatMul(other *Matrix[T]) (*Matrix[T], error) {
	if err := m.binaryCheck(other); err != nil {
		return nil, err
	}
	raw, err := m.backend.MatMul(m.raw, other.raw)
	if err != nil {
		return nil, err
	}
	return FromRaw[T](raw, m.backend), nil
}

// Scale multiplies every element by s.
func (m *Matrix[T]) Scale(s T) (*Matrix[T], error) {
	raw, err := m.backend.Scale(m.raw, s)
	if err != nil {
		return nil, err
	}
	return FromRaw[T](raw, m.backend), nil
}

// DivScalar divides every element by s. Integer kinds reject a zero
// divisor; float kinds follow IEEE semantics.
func (m *Matrix[T]) DivScalar(s T) (*Matrix[T], error) {
	raw, err := m.backend.DivScalar(m.raw, s)
	if err != nil {
		return nil, err
	}
	return FromRaw[T](raw, m.backend), nil
}

// Div divides by a (1,1) matrix, elementwise. Division by a divisor of
// rank >= 1 is undefined and fails with ErrUnsupportedOperation.
func (m *Matrix[T]) Div(other *Matrix[T]) (*Matrix[T], error) {
	d := other.raw.Dims()
	if d.X() != 1 || d.Y() != 1 || d.Z() != 1 {
		return nil, fmt.Errorf("%w: matrix-by-matrix division (divisor extents %s)", ErrUnsupportedOperation, d)
	}
	s, err := other.First()
	if err != nil {
		return nil, err
	}
	return m.DivScalar(s)
}

// Transpose swaps x and y for rank <= 2. A rank-1 vector is relabeled
// between (n,1) and (1,n) without data movement; rank-3 transpose is
// undefined. Transposing twice returns a value equal to the original.
func (m *Matrix[T]) Transpose() (*Matrix[T], error) {
	raw, err := m.backend.Transpose(m.raw)
	if err != nil {
		return nil, err
	}
	return FromRaw[T](raw, m.backend), nil
}

// AppendRow grows a rank-2 host matrix in place by one zero row of cols
// elements; cols must equal DimX. Existing rows and their order are
// preserved. Device-resident or non-rank-2 matrices fail with
// ErrShapeMismatch.
func (m *Matrix[T]) AppendRow(cols int) error {
	return m.raw.AppendRow(cols)
}

// Clone deep-duplicates the matrix within its current residency.
// Buffers are never shared between instances.
func (m *Matrix[T]) Clone() (*Matrix[T], error) {
	raw, err := m.backend.Clone(m.raw)
	if err != nil {
		return nil, err
	}
	return FromRaw[T](raw, m.backend), nil
}

// ToDevice constructs a device-resident copy through dev, which must be a
// device backend. Transfer failures surface as ErrDevice.
func (m *Matrix[T]) ToDevice(dev Backend) (*Matrix[T], error) {
	if dev.Residency() != Device {
		return nil, fmt.Errorf("%w: ToDevice with %s backend %q", ErrUnsupportedOperation, dev.Residency(), dev.Name())
	}
	if m.raw.Residency() != Host {
		return nil, fmt.Errorf("%w: ToDevice on matrix already device-resident", ErrUnsupportedOperation)
	}
	raw, err := dev.FromHost(m.raw)
	if err != nil {
		return nil, err
	}
	return FromRaw[T](raw, dev), nil
}

// ToHost constructs a host-resident copy owned by hb. The transfer joins
// all pending device work before reading.
func (m *Matrix[T]) ToHost(hb Backend) (*Matrix[T], error) {
	if hb.Residency() != Host {
		return nil, fmt.Errorf("%w: ToHost with %s backend %q", ErrUnsupportedOperation, hb.Residency(), hb.Name())
	}
	raw, err := m.backend.ToHost(m.raw)
	if err != nil {
		return nil, err
	}
	return FromRaw[T](raw, hb), nil
}

// Release frees the underlying buffer. Host buffers are left to the
// garbage collector; device buffers are returned to the bridge. The
// matrix must not be used afterwards.
func (m *Matrix[T]) Release() error {
	return m.backend.Release(m.raw)
}

func (m *Matrix[T]) binaryCheck(other *Matrix[T]) error {
	if m.raw.Kind() != other.raw.Kind() {
		return fmt.Errorf("%w: element kinds %s and %s", ErrShapeMismatch, m.raw.Kind(), other.raw.Kind())
	}
	if m.raw.Residency() != other.raw.Residency() {
		return fmt.Errorf("%w: mixed residency %s and %s; transfer explicitly first",
			ErrUnsupportedOperation, m.raw.Residency(), other.raw.Residency())
	}
	return nil
}
