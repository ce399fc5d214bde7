package matrix

import "fmt"

// New creates the default matrix: a vector with extents (0,).
func New[T Element](b Backend) *Matrix[T] {
	raw, err := NewRaw(Of(0), KindOf[T]())
	if err != nil {
		panic(err) // zero extent always validates
	}
	return FromRaw[T](raw, b)
}

// Zeros1D creates a zero-filled vector with extents (n,).
func Zeros1D[T Element](n int, b Backend) (*Matrix[T], error) {
	return zeros[T](Of(n), b)
}

// Zeros2D creates a zero-filled 2-D matrix with extents (x, y):
// y rows of x columns, each row contiguous in the buffer.
func Zeros2D[T Element](x, y int, b Backend) (*Matrix[T], error) {
	return zeros[T](Of(x, y), b)
}

// Zeros3D creates a zero-filled 3-D matrix with extents (x, y, z).
func Zeros3D[T Element](x, y, z int, b Backend) (*Matrix[T], error) {
	return zeros[T](Of(x, y, z), b)
}

func zeros[T Element](dims Dims, b Backend) (*Matrix[T], error) {
	raw, err := NewRaw(dims, KindOf[T]())
	if err != nil {
		return nil, err
	}
	return FromRaw[T](raw, b), nil
}

// From1D creates a vector with extents (n,) from an existing slice.
// The source is copied, never aliased.
func From1D[T Element](n int, data []T, b Backend) (*Matrix[T], error) {
	if len(data) != n {
		return nil, fmt.Errorf("%w: extent (%d,) with source of length %d", ErrShapeMismatch, n, len(data))
	}
	m, err := zeros[T](Of(n), b)
	if err != nil {
		return nil, err
	}
	copy(m.Data(), data)
	return m, nil
}

// From2D creates a 2-D matrix with extents (x, y) from a nested source of
// y rows with x elements each. Every nesting level is validated against
// the corresponding extent.
func From2D[T Element](x, y int, rows [][]T, b Backend) (*Matrix[T], error) {
	if len(rows) != y {
		return nil, fmt.Errorf("%w: extents (%d,%d) with %d source rows", ErrShapeMismatch, x, y, len(rows))
	}
	m, err := zeros[T](Of(x, y), b)
	if err != nil {
		return nil, err
	}
	data := m.Data()
	for j, row := range rows {
		if len(row) != x {
			return nil, fmt.Errorf("%w: row %d has %d elements, want %d", ErrShapeMismatch, j, len(row), x)
		}
		copy(data[j*x:(j+1)*x], row)
	}
	return m, nil
}

// From3D creates a 3-D matrix with extents (x, y, z) from a nested source
// of z layers, each with y rows of x elements.
func From3D[T Element](x, y, z int, layers [][][]T, b Backend) (*Matrix[T], error) {
	if len(layers) != z {
		return nil, fmt.Errorf("%w: extents (%d,%d,%d) with %d source layers", ErrShapeMismatch, x, y, z, len(layers))
	}
	m, err := zeros[T](Of(x, y, z), b)
	if err != nil {
		return nil, err
	}
	data := m.Data()
	for k, layer := range layers {
		if len(layer) != y {
			return nil, fmt.Errorf("%w: layer %d has %d rows, want %d", ErrShapeMismatch, k, len(layer), y)
		}
		for j, row := range layer {
			if len(row) != x {
				return nil, fmt.Errorf("%w: layer %d row %d has %d elements, want %d",
					ErrShapeMismatch, k, j, len(row), x)
			}
			base := k*x*y + j*x
			copy(data[base:base+x], row)
		}
	}
	return m, nil
}

// FromFlat creates a matrix with arbitrary extents from a flat source.
// The source length must equal the product of the extents; ranks beyond
// the 3-dimension cap are rejected.
func FromFlat[T Element](dims []int, flat []T, b Backend) (*Matrix[T], error) {
	d := Of(dims...)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if len(flat) != d.NumElements() {
		return nil, fmt.Errorf("%w: extents %s require %d elements, source has %d",
			ErrShapeMismatch, d, d.NumElements(), len(flat))
	}
	m, err := zeros[T](d, b)
	if err != nil {
		return nil, err
	}
	copy(m.Data(), flat)
	return m, nil
}

// Identity creates the n×n identity matrix.
func Identity[T Element](n int, b Backend) (*Matrix[T], error) {
	if KindOf[T]() == Boolean {
		return nil, fmt.Errorf("%w: identity over boolean elements", ErrUnsupportedOperation)
	}
	m, err := zeros[T](Of(n, n), b)
	if err != nil {
		return nil, err
	}
	data := m.Data()
	for i := 0; i < n; i++ {
		data[i+i*n] = oneOf[T]()
	}
	return m, nil
}

func oneOf[T Element]() T {
	var zero T
	var one any
	switch any(zero).(type) {
	case int32:
		one = int32(1)
	case uint32:
		one = uint32(1)
	case float32:
		one = float32(1)
	case float64:
		one = float64(1)
	case bool:
		one = true
	}
	return one.(T)
}
