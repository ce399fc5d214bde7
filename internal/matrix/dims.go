package matrix

import "fmt"

// MaxRank is the dimension cap of the current contract. Dims is an ordered
// slice internally so the offset computation survives a future rank lift.
const MaxRank = 3

// Dims holds the ordered extents of a matrix, fastest-varying first.
// A vector is Dims{n}, a 2-D matrix Dims{x, y}, a 3-D tensor Dims{x, y, z}.
// Extents beyond the stored length read as 1.
type Dims []int

// Of builds a Dims value from explicit extents.
func Of(extents ...int) Dims {
	d := make(Dims, len(extents))
	copy(d, extents)
	return d
}

// X returns the first extent (1 when absent).
func (d Dims) X() int { return d.extent(0) }

// Y returns the second extent (1 when absent).
func (d Dims) Y() int { return d.extent(1) }

// Z returns the third extent (1 when absent).
func (d Dims) Z() int { return d.extent(2) }

func (d Dims) extent(i int) int {
	if i < len(d) {
		return d[i]
	}
	return 1
}

// Rank returns the declared rank, the number of stored extents.
// A default-constructed matrix has rank 1 with extent 0.
func (d Dims) Rank() int { return len(d) }

// NumElements returns the product of all extents; an empty Dims is a
// scalar with one element.
func (d Dims) NumElements() int {
	n := 1
	for _, e := range d {
		n *= e
	}
	return n
}

// Validate checks that the rank cap and non-negativity hold.
func (d Dims) Validate() error {
	if len(d) > MaxRank {
		return fmt.Errorf("%w: rank %d exceeds the %d-dimension cap", ErrUnsupportedOperation, len(d), MaxRank)
	}
	for i, e := range d {
		if e < 0 {
			return fmt.Errorf("%w: negative extent %d at dimension %d", ErrShapeMismatch, e, i)
		}
	}
	return nil
}

// Equal reports whether two Dims describe the same extents, treating
// missing trailing extents as 1.
func (d Dims) Equal(other Dims) bool {
	for i := 0; i < MaxRank; i++ {
		if d.extent(i) != other.extent(i) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the extents.
func (d Dims) Clone() Dims {
	c := make(Dims, len(d))
	copy(c, d)
	return c
}

// Offset maps a coordinate triple to its flat buffer offset.
// Coordinates must already be validated with CheckIndex.
func (d Dims) Offset(i, j, k int) int {
	return i + j*d.X() + k*d.X()*d.Y()
}

// CheckIndex validates a coordinate triple against the extents.
func (d Dims) CheckIndex(i, j, k int) error {
	if i < 0 || i >= d.X() || j < 0 || j >= d.Y() || k < 0 || k >= d.Z() {
		return fmt.Errorf("%w: (%d,%d,%d) outside extents (%d,%d,%d)",
			ErrIndexOutOfRange, i, j, k, d.X(), d.Y(), d.Z())
	}
	return nil
}

// String formats the extents the way they are constructed.
func (d Dims) String() string {
	return fmt.Sprintf("(%d,%d,%d)", d.X(), d.Y(), d.Z())
}
