package matrix

import (
	"errors"
	"testing"
)

func TestDimsExtents(t *testing.T) {
	tests := []struct {
		dims    Dims
		x, y, z int
		rank    int
		n       int
	}{
		{Of(), 1, 1, 1, 0, 1},
		{Of(5), 5, 1, 1, 1, 5},
		{Of(4, 3), 4, 3, 1, 2, 12},
		{Of(2, 3, 4), 2, 3, 4, 3, 24},
		{Of(0), 0, 1, 1, 1, 0},
	}

	for _, tt := range tests {
		if got := tt.dims.X(); got != tt.x {
			t.Errorf("%s.X() = %d, want %d", tt.dims, got, tt.x)
		}
		if got := tt.dims.Y(); got != tt.y {
			t.Errorf("%s.Y() = %d, want %d", tt.dims, got, tt.y)
		}
		if got := tt.dims.Z(); got != tt.z {
			t.Errorf("%s.Z() = %d, want %d", tt.dims, got, tt.z)
		}
		if got := tt.dims.Rank(); got != tt.rank {
			t.Errorf("%s.Rank() = %d, want %d", tt.dims, got, tt.rank)
		}
		if got := tt.dims.NumElements(); got != tt.n {
			t.Errorf("%s.NumElements() = %d, want %d", tt.dims, got, tt.n)
		}
	}
}

func TestDimsValidate(t *testing.T) {
	if err := Of(2, 3, 4).Validate(); err != nil {
		t.Errorf("Validate(2,3,4) = %v, want nil", err)
	}
	if err := Of(1, 2, 3, 4).Validate(); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("Validate rank 4 = %v, want ErrUnsupportedOperation", err)
	}
	if err := Of(-1, 3).Validate(); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Validate negative extent = %v, want ErrShapeMismatch", err)
	}
}

func TestDimsEqual(t *testing.T) {
	tests := []struct {
		a, b Dims
		want bool
	}{
		{Of(4, 3), Of(4, 3), true},
		{Of(4, 3), Of(4, 3, 1), true}, // trailing 1 is implicit
		{Of(5), Of(5, 1, 1), true},
		{Of(4, 3), Of(3, 4), false},
		{Of(2, 3, 4), Of(2, 3), false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%s.Equal(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDimsOffset(t *testing.T) {
	d := Of(2, 3, 4)
	// offset(i, j, k) = i + j*x + k*x*y
	tests := []struct {
		i, j, k int
		want    int
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 1},
		{0, 1, 0, 2},
		{0, 0, 1, 6},
		{1, 2, 3, 23},
	}
	for _, tt := range tests {
		if got := d.Offset(tt.i, tt.j, tt.k); got != tt.want {
			t.Errorf("Offset(%d,%d,%d) = %d, want %d", tt.i, tt.j, tt.k, got, tt.want)
		}
	}
}

func TestDimsCheckIndex(t *testing.T) {
	d := Of(2, 3)
	if err := d.CheckIndex(1, 2, 0); err != nil {
		t.Errorf("CheckIndex(1,2,0) = %v, want nil", err)
	}
	for _, c := range [][3]int{{2, 0, 0}, {0, 3, 0}, {0, 0, 1}, {-1, 0, 0}} {
		if err := d.CheckIndex(c[0], c[1], c[2]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("CheckIndex(%v) = %v, want ErrIndexOutOfRange", c, err)
		}
	}
}

func TestDimsClone(t *testing.T) {
	d := Of(2, 3)
	c := d.Clone()
	c[0] = 9
	if d.X() != 2 {
		t.Errorf("Clone aliases the original: %s", d)
	}
}
