package host

import (
	"errors"
	"testing"

	"github.com/golgebra/golgebra/internal/matrix"
)

func rawFromFloat32(t *testing.T, dims matrix.Dims, data []float32) *matrix.RawMatrix {
	t.Helper()
	r, err := matrix.NewRaw(dims, matrix.Float32)
	if err != nil {
		t.Fatalf("NewRaw(%s): %v", dims, err)
	}
	copy(r.AsFloat32(), data)
	return r
}

func assertFloat32s(t *testing.T, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBackendIdentity(t *testing.T) {
	b := New()
	if b.Name() != "host" {
		t.Errorf("Name() = %q, want %q", b.Name(), "host")
	}
	if b.Residency() != matrix.Host {
		t.Errorf("Residency() = %v, want Host", b.Residency())
	}
	if err := b.Synchronize(); err != nil {
		t.Errorf("Synchronize() = %v, want nil", err)
	}
}

func TestAddDimsMismatch(t *testing.T) {
	b := New()
	x := rawFromFloat32(t, matrix.Of(2, 2), []float32{1, 2, 3, 4})
	y := rawFromFloat32(t, matrix.Of(4), []float32{1, 2, 3, 4})
	if _, err := b.Add(x, y); !errors.Is(err, matrix.ErrShapeMismatch) {
		t.Errorf("Add (2,2)+(4,) = %v, want ErrShapeMismatch", err)
	}
}

func TestScaleScalarKind(t *testing.T) {
	b := New()
	x := rawFromFloat32(t, matrix.Of(3), []float32{1, 2, 3})

	out, err := b.Scale(x, float32(2))
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	assertFloat32s(t, out.AsFloat32(), []float32{2, 4, 6})

	// a float64 scalar against a float32 matrix is a kind mismatch
	if _, err := b.Scale(x, float64(2)); !errors.Is(err, matrix.ErrShapeMismatch) {
		t.Errorf("Scale with float64 scalar = %v, want ErrShapeMismatch", err)
	}
}

func TestTransposeBytes(t *testing.T) {
	b := New()
	// 3 cols x 2 rows
	x := rawFromFloat32(t, matrix.Of(3, 2), []float32{1, 2, 3, 4, 5, 6})

	out, err := b.Transpose(x)
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	if !out.Dims().Equal(matrix.Of(2, 3)) {
		t.Fatalf("transpose dims = %s, want (2,3,1)", out.Dims())
	}
	assertFloat32s(t, out.AsFloat32(), []float32{1, 4, 2, 5, 3, 6})
}

func TestConvValid(t *testing.T) {
	b := New()
	input := rawFromFloat32(t, matrix.Of(4, 4), []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	})
	kernel := rawFromFloat32(t, matrix.Of(2, 2), []float32{1, 0, 0, 1})

	out, err := b.Conv(input, kernel, 1, matrix.PadValid)
	if err != nil {
		t.Fatalf("Conv: %v", err)
	}
	if !out.Dims().Equal(matrix.Of(3, 3)) {
		t.Fatalf("valid conv dims = %s, want (3,3,1)", out.Dims())
	}
	// each cell is input(x,y) + input(x+1,y+1)
	assertFloat32s(t, out.AsFloat32(), []float32{
		7, 9, 11,
		15, 17, 19,
		23, 25, 27,
	})
}

func TestConvStride(t *testing.T) {
	b := New()
	input := rawFromFloat32(t, matrix.Of(4, 4), []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	})
	kernel := rawFromFloat32(t, matrix.Of(2, 2), []float32{1, 1, 1, 1})

	out, err := b.Conv(input, kernel, 2, matrix.PadValid)
	if err != nil {
		t.Fatalf("Conv: %v", err)
	}
	if !out.Dims().Equal(matrix.Of(2, 2)) {
		t.Fatalf("strided conv dims = %s, want (2,2,1)", out.Dims())
	}
	assertFloat32s(t, out.AsFloat32(), []float32{14, 22, 46, 54})
}

func TestConvSame(t *testing.T) {
	b := New()
	input := rawFromFloat32(t, matrix.Of(3, 3), []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	kernel := rawFromFloat32(t, matrix.Of(3, 3), []float32{
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	})

	out, err := b.Conv(input, kernel, 1, matrix.PadSame)
	if err != nil {
		t.Fatalf("Conv: %v", err)
	}
	if !out.Dims().Equal(input.Dims()) {
		t.Fatalf("same conv dims = %s, want %s", out.Dims(), input.Dims())
	}
	// centered identity kernel reproduces the input
	assertFloat32s(t, out.AsFloat32(), input.AsFloat32())
}

func TestConvKernelTooBig(t *testing.T) {
	b := New()
	input := rawFromFloat32(t, matrix.Of(2, 2), []float32{1, 2, 3, 4})
	kernel := rawFromFloat32(t, matrix.Of(3, 3), make([]float32, 9))

	if _, err := b.Conv(input, kernel, 1, matrix.PadValid); !errors.Is(err, matrix.ErrShapeMismatch) {
		t.Errorf("valid conv with oversized kernel = %v, want ErrShapeMismatch", err)
	}
}

func TestConvBadStride(t *testing.T) {
	b := New()
	input := rawFromFloat32(t, matrix.Of(2, 2), []float32{1, 2, 3, 4})
	kernel := rawFromFloat32(t, matrix.Of(2, 2), make([]float32, 4))

	if _, err := b.Conv(input, kernel, 0, matrix.PadValid); !errors.Is(err, matrix.ErrShapeMismatch) {
		t.Errorf("conv with stride 0 = %v, want ErrShapeMismatch", err)
	}
}

func TestHostCloneAndTransfers(t *testing.T) {
	b := New()
	x := rawFromFloat32(t, matrix.Of(2), []float32{1, 2})

	c, err := b.Clone(x)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	c.AsFloat32()[0] = 9
	if x.AsFloat32()[0] != 1 {
		t.Error("Clone shares its buffer with the source")
	}

	h, err := b.ToHost(x)
	if err != nil {
		t.Fatalf("ToHost: %v", err)
	}
	assertFloat32s(t, h.AsFloat32(), []float32{1, 2})

	f, err := b.FromHost(x)
	if err != nil {
		t.Fatalf("FromHost: %v", err)
	}
	if f.Residency() != matrix.Host {
		t.Errorf("FromHost residency = %v, want Host", f.Residency())
	}
}
