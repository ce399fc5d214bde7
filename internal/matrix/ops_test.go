package matrix_test

import (
	"errors"
	"testing"

	"github.com/golgebra/golgebra/internal/backend/host"
	"github.com/golgebra/golgebra/internal/matrix"
)

func mustFrom2D[T matrix.Element](t *testing.T, x, y int, rows [][]T) *matrix.Matrix[T] {
	t.Helper()
	m, err := matrix.From2D(x, y, rows, host.New())
	if err != nil {
		t.Fatalf("From2D(%d, %d): %v", x, y, err)
	}
	return m
}

func assertData[T matrix.Element](t *testing.T, m *matrix.Matrix[T], want []T) {
	t.Helper()
	got := m.Data()
	if len(got) != len(want) {
		t.Fatalf("Data() has %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCreationErrors(t *testing.T) {
	b := host.New()

	if _, err := matrix.FromFlat([]int{2, 3}, []float32{1, 2, 3, 4, 5}, b); !errors.Is(err, matrix.ErrShapeMismatch) {
		t.Errorf("FromFlat (2,3) with 5 elements = %v, want ErrShapeMismatch", err)
	}
	if _, err := matrix.From2D(2, 2, [][]int32{{1, 2}, {3}}, b); !errors.Is(err, matrix.ErrShapeMismatch) {
		t.Errorf("From2D with ragged rows = %v, want ErrShapeMismatch", err)
	}
	if _, err := matrix.From1D(3, []float64{1, 2}, b); !errors.Is(err, matrix.ErrShapeMismatch) {
		t.Errorf("From1D length mismatch = %v, want ErrShapeMismatch", err)
	}
	if _, err := matrix.FromFlat([]int{2, 2, 2, 2}, make([]float32, 16), b); !errors.Is(err, matrix.ErrUnsupportedOperation) {
		t.Errorf("FromFlat rank 4 = %v, want ErrUnsupportedOperation", err)
	}
}

func TestAtSetFirst(t *testing.T) {
	m := mustFrom2D(t, 2, 3, [][]float32{{1, 2}, {3, 4}, {5, 6}})

	if v, err := m.At(1, 2); err != nil || v != 6 {
		t.Errorf("At(1,2) = %v, %v, want 6", v, err)
	}
	if err := m.Set(9, 0, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := m.At(0, 1); v != 9 {
		t.Errorf("At(0,1) after Set = %v, want 9", v)
	}
	if v, err := m.First(); err != nil || v != 1 {
		t.Errorf("First() = %v, %v, want 1", v, err)
	}

	if _, err := m.At(2, 0, 0); !errors.Is(err, matrix.ErrIndexOutOfRange) {
		t.Errorf("At(2,0,0) with DimX 2 = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := m.At(0, 0, 0, 0); !errors.Is(err, matrix.ErrIndexOutOfRange) {
		t.Errorf("At with 4 coords = %v, want ErrIndexOutOfRange", err)
	}
}

func TestElementwiseOps(t *testing.T) {
	a := mustFrom2D(t, 2, 2, [][]float32{{1, 2}, {3, 4}})
	b := mustFrom2D(t, 2, 2, [][]float32{{10, 20}, {30, 40}})

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	assertData(t, sum, []float32{11, 22, 33, 44})

	diff, err := b.Sub(a)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	assertData(t, diff, []float32{9, 18, 27, 36})

	prod, err := a.Hadamard(b)
	if err != nil {
		t.Fatalf("Hadamard: %v", err)
	}
	assertData(t, prod, []float32{10, 40, 90, 160})

	// operands keep their values
	assertData(t, a, []float32{1, 2, 3, 4})
}

func TestElementwiseShapeMismatch(t *testing.T) {
	a := mustFrom2D(t, 2, 2, [][]float32{{1, 2}, {3, 4}})
	c := mustFrom2D(t, 2, 3, [][]float32{{1, 2}, {3, 4}, {5, 6}})
	if _, err := a.Add(c); !errors.Is(err, matrix.ErrShapeMismatch) {
		t.Errorf("Add (2,2)+(2,3) = %v, want ErrShapeMismatch", err)
	}
}

func TestMatMul(t *testing.T) {
	a := mustFrom2D(t, 2, 2, [][]float32{{1, 2}, {3, 4}})
	b := mustFrom2D(t, 2, 2, [][]float32{{5, 6}, {7, 8}})

	c, err := a.MatMul(b)
	if err != nil {
		t.Fatalf("MatMul: %v", err)
	}
	assertData(t, c, []float32{19, 22, 43, 50})
}

func TestMatMulRectangular(t *testing.T) {
	// (2 rows x 3 cols) times (3 rows x 2 cols) is (2 x 2)
	a := mustFrom2D(t, 3, 2, [][]float32{{1, 2, 3}, {4, 5, 6}})
	b := mustFrom2D(t, 2, 3, [][]float32{{7, 8}, {9, 10}, {11, 12}})

	c, err := a.MatMul(b)
	if err != nil {
		t.Fatalf("MatMul: %v", err)
	}
	if c.DimX() != 2 || c.DimY() != 2 {
		t.Fatalf("result dims = (%d,%d), want (2,2)", c.DimX(), c.DimY())
	}
	assertData(t, c, []float32{58, 64, 139, 154})
}

func TestMatMulInnerMismatch(t *testing.T) {
	a := mustFrom2D(t, 3, 2, [][]float32{{1, 2, 3}, {4, 5, 6}})
	b := mustFrom2D(t, 2, 2, [][]float32{{1, 0}, {0, 1}})
	if _, err := a.MatMul(b); !errors.Is(err, matrix.ErrShapeMismatch) {
		t.Errorf("MatMul with inner mismatch = %v, want ErrShapeMismatch", err)
	}
}

func TestMatMulScalarOperand(t *testing.T) {
	a := mustFrom2D(t, 2, 2, [][]float32{{1, 2}, {3, 4}})
	s := mustFrom2D(t, 1, 1, [][]float32{{3}})

	c, err := a.MatMul(s)
	if err != nil {
		t.Fatalf("MatMul by (1,1): %v", err)
	}
	assertData(t, c, []float32{3, 6, 9, 12})

	c2, err := s.MatMul(a)
	if err != nil {
		t.Fatalf("(1,1) MatMul: %v", err)
	}
	assertData(t, c2, []float32{3, 6, 9, 12})
}

func TestScaleAndDiv(t *testing.T) {
	a := mustFrom2D(t, 2, 2, [][]float64{{2, 4}, {6, 8}})

	sc, err := a.Scale(0.5)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	assertData(t, sc, []float64{1, 2, 3, 4})

	dv, err := a.DivScalar(2)
	if err != nil {
		t.Fatalf("DivScalar: %v", err)
	}
	assertData(t, dv, []float64{1, 2, 3, 4})
}

func TestDivByScalarMatrix(t *testing.T) {
	a := mustFrom2D(t, 2, 2, [][]float32{{2, 4}, {6, 8}})
	s := mustFrom2D(t, 1, 1, [][]float32{{2}})

	q, err := a.Div(s)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	assertData(t, q, []float32{1, 2, 3, 4})

	if _, err := a.Div(a); !errors.Is(err, matrix.ErrUnsupportedOperation) {
		t.Errorf("Div by (2,2) = %v, want ErrUnsupportedOperation", err)
	}
}

func TestDivScalarIntegerZero(t *testing.T) {
	a := mustFrom2D(t, 2, 1, [][]int32{{4, 8}})
	if _, err := a.DivScalar(0); !errors.Is(err, matrix.ErrUnsupportedOperation) {
		t.Errorf("integer DivScalar(0) = %v, want ErrUnsupportedOperation", err)
	}
}

func TestTranspose(t *testing.T) {
	a := mustFrom2D(t, 3, 2, [][]int32{{1, 2, 3}, {4, 5, 6}})

	at, err := a.Transpose()
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	if at.DimX() != 2 || at.DimY() != 3 {
		t.Fatalf("transpose dims = (%d,%d), want (2,3)", at.DimX(), at.DimY())
	}
	assertData(t, at, []int32{1, 4, 2, 5, 3, 6})

	back, err := at.Transpose()
	if err != nil {
		t.Fatalf("double Transpose: %v", err)
	}
	assertData(t, back, []int32{1, 2, 3, 4, 5, 6})
}

func TestTransposeVector(t *testing.T) {
	v, err := matrix.From1D(4, []float32{1, 2, 3, 4}, host.New())
	if err != nil {
		t.Fatal(err)
	}
	vt, err := v.Transpose()
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	if vt.DimX() != 1 || vt.DimY() != 4 {
		t.Fatalf("vector transpose dims = (%d,%d), want (1,4)", vt.DimX(), vt.DimY())
	}
	assertData(t, vt, []float32{1, 2, 3, 4})
}

func TestTransposeRank3(t *testing.T) {
	m, err := matrix.Zeros3D[float32](2, 2, 2, host.New())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Transpose(); !errors.Is(err, matrix.ErrUnsupportedOperation) {
		t.Errorf("rank-3 Transpose = %v, want ErrUnsupportedOperation", err)
	}
}

func TestAppendRow(t *testing.T) {
	m := mustFrom2D(t, 2, 3, [][]int32{{1, 2}, {3, 4}, {5, 6}})

	if err := m.AppendRow(2); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	if m.DimX() != 2 || m.DimY() != 4 {
		t.Fatalf("dims after AppendRow = (%d,%d), want (2,4)", m.DimX(), m.DimY())
	}
	assertData(t, m, []int32{1, 2, 3, 4, 5, 6, 0, 0})

	if err := m.AppendRow(3); !errors.Is(err, matrix.ErrShapeMismatch) {
		t.Errorf("AppendRow wrong width = %v, want ErrShapeMismatch", err)
	}
}

func TestBooleanArithmeticUnsupported(t *testing.T) {
	b := host.New()
	p, err := matrix.From2D(2, 1, [][]bool{{true, false}}, b)
	if err != nil {
		t.Fatal(err)
	}
	q, err := matrix.From2D(2, 1, [][]bool{{false, true}}, b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Add(q); !errors.Is(err, matrix.ErrUnsupportedOperation) {
		t.Errorf("boolean Add = %v, want ErrUnsupportedOperation", err)
	}
	if _, err := p.Hadamard(q); !errors.Is(err, matrix.ErrUnsupportedOperation) {
		t.Errorf("boolean Hadamard = %v, want ErrUnsupportedOperation", err)
	}

	// structural operations still work
	pt, err := p.Transpose()
	if err != nil {
		t.Fatalf("boolean Transpose: %v", err)
	}
	if pt.DimX() != 1 || pt.DimY() != 2 {
		t.Errorf("boolean transpose dims = (%d,%d), want (1,2)", pt.DimX(), pt.DimY())
	}
}

func TestIdentity(t *testing.T) {
	i, err := matrix.Identity[float64](3, host.New())
	if err != nil {
		t.Fatal(err)
	}
	assertData(t, i, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})

	if _, err := matrix.Identity[bool](2, host.New()); !errors.Is(err, matrix.ErrUnsupportedOperation) {
		t.Errorf("Identity[bool] = %v, want ErrUnsupportedOperation", err)
	}
}

func TestCloneIndependence(t *testing.T) {
	a := mustFrom2D(t, 2, 1, [][]float32{{1, 2}})
	c, err := a.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(9, 0, 0); err != nil {
		t.Fatal(err)
	}
	if v, _ := a.At(0, 0); v != 1 {
		t.Errorf("Clone shares storage: original At(0,0) = %v, want 1", v)
	}
}
