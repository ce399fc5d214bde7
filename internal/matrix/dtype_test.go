package matrix

import "testing"

func TestElemKindSize(t *testing.T) {
	tests := []struct {
		kind ElemKind
		size int
	}{
		{Int32, 4},
		{Uint32, 4},
		{Float32, 4},
		{Double64, 8},
		{Boolean, 1},
	}
	for _, tt := range tests {
		if got := tt.kind.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.kind, got, tt.size)
		}
	}
}

func TestElemKindString(t *testing.T) {
	tests := []struct {
		kind ElemKind
		str  string
	}{
		{Int32, "int32"},
		{Uint32, "uint32"},
		{Float32, "float32"},
		{Double64, "double64"},
		{Boolean, "boolean"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.str {
			t.Errorf("kind.String() = %q, want %q", got, tt.str)
		}
	}
}

func TestKindOf(t *testing.T) {
	if k := KindOf[int32](); k != Int32 {
		t.Errorf("KindOf[int32] = %v, want Int32", k)
	}
	if k := KindOf[uint32](); k != Uint32 {
		t.Errorf("KindOf[uint32] = %v, want Uint32", k)
	}
	if k := KindOf[float32](); k != Float32 {
		t.Errorf("KindOf[float32] = %v, want Float32", k)
	}
	if k := KindOf[float64](); k != Double64 {
		t.Errorf("KindOf[float64] = %v, want Double64", k)
	}
	if k := KindOf[bool](); k != Boolean {
		t.Errorf("KindOf[bool] = %v, want Boolean", k)
	}
}

func TestElemKindIsFloat(t *testing.T) {
	for _, k := range []ElemKind{Float32, Double64} {
		if !k.IsFloat() {
			t.Errorf("%s.IsFloat() = false, want true", k)
		}
	}
	for _, k := range []ElemKind{Int32, Uint32, Boolean} {
		if k.IsFloat() {
			t.Errorf("%s.IsFloat() = true, want false", k)
		}
	}
}
