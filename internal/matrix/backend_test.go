package matrix

import (
	"errors"
	"testing"
)

func TestConvOutDims(t *testing.T) {
	tests := []struct {
		in, kernel Dims
		stride     int
		pad        PadMode
		want       Dims
	}{
		{Of(5, 5), Of(3, 3), 1, PadValid, Of(3, 3)},
		{Of(5, 5), Of(3, 3), 2, PadValid, Of(2, 2)},
		{Of(5, 5), Of(3, 3), 1, PadSame, Of(5, 5)},
		{Of(6), Of(2), 2, PadValid, Of(3)},
		{Of(4, 4, 3), Of(2, 2), 1, PadValid, Of(3, 3, 3)},
		{Of(4, 4, 3), Of(2, 2, 3), 1, PadValid, Of(3, 3, 1)},
		{Of(5, 5), Of(3, 3, 2), 1, PadSame, Of(5, 5, 1)},
	}

	for _, tt := range tests {
		got, err := ConvOutDims(tt.in, tt.kernel, tt.stride, tt.pad)
		if err != nil {
			t.Errorf("ConvOutDims(%s, %s, %d, %s): %v", tt.in, tt.kernel, tt.stride, tt.pad, err)
			continue
		}
		if got.Rank() != tt.want.Rank() {
			t.Errorf("ConvOutDims(%s, %s, %d, %s) rank = %d, want %d",
				tt.in, tt.kernel, tt.stride, tt.pad, got.Rank(), tt.want.Rank())
		}
		if !got.Equal(tt.want) {
			t.Errorf("ConvOutDims(%s, %s, %d, %s) = %s, want %s",
				tt.in, tt.kernel, tt.stride, tt.pad, got, tt.want)
		}
	}
}

func TestConvOutDimsErrors(t *testing.T) {
	if _, err := ConvOutDims(Of(3, 3), Of(4, 4), 1, PadValid); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("oversized kernel under valid padding: err = %v, want ErrShapeMismatch", err)
	}
	if _, err := ConvOutDims(Of(3, 3), Of(2, 2), 0, PadValid); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("zero stride: err = %v, want ErrShapeMismatch", err)
	}
}

func TestMatMulDims(t *testing.T) {
	got, err := MatMulDims(Of(3, 2), Of(4, 3))
	if err != nil {
		t.Fatalf("MatMulDims: %v", err)
	}
	if !got.Equal(Of(4, 2)) {
		t.Errorf("MatMulDims((3,2), (4,3)) = %s, want (4,2,1)", got)
	}

	if _, err := MatMulDims(Of(3, 2), Of(4, 2)); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("inner mismatch: err = %v, want ErrShapeMismatch", err)
	}
	if _, err := MatMulDims(Of(2, 2, 2), Of(2, 2)); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("3-D operand: err = %v, want ErrShapeMismatch", err)
	}
}
