package host

import (
	"fmt"

	"github.com/golgebra/golgebra/internal/matrix"
)

// Transpose swaps the x and y extents. Rank-1 vectors are relabeled
// between (n,1) and (1,n); the buffer permutation is kind-agnostic so
// boolean matrices transpose too. Rank-3 transpose is undefined.
func (b *Backend) Transpose(x *matrix.RawMatrix) (*matrix.RawMatrix, error) {
	if err := b.checkResident("transpose", x); err != nil {
		return nil, err
	}
	d := x.Dims()
	if d.Z() > 1 {
		return nil, fmt.Errorf("host: transpose: %w: undefined for 3-D extents %s", matrix.ErrUnsupportedOperation, d)
	}

	if d.Y() == 1 {
		// Column-to-row relabel: no data movement beyond the extents.
		out, err := matrix.NewRaw(matrix.Of(1, d.X()), x.Kind())
		if err != nil {
			return nil, err
		}
		copy(out.Bytes(), x.Bytes())
		return out, nil
	}

	out, err := matrix.NewRaw(matrix.Of(d.Y(), d.X()), x.Kind())
	if err != nil {
		return nil, err
	}
	transposeBytes(out.Bytes(), x.Bytes(), d.X(), d.Y(), x.Kind().Size())
	return out, nil
}

// transposeBytes permutes element bytes so dst(j,i) = src(i,j).
func transposeBytes(dst, src []byte, x, y, es int) {
	for j := 0; j < y; j++ {
		for i := 0; i < x; i++ {
			s := (i + j*x) * es
			d := (j + i*y) * es
			copy(dst[d:d+es], src[s:s+es])
		}
	}
}
