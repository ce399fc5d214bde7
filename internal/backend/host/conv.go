package host

import (
	"fmt"

	"github.com/golgebra/golgebra/internal/matrix"
	"github.com/golgebra/golgebra/internal/parallel"
)

// Conv applies kernel over input by sliding-window sum-of-products with a
// uniform stride per axis. Valid padding shrinks the output per
// floor((in-k)/stride)+1; same padding zero-pads symmetrically so the
// output extents match the input.
func (b *Backend) Conv(input, kernel *matrix.RawMatrix, stride int, pad matrix.PadMode) (*matrix.RawMatrix, error) {
	if err := b.checkResident("conv", input, kernel); err != nil {
		return nil, err
	}
	if input.Kind() != kernel.Kind() {
		return nil, fmt.Errorf("host: conv: %w: element kinds %s and %s",
			matrix.ErrShapeMismatch, input.Kind(), kernel.Kind())
	}
	outDims, err := matrix.ConvOutDims(input.Dims(), kernel.Dims(), stride, pad)
	if err != nil {
		return nil, fmt.Errorf("host: conv: %w", err)
	}
	out, err := matrix.NewRaw(outDims, input.Kind())
	if err != nil {
		return nil, err
	}

	switch input.Kind() {
	case matrix.Int32:
		convSlice(out.AsInt32(), input.AsInt32(), kernel.AsInt32(), input.Dims(), kernel.Dims(), outDims, stride, pad, b.par)
	case matrix.Uint32:
		convSlice(out.AsUint32(), input.AsUint32(), kernel.AsUint32(), input.Dims(), kernel.Dims(), outDims, stride, pad, b.par)
	case matrix.Float32:
		convSlice(out.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(), input.Dims(), kernel.Dims(), outDims, stride, pad, b.par)
	case matrix.Double64:
		convSlice(out.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(), input.Dims(), kernel.Dims(), outDims, stride, pad, b.par)
	default:
		return nil, fmt.Errorf("host: conv: %w: element kind %s", matrix.ErrUnsupportedOperation, input.Kind())
	}
	return out, nil
}

// convSlice computes one output cell per (oz,oy,ox) coordinate, splitting
// the outer two axes across workers. Out-of-input taps contribute zero,
// which is exactly the same-padding contract.
func convSlice[N number](dst, src, ker []N, in, kd, out matrix.Dims, stride int, pad matrix.PadMode, par parallel.Config) {
	inX, inY, inZ := in.X(), in.Y(), in.Z()
	kX, kY, kZ := kd.X(), kd.Y(), kd.Z()
	outX, outY := out.X(), out.Y()

	var padX, padY, padZ int
	if pad == matrix.PadSame {
		padX = matrix.SamePadLow(inX, kX, stride)
		padY = matrix.SamePadLow(inY, kY, stride)
		padZ = matrix.SamePadLow(inZ, kZ, stride)
	}

	parallel.For(out.Z()*outY, func(row int) {
		oz, oy := row/outY, row%outY
		for ox := 0; ox < outX; ox++ {
			var sum N
			for dz := 0; dz < kZ; dz++ {
				iz := oz*stride - padZ + dz
				if iz < 0 || iz >= inZ {
					continue
				}
				for dy := 0; dy < kY; dy++ {
					iy := oy*stride - padY + dy
					if iy < 0 || iy >= inY {
						continue
					}
					srcRow := src[iy*inX+iz*inX*inY:]
					kerRow := ker[dy*kX+dz*kX*kY:]
					for dx := 0; dx < kX; dx++ {
						ix := ox*stride - padX + dx
						if ix < 0 || ix >= inX {
							continue
						}
						sum += srcRow[ix] * kerRow[dx]
					}
				}
			}
			dst[ox+oy*outX+oz*outX*outY] = sum
		}
	}, par)
}
