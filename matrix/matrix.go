// Copyright 2026 The golgebra Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	imatrix "github.com/golgebra/golgebra/internal/matrix"
)

// Type aliases for the public API.

// Element is the constraint for matrix element types.
// Supported types: int32, uint32, float32, float64, bool.
type Element = imatrix.Element

// ElemKind identifies the runtime element kind of a matrix.
type ElemKind = imatrix.ElemKind

// Element kind constants.
const (
	Int32    ElemKind = imatrix.Int32
	Uint32   ElemKind = imatrix.Uint32
	Float32  ElemKind = imatrix.Float32
	Double64 ElemKind = imatrix.Double64
	Boolean  ElemKind = imatrix.Boolean
)

// Residency says where a matrix's elements live.
type Residency = imatrix.Residency

// Residency constants.
const (
	Host   Residency = imatrix.Host
	Device Residency = imatrix.Device
)

// Dims holds a matrix's extents, innermost first.
// Example: Of(4, 3) is a 3-row matrix with 4 elements per row.
type Dims = imatrix.Dims

// MaxRank is the highest supported number of axes.
const MaxRank = imatrix.MaxRank

// Of builds a Dims value from the given extents.
func Of(extents ...int) Dims { return imatrix.Of(extents...) }

// RawMatrix is the untyped storage shared by all element kinds.
type RawMatrix = imatrix.RawMatrix

// DeviceHandle is an opaque reference to device-resident storage.
type DeviceHandle = imatrix.DeviceHandle

// PadMode selects convolution output geometry.
type PadMode = imatrix.PadMode

// Padding constants.
const (
	PadValid PadMode = imatrix.PadValid
	PadSame  PadMode = imatrix.PadSame
)

// Backend is the compute interface implemented by backend/host and
// backend/device.
type Backend = imatrix.Backend

// Matrix is a generic type-safe dense matrix.
//
// T is the element type (int32, uint32, float32, float64, bool). The
// backend that created the matrix executes its operations; matrices on
// different backends do not mix.
type Matrix[T Element] = imatrix.Matrix[T]

// Sentinel errors. Operations wrap these, so match with errors.Is.
var (
	ErrShapeMismatch        = imatrix.ErrShapeMismatch
	ErrIndexOutOfRange      = imatrix.ErrIndexOutOfRange
	ErrSingular             = imatrix.ErrSingular
	ErrConvergence          = imatrix.ErrConvergence
	ErrUnsupportedOperation = imatrix.ErrUnsupportedOperation
	ErrDevice               = imatrix.ErrDevice
)

// New creates an empty scalar-shaped matrix on the given backend.
func New[T Element](b Backend) *Matrix[T] { return imatrix.New[T](b) }

// FromRaw wraps raw storage in a typed matrix. It panics when the raw
// kind does not match T; use it only with storage produced for T.
func FromRaw[T Element](raw *RawMatrix, b Backend) *Matrix[T] {
	return imatrix.FromRaw[T](raw, b)
}

// Zeros1D creates a zero-filled vector of n elements.
func Zeros1D[T Element](n int, b Backend) (*Matrix[T], error) {
	return imatrix.Zeros1D[T](n, b)
}

// Zeros2D creates a zero-filled x-by-y matrix.
func Zeros2D[T Element](x, y int, b Backend) (*Matrix[T], error) {
	return imatrix.Zeros2D[T](x, y, b)
}

// Zeros3D creates a zero-filled x-by-y-by-z matrix.
func Zeros3D[T Element](x, y, z int, b Backend) (*Matrix[T], error) {
	return imatrix.Zeros3D[T](x, y, z, b)
}

// From1D creates a vector from a slice of n elements.
func From1D[T Element](n int, data []T, b Backend) (*Matrix[T], error) {
	return imatrix.From1D(n, data, b)
}

// From2D creates an x-by-y matrix from y rows of x elements each.
func From2D[T Element](x, y int, rows [][]T, b Backend) (*Matrix[T], error) {
	return imatrix.From2D(x, y, rows, b)
}

// From3D creates an x-by-y-by-z matrix from z layers of y rows each.
func From3D[T Element](x, y, z int, layers [][][]T, b Backend) (*Matrix[T], error) {
	return imatrix.From3D(x, y, z, layers, b)
}

// FromFlat creates a matrix with the given extents from already-flat
// data laid out at offset i + j*x + k*x*y.
func FromFlat[T Element](dims []int, flat []T, b Backend) (*Matrix[T], error) {
	return imatrix.FromFlat(dims, flat, b)
}

// Identity creates the n-by-n identity matrix.
func Identity[T Element](n int, b Backend) (*Matrix[T], error) {
	return imatrix.Identity[T](n, b)
}

// MatMulDims returns the result extents of multiplying shapes a and b,
// or ErrShapeMismatch when the inner extents disagree.
func MatMulDims(a, b Dims) (Dims, error) { return imatrix.MatMulDims(a, b) }

// ConvOutDims returns the output extents of a convolution.
func ConvOutDims(in, kernel Dims, stride int, pad PadMode) (Dims, error) {
	return imatrix.ConvOutDims(in, kernel, stride, pad)
}
