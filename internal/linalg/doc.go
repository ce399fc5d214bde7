// Package linalg provides the linear-algebra algorithm suite over Matrix
// values: Gauss-Jordan inverse, shifted-QR eigen-decomposition, and
// sliding-window convolution.
//
// Inverse, Eigen, and Determinant are direct host algorithms over
// float-kind matrices. Convolve delegates to the matrix's backend, so it
// runs on both residencies.
package linalg
