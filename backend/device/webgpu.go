// Copyright 2026 The golgebra Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

//go:build windows

package device

import (
	internaldevice "github.com/golgebra/golgebra/internal/backend/device"
)

// WebGPU is the Bridge implementation over a WebGPU compute device.
type WebGPU = internaldevice.WebGPU

// PoolStats reports buffer-pool reuse counters for a WebGPU bridge.
type PoolStats = internaldevice.PoolStats

// NewWebGPU opens the default GPU adapter and returns a bridge over it.
// It fails when no suitable adapter is available.
func NewWebGPU() (*WebGPU, error) {
	return internaldevice.NewWebGPU()
}
