// Copyright 2026 The golgebra Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package device provides the device backend for matrix operations.
//
// The backend itself is portable: it speaks to hardware through the
// Bridge interface and only tracks residency and shapes. A WebGPU
// bridge is provided on supported platforms, and MockBridge emulates a
// device in process memory for tests.
//
// Device matrices hold float32 elements only. Kernel launches are
// asynchronous; Synchronize (or any copy back to the host) joins the
// pending work.
package device

import (
	internaldevice "github.com/golgebra/golgebra/internal/backend/device"
	"github.com/golgebra/golgebra/matrix"
)

// Bridge is the low-level device interface: allocation, transfers and
// kernel launches. Implement it to run golgebra on new hardware.
type Bridge = internaldevice.Bridge

// Op names a device kernel.
type Op = internaldevice.Op

// LaunchParams carries the shapes and scalars a kernel launch needs.
type LaunchParams = internaldevice.LaunchParams

// Backend executes matrix operations through a Bridge.
type Backend = internaldevice.Backend

// Compile-time check that Backend implements matrix.Backend.
var _ matrix.Backend = (*Backend)(nil)

// MockBridge emulates a device in host memory, with fault injection
// hooks for tests.
type MockBridge = internaldevice.MockBridge

// New creates a device backend over the given bridge.
//
// Example:
//
//	dev := device.New(device.NewMockBridge())
//	onDev, _ := a.ToDevice(dev)
func New(bridge Bridge) *Backend {
	return internaldevice.New(bridge)
}

// NewMockBridge creates a mock bridge backed by host memory.
func NewMockBridge() *MockBridge {
	return internaldevice.NewMockBridge()
}
