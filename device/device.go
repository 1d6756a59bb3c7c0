// Copyright 2025 Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package device provides GPU device management for Lattice.
//
// A Device owns a WebGPU adapter, logical device and submission queue.
// All sparse containers are bound to the device they were created on:
// buffers are allocated from its pool, and transfers are ordered through
// its streams.
//
// Example:
//
//	dev, err := device.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Release()
//
//	s := dev.NewStream()
//	// ... enqueue transfers on s ...
//	if err := s.Sync(); err != nil {
//	    log.Fatal(err)
//	}
package device

import (
	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/lattice-ml/lattice/internal/device"
)

// Device represents a GPU device accessible through WebGPU.
type Device = device.Device

// Buffer is a block of device memory holding container data.
type Buffer = device.Buffer

// Stream is an ordered queue of device operations. Work enqueued on a
// stream is submitted in order; Sync blocks until it has completed.
type Stream = device.Stream

// MemoryStats reports a device's allocation counters.
type MemoryStats = device.MemoryStats

// New creates a device on the highest-performance available adapter.
// Call Release when done to free GPU resources.
func New() (*Device, error) {
	return device.New()
}

// IsAvailable reports whether a WebGPU device can be created on this
// system. It is safe to call even when the native library is missing.
func IsAvailable() bool {
	return device.IsAvailable()
}

// AdapterInfo describes a GPU adapter.
type AdapterInfo = wgpu.AdapterInfoGo

// ListAdapters returns information about the available GPU adapters.
func ListAdapters() ([]*AdapterInfo, error) {
	return device.ListAdapters()
}
