// Package device provides the device-buffer allocation and transfer layer
// for Lattice containers. Uses go-webgpu (github.com/go-webgpu/webgpu) for
// zero-CGO WebGPU bindings.
//
// The package exposes exactly what the sparse container layer needs: buffer
// allocation, host-to-device upload, device-to-host download, device-to-device
// copy, and explicit execution streams for asynchronous scheduling. It does
// not run compute kernels of its own.
package device

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-webgpu/webgpu/wgpu"
)

// nextID hands out process-local device identifiers.
// Containers record the ID of the device their buffers live on.
var nextID atomic.Int32

// Device owns a WebGPU device and its default queue.
// All buffers allocated through a Device are resident on that device.
type Device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	adapterInfo *wgpu.AdapterInfoGo

	id   int
	pool *BufferPool

	// Memory tracking
	memoryStats struct {
		totalAllocatedBytes uint64
		peakMemoryBytes     uint64
		activeBuffers       int64
		mu                  sync.RWMutex
	}
}

// New creates a new Device on the system's high-performance adapter.
// Returns an error if WebGPU is not available or initialization fails.
func New() (dev *Device, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			dev = nil
			err = fmt.Errorf("device: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, fmt.Errorf("device: failed to create instance: %w", instanceErr)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("device: failed to request adapter: %w", adapterErr)
	}

	adapterInfo, _ := adapter.GetInfo()

	wgpuDevice, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("device: failed to request device: %w", deviceErr)
	}

	queue := wgpuDevice.GetQueue()
	if queue == nil {
		wgpuDevice.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("device: failed to get queue")
	}

	d := &Device{
		instance:    instance,
		adapter:     adapter,
		device:      wgpuDevice,
		queue:       queue,
		adapterInfo: adapterInfo,
		id:          int(nextID.Add(1)) - 1,
	}
	d.pool = NewBufferPool(wgpuDevice)

	return d, nil
}

// ID returns the process-local identifier of this device.
func (d *Device) ID() int {
	return d.id
}

// Name returns a human-readable description of the underlying adapter.
func (d *Device) Name() string {
	if d.adapterInfo != nil {
		return fmt.Sprintf("WebGPU (%s %s)", d.adapterInfo.Device, d.adapterInfo.Vendor)
	}
	return "WebGPU"
}

// AdapterInfo returns information about the GPU adapter.
func (d *Device) AdapterInfo() *wgpu.AdapterInfoGo {
	return d.adapterInfo
}

// Release frees all device resources, including pooled buffers.
// Buffers still held by containers become invalid after Release.
func (d *Device) Release() {
	if d.pool != nil {
		d.pool.Clear()
		d.pool = nil
	}
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

// ListAdapters returns information about the available GPU adapters.
func ListAdapters() (adapters []*wgpu.AdapterInfoGo, err error) {
	defer func() {
		if r := recover(); r != nil {
			adapters = nil
			err = fmt.Errorf("device: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, fmt.Errorf("device: failed to create instance: %w", instanceErr)
	}
	defer instance.Release()

	// WebGPU has no adapter enumeration; report the default adapter.
	adapter, adapterErr := instance.RequestAdapter(nil)
	if adapterErr != nil {
		return nil, fmt.Errorf("device: no adapters available: %w", adapterErr)
	}
	defer adapter.Release()

	info, infoErr := adapter.GetInfo()
	if infoErr != nil {
		return nil, fmt.Errorf("device: failed to get adapter info: %w", infoErr)
	}

	return []*wgpu.AdapterInfoGo{info}, nil
}

// MemoryStats reports device memory usage.
type MemoryStats struct {
	// Total bytes currently allocated through this device
	TotalAllocatedBytes uint64
	// Peak memory usage in bytes
	PeakMemoryBytes uint64
	// Number of currently active buffers
	ActiveBuffers int64
	// Buffer pool statistics
	PoolHits      uint64
	PoolMisses    uint64
	PooledBuffers int
}

// MemoryStats returns current memory usage statistics for this device.
func (d *Device) MemoryStats() MemoryStats {
	d.memoryStats.mu.RLock()
	totalAllocated := d.memoryStats.totalAllocatedBytes
	peakMemory := d.memoryStats.peakMemoryBytes
	activeBuffers := d.memoryStats.activeBuffers
	d.memoryStats.mu.RUnlock()

	hits, misses, pooledCount := d.pool.Stats()

	return MemoryStats{
		TotalAllocatedBytes: totalAllocated,
		PeakMemoryBytes:     peakMemory,
		ActiveBuffers:       activeBuffers,
		PoolHits:            hits,
		PoolMisses:          misses,
		PooledBuffers:       pooledCount,
	}
}

// trackAllocation records a buffer allocation in memory statistics.
func (d *Device) trackAllocation(size uint64) {
	d.memoryStats.mu.Lock()
	defer d.memoryStats.mu.Unlock()

	d.memoryStats.totalAllocatedBytes += size
	d.memoryStats.activeBuffers++

	if d.memoryStats.totalAllocatedBytes > d.memoryStats.peakMemoryBytes {
		d.memoryStats.peakMemoryBytes = d.memoryStats.totalAllocatedBytes
	}
}

// trackRelease records a buffer release in memory statistics.
func (d *Device) trackRelease(size uint64) {
	d.memoryStats.mu.Lock()
	defer d.memoryStats.mu.Unlock()

	if d.memoryStats.totalAllocatedBytes >= size {
		d.memoryStats.totalAllocatedBytes -= size
	}
	d.memoryStats.activeBuffers--
}
