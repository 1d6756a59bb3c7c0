package device

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
)

// storageUsage is the usage every container buffer is created with:
// bindable as storage and copyable in both directions.
const storageUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// alignSize rounds a byte length up to WebGPU's 4-byte copy alignment,
// with a floor of 4 bytes for zero-length buffers.
func alignSize(byteLen int) uint64 {
	size := uint64(byteLen) //nolint:gosec // G115: buffer sizes are non-negative
	if size < 4 {
		size = 4
	}
	return (size + 3) &^ 3
}

// Buffer is a contiguous device-resident memory region, exclusively owned
// by its holder unless explicitly aliased.
type Buffer struct {
	buf      *wgpu.Buffer
	byteLen  int    // logical length in bytes
	size     uint64 // requested size (copy-aligned)
	capacity uint64 // true allocated size, >= size for a pool reuse
	dev      *Device
}

// Alloc allocates an uninitialized device buffer of byteLen bytes.
// The buffer may come from the device's pool.
func (d *Device) Alloc(byteLen int) *Buffer {
	size := alignSize(byteLen)

	buf, capacity := d.pool.Acquire(size, storageUsage)
	d.trackAllocation(capacity)

	return &Buffer{
		buf:      buf,
		byteLen:  byteLen,
		size:     size,
		capacity: capacity,
		dev:      d,
	}
}

// Upload allocates a device buffer and fills it with data from the host.
// The upload happens through a mapped-at-creation buffer and is complete
// when Upload returns regardless of stream; any work pending on s is
// flushed first so the new buffer is ordered after it.
func (d *Device) Upload(data []byte, s *Stream) *Buffer {
	if s != nil {
		s.Flush()
	}

	size := alignSize(len(data))

	buf := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            storageUsage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buf.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buf.Unmap()

	d.trackAllocation(size)

	return &Buffer{
		buf:      buf,
		byteLen:  len(data),
		size:     size,
		capacity: size,
		dev:      d,
	}
}

// ByteLen returns the logical length of the buffer in bytes.
func (b *Buffer) ByteLen() int {
	return b.byteLen
}

// Device returns the device this buffer is resident on.
func (b *Buffer) Device() *Device {
	return b.dev
}

// Download reads the buffer's contents back to host memory.
// Any work pending on s is flushed first; Download itself blocks until the
// data is on the host. Uses a staging buffer since storage buffers can't be
// mapped directly.
func (b *Buffer) Download(s *Stream) ([]byte, error) {
	if s != nil {
		s.Flush()
	}

	d := b.dev

	staging := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  b.size,
	})
	defer staging.Release()

	encoder := d.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(b.buf, 0, staging, 0, b.size)
	cmdBuffer := encoder.Finish(nil)
	d.queue.Submit(cmdBuffer)

	err := staging.MapAsync(d.device, wgpu.MapModeRead, 0, b.size)
	if err != nil {
		return nil, fmt.Errorf("device: failed to map staging buffer: %w", err)
	}

	mappedPtr := staging.GetMappedRange(0, b.size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), b.size)
	result := make([]byte, b.byteLen)
	copy(result, mappedSlice[:b.byteLen])

	staging.Unmap()

	return result, nil
}

// CopyFrom overwrites this buffer with the contents of src via a
// device-to-device copy. Both buffers must have the same logical length and
// live on the same device.
//
// With a nil stream the copy is submitted to the device queue immediately;
// queue ordering makes it visible to later downloads. With a stream the copy
// is only enqueued and the caller must Flush or Sync the stream.
func (b *Buffer) CopyFrom(src *Buffer, s *Stream) error {
	if src.byteLen != b.byteLen {
		return fmt.Errorf("device: copy length mismatch: dst %d bytes, src %d bytes", b.byteLen, src.byteLen)
	}
	if src.dev != b.dev {
		return fmt.Errorf("device: cross-device copy not supported (dst device %d, src device %d)", b.dev.id, src.dev.id)
	}

	d := b.dev
	encoder := d.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src.buf, 0, b.buf, 0, b.size)
	cmdBuffer := encoder.Finish(nil)

	if s != nil {
		s.enqueue(cmdBuffer)
		return nil
	}
	d.queue.Submit(cmdBuffer)
	return nil
}

// Clone allocates a new buffer of the same length and copies this buffer's
// contents into it.
func (b *Buffer) Clone(s *Stream) *Buffer {
	dst := b.dev.Alloc(b.byteLen)
	// Lengths match by construction; CopyFrom cannot fail here.
	_ = dst.CopyFrom(b, s)
	return dst
}

// Free releases the buffer back to the device pool.
// Free is idempotent; using the buffer after Free is invalid.
func (b *Buffer) Free() {
	if b.buf == nil {
		return
	}
	b.dev.pool.Release(b.buf, b.capacity, storageUsage)
	b.dev.trackRelease(b.capacity)
	b.buf = nil
}
