package device

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

const (
	// Size thresholds for pool classes.
	smallClassLimit  = 4 * 1024    // 4KB
	mediumClassLimit = 1024 * 1024 // 1MB

	// Max buffers retained per class.
	maxPooledPerClass = 100
)

// bufferClass groups buffers by size for reuse.
type bufferClass int

const (
	classSmall bufferClass = iota
	classMedium
	classLarge
)

func classify(size uint64) bufferClass {
	switch {
	case size < smallClassLimit:
		return classSmall
	case size < mediumClassLimit:
		return classMedium
	default:
		return classLarge
	}
}

// pooledBuffer is a released buffer waiting for reuse.
type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
	usage  wgpu.BufferUsage
}

// BufferPool reuses device buffers to reduce allocation overhead.
// Sparse containers allocate many same-sized structural buffers, which
// makes pooling by size class effective.
type BufferPool struct {
	device *wgpu.Device

	mu     sync.Mutex
	free   map[bufferClass][]pooledBuffer
	hits   uint64
	misses uint64
}

// NewBufferPool creates a buffer pool for the given device.
func NewBufferPool(device *wgpu.Device) *BufferPool {
	return &BufferPool{
		device: device,
		free:   make(map[bufferClass][]pooledBuffer, 3),
	}
}

// Acquire returns a pooled buffer that fits size and usage, or creates one.
// The second result is the buffer's true allocated capacity, which may
// exceed size for a reused buffer; callers must hand it back to Release.
func (p *BufferPool) Acquire(size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	class := classify(size)
	pool := p.free[class]
	for i, pb := range pool {
		if pb.size >= size && pb.usage&usage == usage {
			p.free[class] = append(pool[:i], pool[i+1:]...)
			p.hits++
			return pb.buffer, pb.size
		}
	}

	p.misses++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  size,
	}), size
}

// Release returns a buffer to the pool, or frees it if the class is full.
func (p *BufferPool) Release(buffer *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	class := classify(size)
	if len(p.free[class]) >= maxPooledPerClass {
		buffer.Release()
		return
	}
	p.free[class] = append(p.free[class], pooledBuffer{buffer: buffer, size: size, usage: usage})
}

// Clear frees every pooled buffer. Called when the device is released.
func (p *BufferPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for class, pool := range p.free {
		for _, pb := range pool {
			pb.buffer.Release()
		}
		p.free[class] = nil
	}
}

// Stats returns pool hit/miss counts and the number of pooled buffers.
func (p *BufferPool) Stats() (hits, misses uint64, pooledCount int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pool := range p.free {
		pooledCount += len(pool)
	}
	return p.hits, p.misses, pooledCount
}
