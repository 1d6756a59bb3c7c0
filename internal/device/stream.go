package device

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// Stream is an ordered queue of device operations, allowing transfers to be
// scheduled asynchronously relative to work on other streams. Commands are
// accumulated and submitted together to reduce queue overhead.
//
// A Stream does not track completion. Callers must Sync before treating an
// enqueued transfer as finished.
type Stream struct {
	dev *Device

	mu      sync.Mutex
	pending []*wgpu.CommandBuffer
}

// NewStream creates a new execution stream on this device.
func (d *Device) NewStream() *Stream {
	return &Stream{dev: d}
}

// enqueue adds a command buffer to the stream's pending queue.
func (s *Stream) enqueue(cmdBuffer *wgpu.CommandBuffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, cmdBuffer)
}

// Flush submits all pending command buffers to the device queue.
// Submission is asynchronous; the GPU may still be executing when Flush
// returns.
func (s *Stream) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return
	}
	s.dev.queue.Submit(s.pending...)
	s.pending = s.pending[:0]
}

// Sync flushes the stream and blocks until all submitted work has completed
// on the device. Completion is observed by mapping a staging buffer, which
// the queue only services after earlier submissions have run.
func (s *Stream) Sync() error {
	s.Flush()

	d := s.dev
	staging := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  4,
	})
	defer staging.Release()

	if err := staging.MapAsync(d.device, wgpu.MapModeRead, 0, 4); err != nil {
		return err
	}
	staging.Unmap()
	return nil
}
