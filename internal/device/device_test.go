package device

import (
	"bytes"
	"testing"
)

func TestAlignSize(t *testing.T) {
	tests := []struct {
		byteLen int
		want    uint64
	}{
		{0, 4},
		{1, 4},
		{3, 4},
		{4, 4},
		{5, 8},
		{16, 16},
		{17, 20},
	}

	for _, tt := range tests {
		if got := alignSize(tt.byteLen); got != tt.want {
			t.Errorf("alignSize(%d) = %d, want %d", tt.byteLen, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		size uint64
		want bufferClass
	}{
		{16, classSmall},
		{smallClassLimit - 1, classSmall},
		{smallClassLimit, classMedium},
		{mediumClassLimit - 1, classMedium},
		{mediumClassLimit, classLarge},
		{16 * 1024 * 1024, classLarge},
	}

	for _, tt := range tests {
		if got := classify(tt.size); got != tt.want {
			t.Errorf("classify(%d) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

// TestPoolPreservesCapacity tests that reusing a pooled buffer for a
// smaller request does not shrink its recorded capacity.
func TestPoolPreservesCapacity(t *testing.T) {
	p := NewBufferPool(nil)
	p.Release(nil, 1024, storageUsage)

	buf, capacity := p.Acquire(256, storageUsage)
	if capacity != 1024 {
		t.Fatalf("Acquire capacity: got %d, want 1024", capacity)
	}
	p.Release(buf, capacity, storageUsage)

	// The buffer must still satisfy a full-size request after the round
	// trip through a smaller one.
	_, capacity = p.Acquire(1024, storageUsage)
	if capacity != 1024 {
		t.Errorf("re-acquire at full size: got capacity %d, want 1024", capacity)
	}

	hits, misses, _ := p.Stats()
	if hits != 2 || misses != 0 {
		t.Errorf("pool stats: hits=%d misses=%d, want 2, 0", hits, misses)
	}
}

// TestUploadDownloadRoundTrip tests host-to-device-to-host transfer.
func TestUploadDownloadRoundTrip(t *testing.T) {
	if !IsAvailable() {
		t.Skip("WebGPU not available")
	}

	dev, err := New()
	if err != nil {
		t.Fatalf("Failed to create device: %v", err)
	}
	defer dev.Release()

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	buf := dev.Upload(data, nil)
	defer buf.Free()

	if buf.ByteLen() != len(data) {
		t.Errorf("ByteLen: got %d, want %d", buf.ByteLen(), len(data))
	}

	got, err := buf.Download(nil)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip: got %v, want %v", got, data)
	}
}

// TestCopyFrom tests device-to-device buffer copies.
func TestCopyFrom(t *testing.T) {
	if !IsAvailable() {
		t.Skip("WebGPU not available")
	}

	dev, err := New()
	if err != nil {
		t.Fatalf("Failed to create device: %v", err)
	}
	defer dev.Release()

	src := dev.Upload([]byte{10, 20, 30, 40}, nil)
	defer src.Free()

	dst := dev.Alloc(4)
	defer dst.Free()

	if err := dst.CopyFrom(src, nil); err != nil {
		t.Fatalf("CopyFrom failed: %v", err)
	}

	got, err := dst.Download(nil)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	want := []byte{10, 20, 30, 40}
	if !bytes.Equal(got, want) {
		t.Errorf("CopyFrom result: got %v, want %v", got, want)
	}

	// Length mismatch must fail without touching dst.
	short := dev.Alloc(8)
	defer short.Free()
	if err := dst.CopyFrom(short, nil); err == nil {
		t.Error("CopyFrom with mismatched lengths should fail")
	}
}

// TestStreamOrdering tests that stream-enqueued copies land after Flush.
func TestStreamOrdering(t *testing.T) {
	if !IsAvailable() {
		t.Skip("WebGPU not available")
	}

	dev, err := New()
	if err != nil {
		t.Fatalf("Failed to create device: %v", err)
	}
	defer dev.Release()

	src := dev.Upload([]byte{1, 1, 1, 1}, nil)
	defer src.Free()
	dst := dev.Alloc(4)
	defer dst.Free()

	s := dev.NewStream()
	if err := dst.CopyFrom(src, s); err != nil {
		t.Fatalf("CopyFrom failed: %v", err)
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	got, err := dst.Download(nil)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 1, 1, 1}) {
		t.Errorf("stream copy: got %v", got)
	}
}

// TestMemoryStats tests allocation tracking.
func TestMemoryStats(t *testing.T) {
	if !IsAvailable() {
		t.Skip("WebGPU not available")
	}

	dev, err := New()
	if err != nil {
		t.Fatalf("Failed to create device: %v", err)
	}
	defer dev.Release()

	buf := dev.Alloc(1024)
	stats := dev.MemoryStats()
	if stats.ActiveBuffers != 1 {
		t.Errorf("ActiveBuffers: got %d, want 1", stats.ActiveBuffers)
	}
	if stats.TotalAllocatedBytes < 1024 {
		t.Errorf("TotalAllocatedBytes: got %d, want >= 1024", stats.TotalAllocatedBytes)
	}

	buf.Free()
	stats = dev.MemoryStats()
	if stats.ActiveBuffers != 0 {
		t.Errorf("ActiveBuffers after Free: got %d, want 0", stats.ActiveBuffers)
	}
}
