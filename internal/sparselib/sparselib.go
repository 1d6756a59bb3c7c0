// Package sparselib is the boundary to the device-vendor sparse algebra
// library. Format conversions (CSC/CSR/BSR/HYB) and all sparse arithmetic
// belong to the vendor; this package only defines the opaque handles the
// vendor hands back and the plug-point for a vendor implementation.
package sparselib

import (
	"errors"
	"sync"

	"github.com/lattice-ml/lattice/internal/device"
)

// ErrNoConverter is returned when a format conversion is requested but no
// vendor converter has been registered.
var ErrNoConverter = errors.New("sparselib: no vendor converter registered")

// Handle is an opaque vendor-managed sparse representation. Callers cannot
// inspect its payload; they only store it, forward it, and destroy it.
type Handle struct {
	mu      sync.Mutex
	bufs    []*device.Buffer
	payload any
	dev     *device.Device
}

// NewHandle wraps the device buffers (and any vendor-private payload) a
// conversion routine produced. The handle takes ownership of the buffers.
func NewHandle(dev *device.Device, bufs []*device.Buffer, payload any) *Handle {
	return &Handle{bufs: bufs, payload: payload, dev: dev}
}

// Device returns the device the handle's payload lives on.
func (h *Handle) Device() *device.Device {
	return h.dev
}

// Payload returns the vendor-private payload. Vendor use only.
func (h *Handle) Payload() any {
	return h.payload
}

// Destroy releases the handle's device resources through the owning
// device. Destroy is idempotent: a handle aliased onto several containers
// is released exactly once.
func (h *Handle) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, b := range h.bufs {
		b.Free()
	}
	h.bufs = nil
	h.payload = nil
}

// Destroyed reports whether the handle's resources have been released.
func (h *Handle) Destroyed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bufs == nil && h.payload == nil
}

// Converter is the vendor conversion surface. A vendor implementation
// turns compressed device buffers into its opaque hybrid representation
// and back; the container layer never does this itself.
type Converter interface {
	// CompressedToHyb builds an opaque hybrid handle from CSR buffers.
	CompressedToHyb(dev *device.Device, rowPtr, colInd, val *device.Buffer,
		rows, cols, nnz int, s *device.Stream) (*Handle, error)

	// HybToCompressed expands an opaque hybrid handle back into CSR
	// buffers owned by the caller.
	HybToCompressed(h *Handle, s *device.Stream) (rowPtr, colInd, val *device.Buffer, err error)
}

var (
	converterMu sync.RWMutex
	converter   Converter
)

// RegisterConverter installs the vendor conversion implementation.
func RegisterConverter(c Converter) {
	converterMu.Lock()
	defer converterMu.Unlock()
	converter = c
}

// GetConverter returns the registered vendor converter.
func GetConverter() (Converter, error) {
	converterMu.RLock()
	defer converterMu.RUnlock()
	if converter == nil {
		return nil, ErrNoConverter
	}
	return converter, nil
}
