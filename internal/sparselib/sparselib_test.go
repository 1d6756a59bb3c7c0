package sparselib

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lattice-ml/lattice/internal/device"
)

type fakeConverter struct{}

func (fakeConverter) CompressedToHyb(dev *device.Device, rowPtr, colInd, val *device.Buffer,
	rows, cols, nnz int, s *device.Stream) (*Handle, error) {
	return NewHandle(dev, nil, "fake"), nil
}

func (fakeConverter) HybToCompressed(h *Handle, s *device.Stream) (rowPtr, colInd, val *device.Buffer, err error) {
	return nil, nil, nil, nil
}

func TestConverterRegistration(t *testing.T) {
	t.Cleanup(func() { RegisterConverter(nil) })

	RegisterConverter(nil)
	_, err := GetConverter()
	assert.True(t, errors.Is(err, ErrNoConverter))

	RegisterConverter(fakeConverter{})
	c, err := GetConverter()
	assert.NoError(t, err)
	assert.NotNil(t, c)
}

func TestHandleDestroyIdempotent(t *testing.T) {
	h := NewHandle(nil, nil, "payload")
	assert.False(t, h.Destroyed())
	assert.Equal(t, "payload", h.Payload())

	h.Destroy()
	assert.True(t, h.Destroyed())
	assert.Nil(t, h.Payload())

	// A second Destroy, as happens when two aliased containers are both
	// freed, must be a no-op.
	h.Destroy()
	assert.True(t, h.Destroyed())
}
