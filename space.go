package iospace

import "github.com/scigolib/iospace/internal/device"

// Offset is a signed bit offset into a space. Read and write calls add
// the space's bias to it before accessing the device.
type Offset int64

// ByteOffset is a byte offset into a device.
type ByteOffset = device.ByteOffset

// Space is one open IO space: a device plus the bookkeeping the
// registry needs to search, iterate, and bias it.
type Space struct {
	id      int
	handler string
	dev     device.Device
	bias    Offset
	logger  Logger
	next    *Space
}

// ID returns the space's identifier, assigned in increasing order as
// spaces are opened.
func (s *Space) ID() int { return s.id }

// Handler returns the (normalized) handler the space was opened with.
func (s *Space) Handler() string { return s.handler }

// Flags returns the flags the space's device was opened with.
func (s *Space) Flags() Flags { return s.dev.Flags() }

// Size returns the space's size in bits.
func (s *Space) Size() uint64 { return s.dev.Size() * 8 }

// Bias returns the currently configured bit bias.
func (s *Space) Bias() Offset { return s.bias }

// SetBias sets the bit bias added to every offset passed to a read or
// write call.
func (s *Space) SetBias(bias Offset) { s.bias = bias }

// Flush passes an explicit flush through to the underlying device.
func (s *Space) Flush(offset Offset) error {
	return s.dev.Flush(device.ByteOffset(offset / 8))
}

// close releases the space's device. Failures are logged, not returned,
// matching the best-effort close behavior of the original implementation.
func (s *Space) close() {
	if !s.dev.Close() && s.logger != nil {
		s.logger.Printf("iospace: close %s (id %d) failed", s.handler, s.id)
	}
}
