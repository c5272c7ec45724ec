// Package memory implements the in-process memory IO device backend.
package memory

import (
	"strings"

	"github.com/scigolib/iospace/internal/device"
)

// step is the growth increment in bytes: 512*8 = 4096.
const step = 512 * 8

// Dev is an in-memory device backed by a growable byte slice.
type Dev struct {
	buf   []byte
	flags device.Flags
}

type backend struct{}

// Backend is the memory device backend. A handler recognized by it looks
// like "*name*" — asterisk-delimited, same as the original implementation.
var Backend backend

func (backend) Recognize(handler string, _ device.Flags) (string, bool) {
	if len(handler) == 0 {
		return "", false
	}
	if strings.HasPrefix(handler, "*") && strings.HasSuffix(handler, "*") {
		return handler, true
	}
	return "", false
}

func (backend) Open(_ string, flags device.Flags) (device.Device, device.Code) {
	return &Dev{
		buf:   make([]byte, step),
		flags: flags,
	}, device.OK
}

// Close discards the buffer. It never fails.
func (d *Dev) Close() bool {
	d.buf = nil
	return true
}

// Flags returns the flags the device was opened with.
func (d *Dev) Flags() device.Flags { return d.flags }

// Size returns the current buffer size in bytes.
func (d *Dev) Size() uint64 { return uint64(len(d.buf)) }

// Pread reads len(buf) bytes starting at offset. Reading past the end of
// the buffer is reported as EOF.
func (d *Dev) Pread(buf []byte, offset device.ByteOffset) device.Code {
	end := uint64(offset) + uint64(len(buf))
	if end > uint64(len(d.buf)) {
		return device.EOF
	}
	copy(buf, d.buf[offset:end])
	return device.OK
}

// Pwrite writes buf starting at offset, growing the buffer by one step if
// the write reaches at most one step past the current size. A write that
// would need to grow by more than one step is reported as EOF, matching
// the original device's "no more than one step ahead" rule.
func (d *Dev) Pwrite(buf []byte, offset device.ByteOffset) device.Code {
	end := uint64(offset) + uint64(len(buf))
	size := uint64(len(d.buf))
	if end > size+step {
		return device.EOF
	}
	if end > size {
		grown := make([]byte, size+step)
		copy(grown, d.buf)
		d.buf = grown
	}
	copy(d.buf[offset:end], buf)
	return device.OK
}

// Flush is a no-op; the memory device has no backing store to sync.
func (d *Dev) Flush(device.ByteOffset) error { return nil }
