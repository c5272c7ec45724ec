// Package file implements the regular-file IO device backend.
package file

import (
	"os"
	"strings"

	"github.com/scigolib/iospace/internal/device"
)

const safeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789/+_-"

// Dev is a regular-file device, using ReadAt/WriteAt rather than a seek
// cursor so concurrent callers never race on file position.
type Dev struct {
	f     *os.File
	flags device.Flags
}

type backend struct{}

// Backend is the file device backend. It recognizes any handler, since it
// is always tried last by the registry.
var Backend backend

func (backend) Recognize(handler string, _ device.Flags) (string, bool) {
	if handler == "" || strings.HasPrefix(handler, "/") || isSafe(handler) {
		return handler, true
	}
	return "./" + handler, true
}

func isSafe(handler string) bool {
	for i := 0; i < len(handler); i++ {
		if strings.IndexByte(safeChars, handler[i]) < 0 {
			return false
		}
	}
	return true
}

func (backend) Open(handler string, flags device.Flags) (device.Device, device.Code) {
	mode := flags.Mode()

	if mode == 0 {
		f, err := os.OpenFile(handler, os.O_RDWR, 0o644)
		if err == nil {
			return &Dev{f: f, flags: device.ModeRead | device.ModeWrite}, device.OK
		}
		f, err = os.OpenFile(handler, os.O_RDONLY, 0o644)
		if err != nil {
			return nil, device.ErrGeneric
		}
		return &Dev{f: f, flags: device.ModeRead}, device.OK
	}

	var osFlags int
	switch mode {
	case device.ModeRead:
		osFlags = os.O_RDONLY
	case device.ModeWrite | device.ModeCreate | device.ModeTruncate:
		osFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case device.ModeRead | device.ModeWrite:
		osFlags = os.O_RDWR
	case device.ModeRead | device.ModeWrite | device.ModeCreate | device.ModeTruncate:
		osFlags = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	default:
		return nil, device.EInvalid
	}

	f, err := os.OpenFile(handler, osFlags, 0o644)
	if err != nil {
		return nil, device.ErrGeneric
	}
	return &Dev{f: f, flags: flags}, device.OK
}

// Close closes the underlying file.
func (d *Dev) Close() bool { return d.f.Close() == nil }

// Flags returns the flags the device was opened with.
func (d *Dev) Flags() device.Flags { return d.flags }

// Size returns the current file size in bytes.
func (d *Dev) Size() uint64 {
	fi, err := d.f.Stat()
	if err != nil {
		return 0
	}
	return uint64(fi.Size())
}

// Pread reads len(buf) bytes at offset. A short read is reported as EOF.
func (d *Dev) Pread(buf []byte, offset device.ByteOffset) device.Code {
	n, err := d.f.ReadAt(buf, int64(offset))
	if n < len(buf) || err != nil {
		return device.EOF
	}
	return device.OK
}

// Pwrite writes buf at offset. A short write is reported as EOF.
func (d *Dev) Pwrite(buf []byte, offset device.ByteOffset) device.Code {
	n, err := d.f.WriteAt(buf, int64(offset))
	if n < len(buf) || err != nil {
		return device.EOF
	}
	return device.OK
}

// Flush syncs the file to its backing storage.
func (d *Dev) Flush(device.ByteOffset) error { return d.f.Sync() }
