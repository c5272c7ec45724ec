// Package codec implements the bit-level read/write routines: signed and
// unsigned integers of 1 to 64 bits and NUL-terminated strings, at
// arbitrary bit offsets, over a device.Device.
package codec

import (
	"math/bits"

	"github.com/scigolib/iospace/internal/device"
	"github.com/scigolib/iospace/internal/utils"
)

// Endian selects bit significance order within a multi-byte span.
type Endian int

const (
	LSB Endian = iota
	MSB
)

// ReadUint reads an unsigned integer of the given bit width (1..64) at
// the given bit offset.
func ReadUint(dev device.Device, offset int64, bits int, endian Endian) (uint64, device.Code) {
	if offset < 0 {
		return 0, device.EOF
	}
	if offset%8 == 0 && bits%8 == 0 {
		n := bits / 8
		c := make([]byte, n)
		if code := dev.Pread(c, device.ByteOffset(offset/8)); code != device.OK {
			return 0, code
		}
		return assembleAligned(c, endian), device.OK
	}
	return readGeneral(dev, offset, bits, endian)
}

// ReadInt reads a signed, two's-complement integer of the given bit
// width (1..64) at the given bit offset.
func ReadInt(dev device.Device, offset int64, bitWidth int, endian Endian) (int64, device.Code) {
	v, code := ReadUint(dev, offset, bitWidth, endian)
	if code != device.OK {
		return 0, code
	}
	if bitWidth >= 64 {
		return int64(v), device.OK
	}
	unused := uint(64 - bitWidth)
	return int64(v<<unused) >> unused, device.OK
}

// WriteUint writes an unsigned integer of the given bit width (1..64) at
// the given bit offset, preserving the surrounding bits of any partially
// touched byte.
func WriteUint(dev device.Device, offset int64, bitWidth int, endian Endian, value uint64) device.Code {
	if offset < 0 {
		return device.EOF
	}
	if offset%8 == 0 && bitWidth%8 == 0 {
		n := bitWidth / 8
		c := disassembleAligned(value, n, endian)
		return dev.Pwrite(c, device.ByteOffset(offset/8))
	}
	return writeGeneral(dev, offset, bitWidth, endian, value)
}

// WriteInt writes a signed, two's-complement integer of the given bit
// width (1..64) at the given bit offset.
func WriteInt(dev device.Device, offset int64, bitWidth int, endian Endian, value int64) device.Code {
	if bitWidth >= 64 {
		return WriteUint(dev, offset, bitWidth, endian, uint64(value))
	}
	unused := uint(64 - bitWidth)
	uv := uint64(value<<unused) >> unused
	return WriteUint(dev, offset, bitWidth, endian, uv)
}

func assembleAligned(c []byte, endian Endian) uint64 {
	var v uint64
	n := len(c)
	for i := 0; i < n; i++ {
		shift := 8 * i
		if endian == MSB {
			shift = 8 * (n - 1 - i)
		}
		v |= uint64(c[i]) << shift
	}
	return v
}

func disassembleAligned(v uint64, n int, endian Endian) []byte {
	c := make([]byte, n)
	for i := 0; i < n; i++ {
		shift := 8 * i
		if endian == MSB {
			shift = 8 * (n - 1 - i)
		}
		c[i] = byte(v >> shift)
	}
	return c
}

func maskLSB(b byte, keep int) byte {
	if keep <= 0 {
		return 0
	}
	if keep >= 8 {
		return b
	}
	return b & (0xff >> uint(8-keep))
}

func maskMSB(b byte, keep int) byte {
	if keep <= 0 {
		return 0
	}
	if keep >= 8 {
		return b
	}
	return b & (0xff << uint(8-keep))
}

// bswap64 reverses the byte order of v's 64-bit representation, the way
// the original implementation's __bswap_64 call does when reassembling a
// little-endian value from a big-endian-built register.
func bswap64(v uint64) uint64 { return bits.ReverseBytes64(v) }

// ReadString reads a NUL-terminated string at the given bit offset,
// returning the bytes read including the terminating NUL.
func ReadString(dev device.Device, offset int64) ([]byte, device.Code) {
	if offset%8 == 0 {
		return readStringAligned(dev, device.ByteOffset(offset/8))
	}
	return readStringUnaligned(dev, offset)
}

func readStringAligned(dev device.Device, offset device.ByteOffset) ([]byte, device.Code) {
	buf := utils.GetBuffer(128)
	defer utils.ReleaseBuffer(buf)

	n := 0
	for {
		if n == len(buf) {
			grown := utils.GetBuffer(len(buf) + 128)
			copy(grown, buf)
			utils.ReleaseBuffer(buf)
			buf = grown
		}
		var b [1]byte
		if code := dev.Pread(b[:], offset+device.ByteOffset(n)); code != device.OK {
			return nil, code
		}
		buf[n] = b[0]
		n++
		if b[0] == 0 {
			out := make([]byte, n)
			copy(out, buf[:n])
			return out, device.OK
		}
	}
}

func readStringUnaligned(dev device.Device, offset int64) ([]byte, device.Code) {
	var out []byte
	for {
		v, code := ReadUint(dev, offset, 8, MSB)
		if code != device.OK {
			return nil, code
		}
		out = append(out, byte(v))
		offset += 8
		if v == 0 {
			return out, device.OK
		}
	}
}

// WriteString writes value, including its terminating NUL, at the given
// bit offset. value must already include the trailing NUL byte.
func WriteString(dev device.Device, offset int64, value []byte) device.Code {
	if offset%8 == 0 {
		return dev.Pwrite(value, device.ByteOffset(offset/8))
	}
	for _, b := range value {
		if code := WriteUint(dev, offset, 8, MSB, uint64(b)); code != device.OK {
			return code
		}
		offset += 8
	}
	return device.OK
}
