package iospace

import (
	"fmt"

	"github.com/scigolib/iospace/internal/codec"
	"github.com/scigolib/iospace/internal/device"
)

func toCodecEndian(e Endian) codec.Endian {
	if e == MSB {
		return codec.MSB
	}
	return codec.LSB
}

func checkBits(op string, bitWidth int) error {
	if bitWidth < 1 || bitWidth > 64 {
		return newError(op, ErrGeneric, fmt.Errorf("bit width %d out of range [1,64]", bitWidth))
	}
	return nil
}

func fromDeviceCode(op string, code device.Code) error {
	switch code {
	case device.OK:
		return nil
	case device.EOF:
		return newError(op, ErrOffset, nil)
	case device.EInvalid:
		return newError(op, ErrFlags, nil)
	default:
		return newError(op, ErrGeneric, nil)
	}
}

func (s *Space) biased(offset Offset) int64 { return int64(offset) + int64(s.bias) }

// ReadUint reads an unsigned integer of bitWidth bits (1..64) at offset,
// in the given endianness.
func (s *Space) ReadUint(offset Offset, bitWidth int, endian Endian, _ AccessFlags) (uint64, error) {
	if err := checkBits("ReadUint", bitWidth); err != nil {
		return 0, err
	}
	v, code := codec.ReadUint(s.dev, s.biased(offset), bitWidth, toCodecEndian(endian))
	if code != device.OK {
		return 0, fromDeviceCode("ReadUint", code)
	}
	return v, nil
}

// ReadInt reads a signed integer of bitWidth bits (1..64) at offset, in
// the given endianness and negative encoding. Only TwosComplement is
// implemented; OnesComplement is rejected with ErrFlags.
func (s *Space) ReadInt(offset Offset, bitWidth int, endian Endian, nenc NegEncoding, _ AccessFlags) (int64, error) {
	if err := checkBits("ReadInt", bitWidth); err != nil {
		return 0, err
	}
	if nenc != TwosComplement {
		return 0, newError("ReadInt", ErrFlags, fmt.Errorf("negative encoding %d not implemented", nenc))
	}
	v, code := codec.ReadInt(s.dev, s.biased(offset), bitWidth, toCodecEndian(endian))
	if code != device.OK {
		return 0, fromDeviceCode("ReadInt", code)
	}
	return v, nil
}

// WriteUint writes an unsigned integer of bitWidth bits (1..64) at
// offset, in the given endianness, preserving the surrounding bits of
// any partially touched byte.
func (s *Space) WriteUint(offset Offset, bitWidth int, endian Endian, _ AccessFlags, value uint64) error {
	if err := checkBits("WriteUint", bitWidth); err != nil {
		return err
	}
	code := codec.WriteUint(s.dev, s.biased(offset), bitWidth, toCodecEndian(endian), value)
	return fromDeviceCode("WriteUint", code)
}

// WriteInt writes a signed integer of bitWidth bits (1..64) at offset, in
// the given endianness and negative encoding.
func (s *Space) WriteInt(offset Offset, bitWidth int, endian Endian, nenc NegEncoding, _ AccessFlags, value int64) error {
	if err := checkBits("WriteInt", bitWidth); err != nil {
		return err
	}
	if nenc != TwosComplement {
		return newError("WriteInt", ErrFlags, fmt.Errorf("negative encoding %d not implemented", nenc))
	}
	code := codec.WriteInt(s.dev, s.biased(offset), bitWidth, toCodecEndian(endian), value)
	return fromDeviceCode("WriteInt", code)
}

// ReadString reads a NUL-terminated string at offset, returning it
// without the terminating NUL.
func (s *Space) ReadString(offset Offset, _ AccessFlags) (string, error) {
	b, code := codec.ReadString(s.dev, s.biased(offset))
	if code != device.OK {
		return "", fromDeviceCode("ReadString", code)
	}
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}
	return string(b), nil
}

// WriteString writes value, appending a terminating NUL, at offset.
func (s *Space) WriteString(offset Offset, _ AccessFlags, value string) error {
	b := append([]byte(value), 0)
	code := codec.WriteString(s.dev, s.biased(offset), b)
	return fromDeviceCode("WriteString", code)
}
