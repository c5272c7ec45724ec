package codec

import "github.com/scigolib/iospace/internal/device"

// readGeneral handles any read that isn't byte-aligned on both ends: the
// accessed span is between 1 and 9 bytes. The case arms below mirror the
// original ios_read_int_common implementation one-for-one, rather than a
// hand-derived generalization, so that correctness tracks the upstream
// bit-twiddling instead of a fresh derivation.
func readGeneral(dev device.Device, offset int64, bitWidth int, endian Endian) (uint64, device.Code) {
	f := int(offset % 8)
	firstByteBits := 8 - f
	bytesMinus1 := (bitWidth - firstByteBits + 7) / 8
	lastByteBits := (bitWidth + f) % 8
	if lastByteBits == 0 {
		lastByteBits = 8
	}

	var c [9]byte
	n := bytesMinus1 + 1
	if code := dev.Pread(c[:n], device.ByteOffset(offset/8)); code != device.OK {
		return 0, code
	}
	c[0] = maskLSB(c[0], firstByteBits)

	switch bytesMinus1 {
	case 0:
		return uint64(c[0]) >> uint(8-lastByteBits), device.OK

	case 1:
		c[1] = maskMSB(c[1], lastByteBits)
		if endian == MSB {
			return uint64(c[0])<<uint(lastByteBits) | uint64(c[1])>>uint(8-lastByteBits), device.OK
		}
		if bitWidth <= 8 {
			return uint64(c[0])<<uint(lastByteBits) | uint64(c[1])>>uint(8-lastByteBits), device.OK
		}
		if f == 0 {
			return uint64(c[1])<<uint(lastByteBits) | uint64(c[0]), device.OK
		}
		reg := uint64(c[0])<<uint(8+f) | uint64(c[1])<<uint(f)
		return (reg&0xff)<<uint(bitWidth%8) | reg>>8, device.OK

	case 2:
		c[2] = maskMSB(c[2], lastByteBits)
		if endian == MSB {
			return uint64(c[0])<<uint(8+lastByteBits) | uint64(c[1])<<uint(lastByteBits) | uint64(c[2])>>uint(8-lastByteBits), device.OK
		}
		if f == 0 {
			return uint64(c[2])<<uint(8+lastByteBits) | uint64(c[1])<<8 | uint64(c[0]), device.OK
		}
		reg := uint64(c[0])<<uint(56+f) | uint64(c[1])<<uint(48+f) | uint64(c[2])<<uint(40+f)
		if bitWidth <= 16 {
			reg = (reg&0x00ff000000000000)>>uint(16-bitWidth) | (reg & 0xff00ffffffffffff)
		} else {
			reg = (reg&0x0000ff0000000000)>>uint(24-bitWidth) | (reg & 0xffff00ffffffffff)
		}
		return bswap64(reg), device.OK

	case 3:
		c[3] = maskMSB(c[3], lastByteBits)
		if endian == MSB {
			return uint64(c[0])<<uint(16+lastByteBits) | uint64(c[1])<<uint(8+lastByteBits) | uint64(c[2])<<uint(lastByteBits) | uint64(c[3])>>uint(8-lastByteBits), device.OK
		}
		if f == 0 {
			return uint64(c[3])<<uint(16+lastByteBits) | uint64(c[2])<<16 | uint64(c[1])<<8 | uint64(c[0]), device.OK
		}
		reg := uint64(c[0])<<uint(56+f) | uint64(c[1])<<uint(48+f) | uint64(c[2])<<uint(40+f) | uint64(c[3])<<uint(32+f)
		if bitWidth <= 24 {
			reg = (reg&0x0000ff0000000000)>>uint(24-bitWidth) | (reg & 0xffff00ffffffffff)
		} else {
			reg = (reg&0x000000ff00000000)>>uint(32-bitWidth) | (reg & 0xffffff00ffffffff)
		}
		return bswap64(reg), device.OK

	case 4:
		c[4] = maskMSB(c[4], lastByteBits)
		if endian == MSB {
			return uint64(c[0])<<uint(24+lastByteBits) | uint64(c[1])<<uint(16+lastByteBits) | uint64(c[2])<<uint(8+lastByteBits) | uint64(c[3])<<uint(lastByteBits) | uint64(c[4])>>uint(8-lastByteBits), device.OK
		}
		if f == 0 {
			return uint64(c[4])<<uint(24+lastByteBits) | uint64(c[3])<<24 | uint64(c[2])<<16 | uint64(c[1])<<8 | uint64(c[0]), device.OK
		}
		reg := uint64(c[0])<<uint(56+f) | uint64(c[1])<<uint(48+f) | uint64(c[2])<<uint(40+f) | uint64(c[3])<<uint(32+f) | uint64(c[4])<<uint(24+f)
		if bitWidth <= 32 {
			reg = (reg&0x000000ff00000000)>>uint(32-bitWidth) | (reg & 0xffffff00ffffffff)
		} else {
			reg = (reg&0x00000000ff000000)>>uint(40-bitWidth) | (reg & 0xffffffff00ffffff)
		}
		return bswap64(reg), device.OK

	case 5:
		c[5] = maskMSB(c[5], lastByteBits)
		if endian == MSB {
			return uint64(c[0])<<uint(32+lastByteBits) | uint64(c[1])<<uint(24+lastByteBits) | uint64(c[2])<<uint(16+lastByteBits) | uint64(c[3])<<uint(8+lastByteBits) | uint64(c[4])<<uint(lastByteBits) | uint64(c[5])>>uint(8-lastByteBits), device.OK
		}
		if f == 0 {
			return uint64(c[5])<<uint(32+lastByteBits) | uint64(c[4])<<32 | uint64(c[3])<<24 | uint64(c[2])<<16 | uint64(c[1])<<8 | uint64(c[0]), device.OK
		}
		reg := uint64(c[0])<<uint(56+f) | uint64(c[1])<<uint(48+f) | uint64(c[2])<<uint(40+f) | uint64(c[3])<<uint(32+f) | uint64(c[4])<<uint(24+f) | uint64(c[5])<<uint(16+f)
		if bitWidth <= 40 {
			reg = (reg&0x00000000ff000000)>>uint(40-bitWidth) | (reg & 0xffffffff00ffffff)
		} else {
			reg = (reg&0x0000000000ff0000)>>uint(48-bitWidth) | (reg & 0xffffffffff00ffff)
		}
		return bswap64(reg), device.OK

	case 6:
		c[6] = maskMSB(c[6], lastByteBits)
		if endian == MSB {
			return uint64(c[0])<<uint(40+lastByteBits) | uint64(c[1])<<uint(32+lastByteBits) | uint64(c[2])<<uint(24+lastByteBits) | uint64(c[3])<<uint(16+lastByteBits) | uint64(c[4])<<uint(8+lastByteBits) | uint64(c[5])<<uint(lastByteBits) | uint64(c[6])>>uint(8-lastByteBits), device.OK
		}
		if f == 0 {
			return uint64(c[6])<<uint(40+lastByteBits) | uint64(c[5])<<40 | uint64(c[4])<<32 | uint64(c[3])<<24 | uint64(c[2])<<16 | uint64(c[1])<<8 | uint64(c[0]), device.OK
		}
		reg := uint64(c[0])<<uint(56+f) | uint64(c[1])<<uint(48+f) | uint64(c[2])<<uint(40+f) | uint64(c[3])<<uint(32+f) | uint64(c[4])<<uint(24+f) | uint64(c[5])<<uint(16+f) | uint64(c[6])<<uint(8+f)
		if bitWidth <= 48 {
			reg = (reg&0x0000000000ff0000)>>uint(48-bitWidth) | (reg & 0xffffffffff00ffff)
		} else {
			reg = (reg&0x000000000000ff00)>>uint(56-bitWidth) | (reg & 0xffffffffffff00ff)
		}
		return bswap64(reg), device.OK

	case 7:
		c[7] = maskMSB(c[7], lastByteBits)
		if endian == MSB {
			return uint64(c[0])<<uint(48+lastByteBits) | uint64(c[1])<<uint(40+lastByteBits) | uint64(c[2])<<uint(32+lastByteBits) | uint64(c[3])<<uint(24+lastByteBits) | uint64(c[4])<<uint(16+lastByteBits) | uint64(c[5])<<uint(8+lastByteBits) | uint64(c[6])<<uint(lastByteBits) | uint64(c[7])>>uint(8-lastByteBits), device.OK
		}
		if f == 0 {
			return uint64(c[7])<<uint(48+lastByteBits) | uint64(c[6])<<48 | uint64(c[5])<<40 | uint64(c[4])<<32 | uint64(c[3])<<24 | uint64(c[2])<<16 | uint64(c[1])<<8 | uint64(c[0]), device.OK
		}
		reg := uint64(c[0])<<uint(56+f) | uint64(c[1])<<uint(48+f) | uint64(c[2])<<uint(40+f) | uint64(c[3])<<uint(32+f) | uint64(c[4])<<uint(24+f) | uint64(c[5])<<uint(16+f) | uint64(c[6])<<uint(8+f) | uint64(c[7])<<uint(f)
		if bitWidth <= 56 {
			reg = (reg&0x000000000000ff00)>>uint(56-bitWidth) | (reg & 0xffffffffffff00ff)
		} else {
			reg = (reg&0x00000000000000ff)>>uint(64-bitWidth) | (reg & 0xffffffffffffff00)
		}
		return bswap64(reg), device.OK

	case 8:
		c[8] = maskMSB(c[8], lastByteBits)
		if endian == MSB {
			return uint64(c[0])<<uint(56+lastByteBits) | uint64(c[1])<<uint(48+lastByteBits) | uint64(c[2])<<uint(40+lastByteBits) | uint64(c[3])<<uint(32+lastByteBits) | uint64(c[4])<<uint(24+lastByteBits) | uint64(c[5])<<uint(16+lastByteBits) | uint64(c[6])<<uint(8+lastByteBits) | uint64(c[7])<<uint(lastByteBits) | uint64(c[8])>>uint(8-lastByteBits), device.OK
		}
		reg := uint64(c[0])<<uint(56+f) | uint64(c[1])<<uint(48+f) | uint64(c[2])<<uint(40+f) | uint64(c[3])<<uint(32+f) | uint64(c[4])<<uint(24+f) | uint64(c[5])<<uint(16+f) | uint64(c[6])<<uint(8+f) | uint64(c[7])<<uint(f) | uint64(c[8])>>uint(firstByteBits)
		reg = (reg&0xff)>>uint(64-bitWidth) | (reg & 0xffffffffffffff00)
		return bswap64(reg), device.OK

	default:
		panic("iospace/internal/codec: impossible byte span")
	}
}
