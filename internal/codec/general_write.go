package codec

import "github.com/scigolib/iospace/internal/device"

// writeGeneral handles any write that isn't byte-aligned on both ends,
// preserving the bits surrounding the touched span. It mirrors the
// original ios_write_int_common implementation's case arms one-for-one,
// for the same reason readGeneral does.
func writeGeneral(dev device.Device, offset int64, bitWidth int, endian Endian, value uint64) device.Code {
	f := int(offset % 8)
	firstByteBits := 8 - f
	bytesMinus1 := (bitWidth - firstByteBits + 7) / 8
	lastByteBits := (bitWidth + f) % 8
	if lastByteBits == 0 {
		lastByteBits = 8
	}
	base := device.ByteOffset(offset / 8)
	bw := bitWidth % 8
	if bw == 0 {
		bw = 8
	}

	switch bytesMinus1 {
	case 0:
		var head [1]byte
		if code := dev.Pread(head[:], base); code != device.OK {
			return code
		}
		h := maskMSB(head[0], f)
		t := maskLSB(head[0], 8-lastByteBits)
		c0 := h | t | byte(value<<uint(8-lastByteBits))
		return dev.Pwrite([]byte{c0}, base)

	case 1:
		var edges [2]byte
		if code := dev.Pread(edges[:], base); code != device.OK {
			return code
		}
		c0 := maskMSB(edges[0], f)
		c1 := maskLSB(edges[1], 8-lastByteBits)
		if endian == LSB && bitWidth > 8 {
			value = ((value & 0xff) << uint(bw)) | (value&0xff00)>>8
		}
		c0 |= byte(value >> uint(lastByteBits))
		c1 |= byte(value<<uint(8-lastByteBits)) & 0xff
		return dev.Pwrite([]byte{c0, c1}, base)

	case 2:
		var edges [3]byte
		if code := dev.Pread(edges[:1], base); code != device.OK {
			return code
		}
		if code := dev.Pread(edges[2:3], base+2); code != device.OK {
			return code
		}
		c0 := maskMSB(edges[0], f)
		c2 := maskLSB(edges[2], 8-lastByteBits)
		if endian == LSB {
			if bitWidth <= 16 {
				value = ((value & 0xff) << uint(bw)) | (value&0xff00)>>8
			} else {
				value = ((value & 0xff) << uint(8+bw)) | (value&0xff00)>>uint(8-bw) | (value&0xff0000)>>16
			}
		}
		c0 |= byte(value >> uint(8+lastByteBits))
		c1 := byte(value>>uint(lastByteBits)) & 0xff
		c2 |= byte(value<<uint(8-lastByteBits)) & 0xff
		return dev.Pwrite([]byte{c0, c1, c2}, base)

	case 3:
		var head, tail [1]byte
		if code := dev.Pread(head[:], base); code != device.OK {
			return code
		}
		if code := dev.Pread(tail[:], base+3); code != device.OK {
			return code
		}
		c0 := maskMSB(head[0], f)
		c3 := maskLSB(tail[0], 8-lastByteBits)
		if endian == LSB {
			if bitWidth <= 24 {
				value = ((value & 0xff) << uint(8+bw)) | (value&0xff00)>>uint(8-bw) | (value&0xff0000)>>16
			} else {
				value = ((value & 0xff) << uint(16+bw)) | (value&0xff00)<<uint(bw) | (value&0xff0000)>>uint(16-bw) | (value&0xff000000)>>24
			}
		}
		c0 |= byte(value >> uint(16+lastByteBits))
		c1 := byte(value>>uint(8+lastByteBits)) & 0xff
		c2 := byte(value>>uint(lastByteBits)) & 0xff
		c3 |= byte(value<<uint(8-lastByteBits)) & 0xff
		return dev.Pwrite([]byte{c0, c1, c2, c3}, base)

	case 4:
		var head, tail [1]byte
		if code := dev.Pread(head[:], base); code != device.OK {
			return code
		}
		if code := dev.Pread(tail[:], base+4); code != device.OK {
			return code
		}
		c0 := maskMSB(head[0], f)
		c4 := maskLSB(tail[0], 8-lastByteBits)
		if endian == LSB {
			if bitWidth <= 32 {
				value = ((value & 0xff) << uint(16+bw)) | (value&0xff00)<<uint(bw) | (value&0xff0000)>>uint(16-bw) | (value&0xff000000)>>24
			} else {
				value = ((value & 0xff) << uint(24+bw)) | (value&0xff00)<<uint(8+bw) | (value&0xff0000)>>uint(8-bw) | (value&0xff000000)>>uint(24-bw) | (value&0xff00000000)>>32
			}
		}
		c0 |= byte(value >> uint(24+lastByteBits))
		c1 := byte(value>>uint(16+lastByteBits)) & 0xff
		c2 := byte(value>>uint(8+lastByteBits)) & 0xff
		c3 := byte(value>>uint(lastByteBits)) & 0xff
		c4 |= byte(value<<uint(8-lastByteBits)) & 0xff
		return dev.Pwrite([]byte{c0, c1, c2, c3, c4}, base)

	case 5:
		var head, tail [1]byte
		if code := dev.Pread(head[:], base); code != device.OK {
			return code
		}
		if code := dev.Pread(tail[:], base+5); code != device.OK {
			return code
		}
		c0 := maskMSB(head[0], f)
		c5 := maskLSB(tail[0], 8-lastByteBits)
		if endian == LSB {
			if bitWidth <= 40 {
				value = ((value & 0xff) << uint(24+bw)) | (value&0xff00)<<uint(8+bw) | (value&0xff0000)>>uint(8-bw) | (value&0xff000000)>>uint(24-bw) | (value&0xff00000000)>>32
			} else {
				value = ((value & 0xff) << uint(32+bw)) | (value&0xff00)<<uint(16+bw) | (value&0xff0000)<<uint(bw) | (value&0xff000000)>>uint(16-bw) | (value&0xff00000000)>>uint(32-bw) | (value&0xff0000000000)>>40
			}
		}
		c0 |= byte(value >> uint(32+lastByteBits))
		c1 := byte(value>>uint(24+lastByteBits)) & 0xff
		c2 := byte(value>>uint(16+lastByteBits)) & 0xff
		c3 := byte(value>>uint(8+lastByteBits)) & 0xff
		c4 := byte(value>>uint(lastByteBits)) & 0xff
		c5 |= byte(value<<uint(8-lastByteBits)) & 0xff
		return dev.Pwrite([]byte{c0, c1, c2, c3, c4, c5}, base)

	case 6:
		var head, tail [1]byte
		if code := dev.Pread(head[:], base); code != device.OK {
			return code
		}
		if code := dev.Pread(tail[:], base+6); code != device.OK {
			return code
		}
		c0 := maskMSB(head[0], f)
		c6 := maskLSB(tail[0], 8-lastByteBits)
		if endian == LSB {
			if bitWidth <= 48 {
				value = ((value & 0xff) << uint(32+bw)) | (value&0xff00)<<uint(16+bw) | (value&0xff0000)<<uint(bw) | (value&0xff000000)>>uint(16-bw) | (value&0xff00000000)>>uint(32-bw) | (value&0xff0000000000)>>40
			} else {
				value = ((value & 0xff) << uint(40+bw)) | (value&0xff00)<<uint(24+bw) | (value&0xff0000)<<uint(8+bw) | (value&0xff000000)>>uint(8-bw) | (value&0xff00000000)>>uint(24-bw) | (value&0xff0000000000)>>uint(40-bw) | (value&0xff000000000000)>>48
			}
		}
		c0 |= byte(value >> uint(40+lastByteBits))
		c1 := byte(value>>uint(32+lastByteBits)) & 0xff
		c2 := byte(value>>uint(24+lastByteBits)) & 0xff
		c3 := byte(value>>uint(16+lastByteBits)) & 0xff
		c4 := byte(value>>uint(8+lastByteBits)) & 0xff
		c5 := byte(value>>uint(lastByteBits)) & 0xff
		c6 |= byte(value<<uint(8-lastByteBits)) & 0xff
		return dev.Pwrite([]byte{c0, c1, c2, c3, c4, c5, c6}, base)

	case 7:
		var head, tail [1]byte
		if code := dev.Pread(head[:], base); code != device.OK {
			return code
		}
		if code := dev.Pread(tail[:], base+7); code != device.OK {
			return code
		}
		c0 := maskMSB(head[0], f)
		c7 := maskLSB(tail[0], 8-lastByteBits)
		if endian == LSB {
			if bitWidth <= 56 {
				value = ((value & 0xff) << uint(40+bw)) | (value&0xff00)<<uint(24+bw) | (value&0xff0000)<<uint(8+bw) | (value&0xff000000)>>uint(8-bw) | (value&0xff00000000)>>uint(24-bw) | (value&0xff0000000000)>>uint(40-bw) | (value&0xff000000000000)>>48
			} else {
				value = ((value & 0xff) << uint(48+bw)) | (value&0xff00)<<uint(32+bw) | (value&0xff0000)<<uint(16+bw) | (value&0xff000000)<<uint(bw) | (value&0xff00000000)>>uint(16-bw) | (value&0xff0000000000)>>uint(32-bw) | (value&0xff000000000000)>>uint(48-bw) | (value&0xff00000000000000)>>56
			}
		}
		c0 |= byte(value >> uint(48+lastByteBits))
		c1 := byte(value>>uint(40+lastByteBits)) & 0xff
		c2 := byte(value>>uint(32+lastByteBits)) & 0xff
		c3 := byte(value>>uint(24+lastByteBits)) & 0xff
		c4 := byte(value>>uint(16+lastByteBits)) & 0xff
		c5 := byte(value>>uint(8+lastByteBits)) & 0xff
		c6 := byte(value>>uint(lastByteBits)) & 0xff
		c7 |= byte(value<<uint(8-lastByteBits)) & 0xff
		return dev.Pwrite([]byte{c0, c1, c2, c3, c4, c5, c6, c7}, base)

	case 8:
		var head, tail [1]byte
		if code := dev.Pread(head[:], base); code != device.OK {
			return code
		}
		if code := dev.Pread(tail[:], base+8); code != device.OK {
			return code
		}
		c0 := maskMSB(head[0], f)
		c8 := maskLSB(tail[0], 8-lastByteBits)
		if endian == LSB {
			value = ((value & 0xff) << uint(48+bw)) | (value&0xff00)<<uint(32+bw) | (value&0xff0000)<<uint(16+bw) | (value&0xff000000)<<uint(bw) | (value&0xff00000000)>>uint(16-bw) | (value&0xff0000000000)>>uint(32-bw) | (value&0xff000000000000)>>uint(48-bw) | (value&0xff00000000000000)>>56
		}
		c0 |= byte(value >> uint(56+lastByteBits))
		c1 := byte(value>>uint(48+lastByteBits)) & 0xff
		c2 := byte(value>>uint(40+lastByteBits)) & 0xff
		c3 := byte(value>>uint(32+lastByteBits)) & 0xff
		c4 := byte(value>>uint(24+lastByteBits)) & 0xff
		c5 := byte(value>>uint(16+lastByteBits)) & 0xff
		c6 := byte(value>>uint(8+lastByteBits)) & 0xff
		c7 := byte(value>>uint(lastByteBits)) & 0xff
		c8 |= byte(value<<uint(8-lastByteBits)) & 0xff
		return dev.Pwrite([]byte{c0, c1, c2, c3, c4, c5, c6, c7, c8}, base)

	default:
		panic("iospace/internal/codec: impossible byte span")
	}
}
