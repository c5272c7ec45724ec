package codec

import (
	"testing"

	"github.com/scigolib/iospace/internal/device"
	"github.com/stretchr/testify/require"
)

// fakeDev is a fixed-size in-memory device.Device used to exercise the
// codec without depending on a real backend.
type fakeDev struct {
	buf []byte
}

func newFakeDev(size int) *fakeDev { return &fakeDev{buf: make([]byte, size)} }

func (d *fakeDev) Close() bool                  { return true }
func (d *fakeDev) Flags() device.Flags          { return device.ModeRead | device.ModeWrite }
func (d *fakeDev) Size() uint64                 { return uint64(len(d.buf)) }
func (d *fakeDev) Flush(device.ByteOffset) error { return nil }

func (d *fakeDev) Pread(buf []byte, offset device.ByteOffset) device.Code {
	end := uint64(offset) + uint64(len(buf))
	if end > uint64(len(d.buf)) {
		return device.EOF
	}
	copy(buf, d.buf[offset:end])
	return device.OK
}

func (d *fakeDev) Pwrite(buf []byte, offset device.ByteOffset) device.Code {
	end := uint64(offset) + uint64(len(buf))
	if end > uint64(len(d.buf)) {
		return device.EOF
	}
	copy(d.buf[offset:end], buf)
	return device.OK
}

func TestUintRoundTrip(t *testing.T) {
	for _, endian := range []Endian{LSB, MSB} {
		for bitWidth := 1; bitWidth <= 64; bitWidth++ {
			for offset := 0; offset < 8; offset++ {
				dev := newFakeDev(32)
				var value uint64 = 0xDEADBEEFCAFEBABE
				if bitWidth < 64 {
					value &= (uint64(1) << uint(bitWidth)) - 1
				}
				code := WriteUint(dev, int64(offset), bitWidth, endian, value)
				require.Equal(t, device.OK, code, "write bits=%d offset=%d endian=%v", bitWidth, offset, endian)

				got, code := ReadUint(dev, int64(offset), bitWidth, endian)
				require.Equal(t, device.OK, code)
				require.Equal(t, value, got, "round trip bits=%d offset=%d endian=%v", bitWidth, offset, endian)
			}
		}
	}
}

func TestIntRoundTripSigned(t *testing.T) {
	for _, endian := range []Endian{LSB, MSB} {
		for bitWidth := 2; bitWidth <= 64; bitWidth++ {
			for offset := 0; offset < 8; offset++ {
				dev := newFakeDev(32)
				var value int64 = -1
				code := WriteInt(dev, int64(offset), bitWidth, endian, value)
				require.Equal(t, device.OK, code)

				got, code := ReadInt(dev, int64(offset), bitWidth, endian)
				require.Equal(t, device.OK, code)
				require.Equal(t, int64(-1), got, "bits=%d offset=%d endian=%v", bitWidth, offset, endian)
			}
		}
	}
}

func TestWriteDoesNotClobberSurroundingBits(t *testing.T) {
	for _, endian := range []Endian{LSB, MSB} {
		for bitWidth := 1; bitWidth <= 20; bitWidth++ {
			for offset := 0; offset < 8; offset++ {
				dev := newFakeDev(8)
				for i := range dev.buf {
					dev.buf[i] = 0xA5
				}

				require.Equal(t, device.OK, WriteUint(dev, int64(offset), bitWidth, endian, 0))

				firstByte := offset / 8
				leading := offset % 8
				if leading > 0 {
					gotLeading := dev.buf[firstByte] >> uint(8-leading)
					wantLeading := byte(0xA5) >> uint(8-leading)
					require.Equal(t, wantLeading, gotLeading, "bits=%d offset=%d endian=%v", bitWidth, offset, endian)
				}

				end := offset + bitWidth
				if trailing := (8 - end%8) % 8; trailing > 0 {
					lastByte := (end - 1) / 8
					mask := byte(0xff) >> uint(8-trailing)
					require.Equal(t, byte(0xA5)&mask, dev.buf[lastByte]&mask, "bits=%d offset=%d endian=%v", bitWidth, offset, endian)
				}
			}
		}
	}
}

func TestSignExtension8Bit(t *testing.T) {
	dev := newFakeDev(8)
	require.Equal(t, device.OK, WriteUint(dev, 0, 8, MSB, 0xFF))
	got, code := ReadInt(dev, 0, 8, MSB)
	require.Equal(t, device.OK, code)
	require.EqualValues(t, -1, got)
}

func TestSignExtensionOneBit(t *testing.T) {
	dev := newFakeDev(8)
	require.Equal(t, device.OK, WriteUint(dev, 0, 1, MSB, 1))
	got, code := ReadInt(dev, 0, 1, MSB)
	require.Equal(t, device.OK, code)
	require.EqualValues(t, -1, got)
}

func TestSignExtension16BitMSB(t *testing.T) {
	dev := newFakeDev(8)
	require.Equal(t, device.OK, WriteUint(dev, 0, 16, MSB, 0x8000))
	got, code := ReadInt(dev, 0, 16, MSB)
	require.Equal(t, device.OK, code)
	require.EqualValues(t, -32768, got)
}

func TestEndiannessByteOrder(t *testing.T) {
	dev := newFakeDev(8)
	require.Equal(t, device.OK, WriteUint(dev, 0, 16, LSB, 0x1234))
	require.Equal(t, byte(0x34), dev.buf[0])
	require.Equal(t, byte(0x12), dev.buf[1])

	dev2 := newFakeDev(8)
	require.Equal(t, device.OK, WriteUint(dev2, 0, 16, MSB, 0x1234))
	require.Equal(t, byte(0x12), dev2.buf[0])
	require.Equal(t, byte(0x34), dev2.buf[1])
}

func TestAlignedAndGeneralPathsAgree(t *testing.T) {
	// A byte-aligned, whole-byte read takes the fast path in ReadUint;
	// readGeneral must decode the same device bytes to the same value.
	for _, endian := range []Endian{LSB, MSB} {
		dev := newFakeDev(8)
		require.Equal(t, device.OK, WriteUint(dev, 8, 8, endian, 0xAB))
		got, code := ReadUint(dev, 8, 8, endian)
		require.Equal(t, device.OK, code)
		require.EqualValues(t, 0xAB, got)
		require.Equal(t, byte(0xAB), dev.buf[1])

		for bitWidth := 8; bitWidth <= 64; bitWidth += 8 {
			fast, code := ReadUint(dev, 0, bitWidth, endian)
			require.Equal(t, device.OK, code)
			general, code := readGeneral(dev, 0, bitWidth, endian)
			require.Equal(t, device.OK, code)
			require.Equal(t, fast, general, "bits=%d endian=%v", bitWidth, endian)
		}
	}
}

func TestStringRoundTripAligned(t *testing.T) {
	dev := newFakeDev(64)
	msg := []byte("Hi\x00")
	require.Equal(t, device.OK, WriteString(dev, 0, msg))
	got, code := ReadString(dev, 0)
	require.Equal(t, device.OK, code)
	require.Equal(t, msg, got)
}

func TestStringRoundTripUnaligned(t *testing.T) {
	dev := newFakeDev(64)
	msg := []byte("Hi\x00")
	require.Equal(t, device.OK, WriteString(dev, 3, msg))
	got, code := ReadString(dev, 3)
	require.Equal(t, device.OK, code)
	require.Equal(t, msg, got)
}

func TestReadStringStopsAtFirstNUL(t *testing.T) {
	dev := newFakeDev(64)
	require.Equal(t, device.OK, dev.Pwrite([]byte("Hi\x00junk"), 0))
	got, code := ReadString(dev, 0)
	require.Equal(t, device.OK, code)
	require.Equal(t, []byte("Hi\x00"), got)
}
