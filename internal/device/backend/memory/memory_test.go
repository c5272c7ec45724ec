package memory

import (
	"testing"

	"github.com/scigolib/iospace/internal/device"
	"github.com/stretchr/testify/require"
)

func TestRecognize(t *testing.T) {
	tests := []struct {
		name    string
		handler string
		want    bool
	}{
		{"asterisk delimited", "*foo*", true},
		{"single asterisk", "*", true},
		{"plain path", "/tmp/foo", false},
		{"missing trailing star", "*foo", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Backend.Recognize(tt.handler, 0)
			require.Equal(t, tt.want, ok)
		})
	}
}

func TestOpenInitialSize(t *testing.T) {
	dev, code := Backend.Open("*m*", device.ModeRead|device.ModeWrite)
	require.Equal(t, device.OK, code)
	require.EqualValues(t, step, dev.Size())
}

func TestPwriteGrowsOneStep(t *testing.T) {
	dev, code := Backend.Open("*m*", device.ModeRead|device.ModeWrite)
	require.Equal(t, device.OK, code)

	d := dev.(*Dev)
	require.EqualValues(t, step, d.Size())

	code = dev.Pwrite([]byte{1, 2, 3}, device.ByteOffset(step-1))
	require.Equal(t, device.OK, code)
	require.EqualValues(t, step*2, d.Size())
}

func TestPwriteMoreThanOneStepAheadIsEOF(t *testing.T) {
	dev, _ := Backend.Open("*m*", device.ModeRead|device.ModeWrite)
	code := dev.Pwrite([]byte{1}, device.ByteOffset(step*2+1))
	require.Equal(t, device.EOF, code)
}

func TestPreadPastEndIsEOF(t *testing.T) {
	dev, _ := Backend.Open("*m*", device.ModeRead|device.ModeWrite)
	buf := make([]byte, 4)
	code := dev.Pread(buf, device.ByteOffset(step-1))
	require.Equal(t, device.EOF, code)
}

func TestPreadWriteRoundTrip(t *testing.T) {
	dev, _ := Backend.Open("*m*", device.ModeRead|device.ModeWrite)
	require.Equal(t, device.OK, dev.Pwrite([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 10))

	got := make([]byte, 4)
	require.Equal(t, device.OK, dev.Pread(got, 10))
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, got)
}
