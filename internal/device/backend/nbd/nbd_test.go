package nbd

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
		{"tcp uri", "nbd://host/export", true},
		{"unix socket uri", "nbd+unix:///path/to/sock?export=foo", true},
		{"plain path", "/tmp/foo", false},
		{"memory handler", "*m*", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Backend.Recognize(tt.handler, 0)
			require.Equal(t, tt.want, ok)
		})
	}
}

func TestOpenRejectsTruncate(t *testing.T) {
	_, code := Backend.Open("nbd://127.0.0.1:1/export", device.ModeWrite|device.ModeTruncate)
	require.Equal(t, device.EInvalid, code)
}

func TestOpenUnreachableServerIsGenericError(t *testing.T) {
	_, code := Backend.Open("nbd://127.0.0.1:1/export", device.ModeRead)
	require.Equal(t, device.ErrGeneric, code)
}
