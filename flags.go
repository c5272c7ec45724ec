package iospace

import "github.com/scigolib/iospace/internal/device"

// Flags is the open-flags word: mode bits occupy 0-7, generic flags
// occupy 8-31, and backend-private flags occupy 32-63.
type Flags = device.Flags

// Mode bits.
const (
	ModeRead     = device.ModeRead
	ModeWrite    = device.ModeWrite
	ModeTruncate = device.ModeTruncate
	ModeCreate   = device.ModeCreate
)

// AccessFlags are advisory flags threaded through read/write calls.
// Nothing in this package honors them — there is no cache or
// update-hook layer to bypass. The read/write methods accept them and
// ignore them; they are not passed to the codec or to the backends.
type AccessFlags int

const (
	// BypassCache requests the read/write skip any caching layer.
	BypassCache AccessFlags = 1
	// BypassUpdate requests the read/write skip any update hooks.
	BypassUpdate AccessFlags = 2
)

// Endian selects bit significance order within a multi-byte span.
type Endian int

const (
	// LSB places the least significant byte of the value first.
	LSB Endian = iota
	// MSB places the most significant byte of the value first.
	MSB
)

// NegEncoding selects the encoding of negative integers. Only
// TwosComplement is implemented; OnesComplement is rejected at the API
// boundary (see DESIGN.md).
type NegEncoding int

const (
	// TwosComplement is the only implemented negative encoding.
	TwosComplement NegEncoding = iota
	// OnesComplement is reserved and always rejected with ErrFlags.
	OnesComplement
)
