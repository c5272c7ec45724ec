// Package iospace implements bit-addressable IO spaces: a small registry
// of open devices (files, memory buffers, network block devices) that
// can be peeked and poked as signed or unsigned integers of 1 to 64
// bits, and as NUL-terminated strings, at arbitrary bit offsets.
package iospace

import (
	"errors"
	"fmt"
)

// Code is one of the status values the read/write/open API reports.
// These values are part of the public contract and must not be
// renumbered.
type Code int

const (
	// OK indicates the operation completed as expected.
	OK Code = 0
	// ErrGeneric is an unspecified error condition.
	ErrGeneric Code = -1
	// ErrOffset is returned when a read or write runs past the end of
	// the underlying device.
	ErrOffset Code = -2
	// ErrObject is reserved for "no valid object at this offset";
	// nothing in this package produces it today.
	ErrObject Code = -3
	// ErrFlags is returned when a space is opened with an invalid or
	// unsupported combination of flags.
	ErrFlags Code = -4
	// ErrNoMem reports an allocation failure while growing a string
	// buffer; nothing in this package produces it today.
	ErrNoMem Code = -5
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case ErrGeneric:
		return "error"
	case ErrOffset:
		return "invalid offset"
	case ErrObject:
		return "no object at offset"
	case ErrFlags:
		return "invalid flags"
	case ErrNoMem:
		return "allocation failure"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Error is the structured error every failing operation in this package
// returns. Op names the failing operation ("Open", "ReadInt", ...), Code
// carries the IOS-level status, and Err, when non-nil, wraps whatever
// underlying cause (a device error, a syscall error) produced it.
type Error struct {
	Op   string
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("iospace: %s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("iospace: %s: %s", e.Op, e.Code)
}

// Unwrap exposes the underlying cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }

func newError(op string, code Code, cause error) error {
	if code == OK {
		return nil
	}
	return &Error{Op: op, Code: code, Err: cause}
}

// CodeOf extracts the Code carried by err. It returns OK for a nil err,
// and ErrGeneric for any error this package didn't produce.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrGeneric
}
