// Package nbd implements the network block device IO backend. It speaks
// the oldstyle NBD handshake and the simple transmission protocol — no
// suitable NBD client library was found among the examples, so this
// wire client is hand-written against the protocol documented at
// https://github.com/NetworkBlockDevice/nbd/blob/master/doc/proto.md.
package nbd

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/scigolib/iospace/internal/device"
)

const (
	oldstyleMagic = "NBDMAGIC"
	cliservMagic  = 0x00420281861253
	requestMagic  = 0x25609513
	replyMagic    = 0x67446698

	cmdRead  = 0
	cmdWrite = 1
	cmdDisc  = 2
	cmdFlush = 3

	flagReadOnly = 1 << 1
)

// Dev is an open connection to an NBD export.
type Dev struct {
	conn     net.Conn
	size     uint64
	readOnly bool
	flags    device.Flags
	handle   uint64
}

type backend struct{}

// Backend is the nbd device backend, recognizing nbd:// and
// nbd+unix:// handlers.
var Backend backend

func (backend) Recognize(handler string, _ device.Flags) (string, bool) {
	if strings.HasPrefix(handler, "nbd://") || strings.HasPrefix(handler, "nbd+unix://") {
		return handler, true
	}
	return "", false
}

func (backend) Open(handler string, flags device.Flags) (device.Device, device.Code) {
	mode := flags.Mode()
	if mode&device.ModeTruncate != 0 {
		return nil, device.EInvalid
	}

	conn, readOnly, size, err := dial(handler)
	if err != nil {
		return nil, device.ErrGeneric
	}

	if mode&device.ModeWrite != 0 && readOnly {
		conn.Close()
		return nil, device.EInvalid
	}

	if mode == 0 {
		mode = device.ModeRead
		if !readOnly {
			mode |= device.ModeWrite
		}
	}

	return &Dev{conn: conn, size: size, readOnly: readOnly, flags: mode}, device.OK
}

func dial(handler string) (net.Conn, bool, uint64, error) {
	var conn net.Conn
	var err error

	switch {
	case strings.HasPrefix(handler, "nbd+unix://"):
		rest := strings.TrimPrefix(handler, "nbd+unix://")
		if idx := strings.IndexByte(rest, '?'); idx >= 0 {
			rest = rest[:idx]
		}
		conn, err = net.Dial("unix", rest)
	case strings.HasPrefix(handler, "nbd://"):
		rest := strings.TrimPrefix(handler, "nbd://")
		host := rest
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			host = rest[:idx]
		}
		if !strings.Contains(host, ":") {
			host += ":10809"
		}
		conn, err = net.Dial("tcp", host)
	default:
		return nil, false, 0, fmt.Errorf("nbd: unrecognized handler %q", handler)
	}
	if err != nil {
		return nil, false, 0, err
	}

	hdr := make([]byte, 152)
	if _, err := io.ReadFull(conn, hdr); err != nil {
		conn.Close()
		return nil, false, 0, fmt.Errorf("nbd: handshake read: %w", err)
	}
	if string(hdr[0:8]) != oldstyleMagic {
		conn.Close()
		return nil, false, 0, fmt.Errorf("nbd: bad magic")
	}
	if binary.BigEndian.Uint64(hdr[8:16]) != cliservMagic {
		conn.Close()
		return nil, false, 0, fmt.Errorf("nbd: bad cliserv magic")
	}
	size := binary.BigEndian.Uint64(hdr[16:24])
	exportFlags := binary.BigEndian.Uint32(hdr[24:28])
	return conn, exportFlags&flagReadOnly != 0, size, nil
}

// Close sends a disconnect and closes the connection. NBD_CMD_DISC has no
// reply, so the disconnect's success isn't checked beyond the send.
func (d *Dev) Close() bool {
	_ = d.sendRequest(cmdDisc, 0, 0)
	return d.conn.Close() == nil
}

// Flags returns the flags the device was opened with.
func (d *Dev) Flags() device.Flags { return d.flags }

// Size returns the export size reported at handshake time.
func (d *Dev) Size() uint64 { return d.size }

// Pread issues NBD_CMD_READ for len(buf) bytes at offset.
func (d *Dev) Pread(buf []byte, offset device.ByteOffset) device.Code {
	if err := d.sendRequest(cmdRead, offset, uint32(len(buf))); err != nil {
		return device.EOF
	}
	if err := d.recv(buf); err != nil {
		return device.EOF
	}
	return device.OK
}

// Pwrite issues NBD_CMD_WRITE for buf at offset.
func (d *Dev) Pwrite(buf []byte, offset device.ByteOffset) device.Code {
	if err := d.sendRequest(cmdWrite, offset, uint32(len(buf))); err != nil {
		return device.EOF
	}
	if _, err := d.conn.Write(buf); err != nil {
		return device.EOF
	}
	if err := d.recv(nil); err != nil {
		return device.EOF
	}
	return device.OK
}

// Flush issues NBD_CMD_FLUSH.
func (d *Dev) Flush(device.ByteOffset) error {
	if err := d.sendRequest(cmdFlush, 0, 0); err != nil {
		return err
	}
	return d.recv(nil)
}

func (d *Dev) sendRequest(cmd uint16, offset device.ByteOffset, length uint32) error {
	d.handle++
	hdr := make([]byte, 28)
	binary.BigEndian.PutUint32(hdr[0:4], requestMagic)
	binary.BigEndian.PutUint16(hdr[4:6], 0)
	binary.BigEndian.PutUint16(hdr[6:8], cmd)
	binary.BigEndian.PutUint64(hdr[8:16], d.handle)
	binary.BigEndian.PutUint64(hdr[16:24], uint64(offset))
	binary.BigEndian.PutUint32(hdr[24:28], length)
	_, err := d.conn.Write(hdr)
	return err
}

func (d *Dev) recv(buf []byte) error {
	hdr := make([]byte, 16)
	if _, err := io.ReadFull(d.conn, hdr); err != nil {
		return err
	}
	if binary.BigEndian.Uint32(hdr[0:4]) != replyMagic {
		return fmt.Errorf("nbd: bad reply magic")
	}
	if errCode := binary.BigEndian.Uint32(hdr[4:8]); errCode != 0 {
		return fmt.Errorf("nbd: server error %d", errCode)
	}
	if buf == nil {
		return nil
	}
	_, err := io.ReadFull(d.conn, buf)
	return err
}
