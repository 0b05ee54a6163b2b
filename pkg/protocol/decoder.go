package protocol

import (
	"io"

	"github.com/lamina-ui/lamina/internal/errors"
)

// Allocation limits to prevent abuse via malicious length prefixes.
const (
	// MaxAllocation is the maximum single allocation a decoder will make
	// for a length-prefixed value (4MB).
	MaxAllocation = 4 * 1024 * 1024

	// MaxCollectionCount is the maximum number of items in a decoded
	// collection. This prevents OOM from huge counts with small
	// per-item overhead.
	MaxCollectionCount = 100_000

	// MaxPathDepth bounds node path depth; a real tree never approaches
	// it and a hostile one should not either.
	MaxPathDepth = 512
)

// Decoder is a binary decoder that reads from a byte buffer.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new decoder from the given byte slice.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// EOF returns true if all bytes have been read.
func (d *Decoder) EOF() bool {
	return d.pos >= len(d.buf)
}

// ReadByte reads a single byte.
func (d *Decoder) ReadByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadUvarint reads an unsigned varint.
func (d *Decoder) ReadUvarint() (uint64, error) {
	var v uint64
	var shift uint

	for {
		if d.pos >= len(d.buf) {
			return 0, io.ErrUnexpectedEOF
		}
		b := d.buf[d.pos]
		d.pos++
		v |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return v, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, errors.New("E200").WithDetail("varint overflow")
		}
	}
}

// ReadString reads a length-prefixed UTF-8 string.
func (d *Decoder) ReadString() (string, error) {
	length, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	if length > uint64(d.Remaining()) {
		return "", io.ErrUnexpectedEOF
	}
	if length > MaxAllocation {
		return "", errors.New("E202")
	}
	n := int(length)
	s := string(d.buf[d.pos : d.pos+n])
	d.pos += n
	return s, nil
}

// ReadBool reads a boolean (single byte; any non-zero value is true).
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0x00, nil
}

// ReadUint16 reads a uint16 in big-endian byte order.
func (d *Decoder) ReadUint16() (uint16, error) {
	if d.pos+2 > len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := uint16(d.buf[d.pos])<<8 | uint16(d.buf[d.pos+1])
	d.pos += 2
	return v, nil
}

// ReadPath reads a node path written by Encoder.WritePath.
func (d *Decoder) ReadPath() ([]int, error) {
	depth, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if depth > MaxPathDepth {
		return nil, errors.New("E202").WithDetail("path depth exceeds limit")
	}
	if depth > uint64(d.Remaining()) {
		return nil, io.ErrUnexpectedEOF
	}
	if depth == 0 {
		return nil, nil
	}
	path := make([]int, depth)
	for i := range path {
		idx, err := d.ReadUvarint()
		if err != nil {
			return nil, err
		}
		path[i] = int(idx)
	}
	return path, nil
}

// ReadCollectionCount reads a varint count and validates it against limits.
func (d *Decoder) ReadCollectionCount() (int, error) {
	count, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if count > MaxCollectionCount {
		return 0, errors.New("E202").WithDetail("collection count exceeds limit")
	}
	if count > uint64(d.Remaining()) {
		return 0, io.ErrUnexpectedEOF
	}
	return int(count), nil
}
