package decoder

import (
	"encoding/binary"

	"firestige.xyz/dissector/internal/core"
)

// cursor is a bounds-checked, read-only view over a captured frame.
// All big-endian conversion in this package goes through it.
//
// Reads take an absolute offset; nothing is ever read at or past end.
type cursor struct {
	buf []byte
	end int // declared valid length, clamped to [0, len(buf)]
}

func newCursor(buf []byte, length int) *cursor {
	if length < 0 {
		length = 0
	}
	if length > len(buf) {
		length = len(buf)
	}
	return &cursor{buf: buf, end: length}
}

// remaining returns the number of valid bytes from off to the end.
func (c *cursor) remaining(off int) int {
	if off < 0 || off >= c.end {
		return 0
	}
	return c.end - off
}

// need checks that n bytes starting at off are inside the declared length.
func (c *cursor) need(layer core.Layer, field string, off, n int) error {
	if off < 0 || n < 0 || n > c.remaining(off) {
		return &core.DissectError{
			Layer:  layer,
			Field:  field,
			Offset: off,
			Need:   n,
			Have:   c.remaining(off),
			Err:    core.ErrTruncatedBuffer,
		}
	}
	return nil
}

// u8 reads one byte at off.
func (c *cursor) u8(layer core.Layer, field string, off int) (uint8, error) {
	if err := c.need(layer, field, off, 1); err != nil {
		return 0, err
	}
	return c.buf[off], nil
}

// u16 reads a big-endian uint16 at off.
func (c *cursor) u16(layer core.Layer, field string, off int) (uint16, error) {
	if err := c.need(layer, field, off, 2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(c.buf[off : off+2]), nil
}

// u32 reads a big-endian uint32 at off.
func (c *cursor) u32(layer core.Layer, field string, off int) (uint32, error) {
	if err := c.need(layer, field, off, 4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(c.buf[off : off+4]), nil
}

// bytes returns buf[off:off+n] with its capacity clipped, so callers
// cannot append into bytes that follow the span.
func (c *cursor) bytes(layer core.Layer, field string, off, n int) ([]byte, error) {
	if err := c.need(layer, field, off, n); err != nil {
		return nil, err
	}
	return c.buf[off : off+n : off+n], nil
}

// tail returns everything from off to the declared end; empty, never an error.
func (c *cursor) tail(off int) []byte {
	if c.remaining(off) == 0 {
		return c.buf[c.end:c.end:c.end]
	}
	return c.buf[off:c.end:c.end]
}
