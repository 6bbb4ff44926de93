package decoder

import (
	"errors"
	"testing"

	"firestige.xyz/dissector/internal/core"
)

func TestCursorReadsBigEndian(t *testing.T) {
	c := newCursor([]byte{0x12, 0x34, 0x56, 0x78, 0x9A}, 5)

	if v, err := c.u8(core.LayerLink, "b", 4); err != nil || v != 0x9A {
		t.Errorf("u8: expected 0x9A, got 0x%02x (%v)", v, err)
	}
	if v, err := c.u16(core.LayerLink, "h", 0); err != nil || v != 0x1234 {
		t.Errorf("u16: expected 0x1234, got 0x%04x (%v)", v, err)
	}
	if v, err := c.u32(core.LayerLink, "w", 1); err != nil || v != 0x3456789A {
		t.Errorf("u32: expected 0x3456789A, got 0x%08x (%v)", v, err)
	}
}

func TestCursorHonorsDeclaredLength(t *testing.T) {
	// Backing array has 8 bytes but only 4 are declared valid
	c := newCursor([]byte{1, 2, 3, 4, 5, 6, 7, 8}, 4)

	if _, err := c.u32(core.LayerLink, "w", 0); err != nil {
		t.Fatalf("u32 at 0 should fit, got %v", err)
	}
	if _, err := c.u32(core.LayerLink, "w", 1); !errors.Is(err, core.ErrTruncatedBuffer) {
		t.Errorf("expected ErrTruncatedBuffer, got %v", err)
	}
	if _, err := c.u8(core.LayerLink, "b", 4); !errors.Is(err, core.ErrTruncatedBuffer) {
		t.Errorf("expected ErrTruncatedBuffer reading at declared end, got %v", err)
	}
	if got := c.remaining(2); got != 2 {
		t.Errorf("expected remaining 2, got %d", got)
	}
	if got := c.remaining(9); got != 0 {
		t.Errorf("expected remaining 0 past end, got %d", got)
	}
}

func TestCursorClampsLength(t *testing.T) {
	// Declared length larger than the buffer must not allow reads past it
	c := newCursor([]byte{1, 2}, 100)
	if _, err := c.u16(core.LayerLink, "h", 1); !errors.Is(err, core.ErrTruncatedBuffer) {
		t.Errorf("expected ErrTruncatedBuffer, got %v", err)
	}

	c = newCursor([]byte{1, 2}, -1)
	if got := c.remaining(0); got != 0 {
		t.Errorf("expected remaining 0 for negative length, got %d", got)
	}
}

func TestCursorNegativeOffset(t *testing.T) {
	c := newCursor([]byte{1, 2, 3, 4}, 4)
	if _, err := c.u8(core.LayerLink, "b", -1); !errors.Is(err, core.ErrTruncatedBuffer) {
		t.Errorf("expected ErrTruncatedBuffer for negative offset, got %v", err)
	}
}

func TestCursorTruncationDetails(t *testing.T) {
	c := newCursor(make([]byte, 10), 10)
	_, err := c.bytes(core.LayerNetwork, "header", 6, 20)

	var de *core.DissectError
	if !errors.As(err, &de) {
		t.Fatalf("expected *core.DissectError, got %T", err)
	}
	if de.Layer != core.LayerNetwork || de.Field != "header" {
		t.Errorf("unexpected layer/field %s/%s", de.Layer, de.Field)
	}
	if de.Offset != 6 || de.Need != 20 || de.Have != 4 {
		t.Errorf("unexpected offset/need/have %d/%d/%d", de.Offset, de.Need, de.Have)
	}
}

func TestCursorTail(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6}
	c := newCursor(buf, 5)

	tail := c.tail(3)
	if len(tail) != 2 || tail[0] != 4 || tail[1] != 5 {
		t.Errorf("unexpected tail %v", tail)
	}
	if cap(tail) != 2 {
		t.Errorf("expected tail capacity clipped to 2, got %d", cap(tail))
	}

	if empty := c.tail(5); len(empty) != 0 || empty == nil {
		t.Errorf("expected empty non-nil tail at end, got %v", empty)
	}
	if empty := c.tail(50); len(empty) != 0 {
		t.Errorf("expected empty tail past end, got %v", empty)
	}
}
