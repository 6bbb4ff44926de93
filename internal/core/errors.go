// Package core defines sentinel errors.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by the decoder.
var (
	// ErrTruncatedBuffer means fewer bytes were captured than a header needs.
	ErrTruncatedBuffer = errors.New("dissector: truncated buffer")
	// ErrMalformedHeader means a length field is below its protocol minimum.
	ErrMalformedHeader = errors.New("dissector: malformed header")

	// Capture source errors
	ErrSourceNotStarted = errors.New("dissector: source not started")
	ErrUnknownSource    = errors.New("dissector: unknown capture source")

	// Configuration errors
	ErrConfigInvalid = errors.New("dissector: invalid configuration")
)

// Layer names the header a DissectError was raised in.
type Layer string

const (
	LayerLink      Layer = "ethernet"
	LayerNetwork   Layer = "ipv4"
	LayerTransport Layer = "tcp"
)

// DissectError carries the position of a decoding failure.
// Err is always ErrTruncatedBuffer or ErrMalformedHeader.
type DissectError struct {
	Layer  Layer
	Field  string
	Offset int // absolute offset into the frame
	Need   int // bytes (or words, for length fields) required
	Have   int // bytes (or words) available
	Err    error
}

func (e *DissectError) Error() string {
	return fmt.Sprintf("%v: %s %s at offset %d (need %d, have %d)",
		e.Err, e.Layer, e.Field, e.Offset, e.Need, e.Have)
}

func (e *DissectError) Unwrap() error {
	return e.Err
}

// ErrorKind maps a dissect error to a short label, used for metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTruncatedBuffer):
		return "truncated"
	case errors.Is(err, ErrMalformedHeader):
		return "malformed"
	default:
		return "other"
	}
}
