// Package core defines core data structures with zero external dependencies.
package core

import (
	"strings"
	"time"
)

// RawFrame is one captured frame. The caller owns Data for the duration of a
// single decode call; decoders never keep a reference past it.
type RawFrame struct {
	Data           []byte    // Frame bytes, a fresh slice per frame
	CaptureLen     int       // Bytes actually captured, authoritative for bounds
	OrigLen        int       // Length of the frame on the wire
	Timestamp      time.Time // Capture timestamp
	InterfaceIndex int
}

// DissectedPacket is the result of Ethernet/IPv4/TCP decoding.
type DissectedPacket struct {
	Link      LinkHeader
	Network   NetworkHeader
	Transport *TransportHeader // nil when the protocol is not TCP
	Payload   []byte           // aliases the frame, capacity clipped
	Warnings  Warnings
}

// Warnings is a bitset of non-fatal anomalies found while decoding.
type Warnings uint8

const (
	// WarnTotalLenExceedsCapture: the IPv4 total length claims more bytes
	// than were captured after the link header.
	WarnTotalLenExceedsCapture Warnings = 1 << iota
	// WarnTotalLenBelowHeader: the IPv4 total length is smaller than IHL*4.
	WarnTotalLenBelowHeader
	// WarnNotIPv4EtherType: EtherType is not 0x0800.
	WarnNotIPv4EtherType
	// WarnNotIPv4Version: version nibble is not 4.
	WarnNotIPv4Version
)

var warningNames = []struct {
	w    Warnings
	name string
}{
	{WarnTotalLenExceedsCapture, "total_len_exceeds_capture"},
	{WarnTotalLenBelowHeader, "total_len_below_header"},
	{WarnNotIPv4EtherType, "ethertype_not_ipv4"},
	{WarnNotIPv4Version, "version_not_ipv4"},
}

// Has reports whether all bits of w are set.
func (ws Warnings) Has(w Warnings) bool {
	return ws&w == w
}

// Names returns the label of every set warning.
func (ws Warnings) Names() []string {
	var names []string
	for _, wn := range warningNames {
		if ws.Has(wn.w) {
			names = append(names, wn.name)
		}
	}
	return names
}

func (ws Warnings) String() string {
	return strings.Join(ws.Names(), ",")
}
