// Package core defines core types with zero external dependencies.
package core

import (
	"fmt"
	"net/netip"
	"strings"
)

// Well-known values.
const (
	EtherTypeIPv4 = 0x0800
	ProtocolTCP   = 6
)

// HardwareAddr is a 6-byte MAC address kept as raw bytes, never byte-swapped.
type HardwareAddr [6]byte

// String formats the address as AA-BB-CC-DD-EE-FF.
func (a HardwareAddr) String() string {
	return fmt.Sprintf("%02X-%02X-%02X-%02X-%02X-%02X", a[0], a[1], a[2], a[3], a[4], a[5])
}

// LinkHeader represents the fixed 14-byte Ethernet II header.
type LinkHeader struct {
	DstMAC    HardwareAddr
	SrcMAC    HardwareAddr
	EtherType uint16 // 0x0800=IPv4
}

// NetworkHeader represents an IPv4 header. Options are skipped, not modelled.
type NetworkHeader struct {
	Version       uint8
	IHL           uint8 // header length in 32-bit words, 5..15
	TOS           uint8
	TotalLen      uint16
	ID            uint16
	DontFragment  bool
	MoreFragments bool
	FragOffset    uint16 // in 8-byte units
	TTL           uint8
	Protocol      uint8 // TCP=6
	Checksum      uint16
	SrcIP         netip.Addr
	DstIP         netip.Addr
}

// HeaderLen returns the header length in bytes.
func (h NetworkHeader) HeaderLen() int {
	return int(h.IHL) * 4
}

// TCPFlags holds the control bits of a TCP header.
type TCPFlags struct {
	FIN bool
	SYN bool
	RST bool
	PSH bool
	ACK bool
	URG bool
	ECE bool
	CWR bool
}

// String lists the set flags separated by spaces, e.g. "SYN ACK".
func (f TCPFlags) String() string {
	names := make([]string, 0, 8)
	for _, fl := range []struct {
		set  bool
		name string
	}{
		{f.FIN, "FIN"}, {f.SYN, "SYN"}, {f.RST, "RST"}, {f.PSH, "PSH"},
		{f.ACK, "ACK"}, {f.URG, "URG"}, {f.ECE, "ECE"}, {f.CWR, "CWR"},
	} {
		if fl.set {
			names = append(names, fl.name)
		}
	}
	return strings.Join(names, " ")
}

// TransportHeader represents a TCP header.
type TransportHeader struct {
	SrcPort    uint16
	DstPort    uint16
	Seq        uint32
	Ack        uint32
	DataOffset uint8 // header length in 32-bit words, 5..15
	Flags      TCPFlags
	Window     uint16
	Checksum   uint16
	Urgent     uint16
}

// HeaderLen returns the header length in bytes.
func (h TransportHeader) HeaderLen() int {
	return int(h.DataOffset) * 4
}
