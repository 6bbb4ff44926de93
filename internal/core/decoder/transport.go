package decoder

import (
	"firestige.xyz/dissector/internal/core"
)

const (
	tcpHeaderMinLen   = 20
	tcpHeaderMinWords = 5
)

// TCP flag masks (byte 13 of the header).
const (
	tcpFlagFIN = 0x01
	tcpFlagSYN = 0x02
	tcpFlagRST = 0x04
	tcpFlagPSH = 0x08
	tcpFlagACK = 0x10
	tcpFlagURG = 0x20
	tcpFlagECE = 0x40
	tcpFlagCWR = 0x80
)

// decodeTransport decodes the transport header for the given protocol.
// Anything but TCP returns (nil, off, nil): no transport header, not an error.
func decodeTransport(c *cursor, off int, protocol uint8) (*core.TransportHeader, int, error) {
	switch protocol {
	case core.ProtocolTCP:
		tcp, next, err := decodeTCP(c, off)
		if err != nil {
			return nil, 0, err
		}
		return &tcp, next, nil
	default:
		return nil, off, nil
	}
}

// decodeTCP decodes the TCP header starting at off.
func decodeTCP(c *cursor, off int) (core.TransportHeader, int, error) {
	if err := c.need(core.LayerTransport, "header", off, tcpHeaderMinLen); err != nil {
		return core.TransportHeader{}, 0, err
	}

	// The minimum header is in bounds; fixed fields below cannot fail.
	transport := core.TransportHeader{}
	transport.SrcPort, _ = c.u16(core.LayerTransport, "src_port", off)
	transport.DstPort, _ = c.u16(core.LayerTransport, "dst_port", off+2)
	transport.Seq, _ = c.u32(core.LayerTransport, "seq", off+4)
	transport.Ack, _ = c.u32(core.LayerTransport, "ack", off+8)

	// Data Offset (upper 4 bits of byte 12)
	doff, _ := c.u8(core.LayerTransport, "data_offset", off+12)
	transport.DataOffset = doff >> 4
	if transport.DataOffset < tcpHeaderMinWords {
		return core.TransportHeader{}, 0, &core.DissectError{
			Layer:  core.LayerTransport,
			Field:  "data_offset",
			Offset: off + 12,
			Need:   tcpHeaderMinWords,
			Have:   int(transport.DataOffset),
			Err:    core.ErrMalformedHeader,
		}
	}

	headerLen := transport.HeaderLen()
	if err := c.need(core.LayerTransport, "options", off, headerLen); err != nil {
		return core.TransportHeader{}, 0, err
	}

	flags, _ := c.u8(core.LayerTransport, "flags", off+13)
	transport.Flags = decodeTCPFlags(flags)

	transport.Window, _ = c.u16(core.LayerTransport, "window", off+14)
	transport.Checksum, _ = c.u16(core.LayerTransport, "checksum", off+16)
	transport.Urgent, _ = c.u16(core.LayerTransport, "urgent", off+18)

	return transport, off + headerLen, nil
}

// decodeTCPFlags splits the flags byte into named booleans.
func decodeTCPFlags(b uint8) core.TCPFlags {
	return core.TCPFlags{
		FIN: b&tcpFlagFIN != 0,
		SYN: b&tcpFlagSYN != 0,
		RST: b&tcpFlagRST != 0,
		PSH: b&tcpFlagPSH != 0,
		ACK: b&tcpFlagACK != 0,
		URG: b&tcpFlagURG != 0,
		ECE: b&tcpFlagECE != 0,
		CWR: b&tcpFlagCWR != 0,
	}
}
