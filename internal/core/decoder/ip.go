package decoder

import (
	"net/netip"

	"firestige.xyz/dissector/internal/core"
)

const (
	ipv4HeaderMinWords = 5
	ipv4AddrLen        = 4
)

// decodeIPv4 decodes the IPv4 header starting at off.
// IHL gates every later offset; total length is only compared, never trusted.
// Returns NetworkHeader, the offset of the transport layer and any warnings.
func decodeIPv4(c *cursor, off int) (core.NetworkHeader, int, core.Warnings, error) {
	// Version (high nibble) + IHL (low nibble)
	vihl, err := c.u8(core.LayerNetwork, "version_ihl", off)
	if err != nil {
		return core.NetworkHeader{}, 0, 0, err
	}

	ip := core.NetworkHeader{
		Version: vihl >> 4,
		IHL:     vihl & 0x0F,
	}

	if ip.IHL < ipv4HeaderMinWords {
		return core.NetworkHeader{}, 0, 0, &core.DissectError{
			Layer:  core.LayerNetwork,
			Field:  "ihl",
			Offset: off,
			Need:   ipv4HeaderMinWords,
			Have:   int(ip.IHL),
			Err:    core.ErrMalformedHeader,
		}
	}

	headerLen := ip.HeaderLen()
	hdr, err := c.bytes(core.LayerNetwork, "header", off, headerLen)
	if err != nil {
		return core.NetworkHeader{}, 0, 0, err
	}

	// The whole header is in bounds; fixed fields below cannot fail.
	ip.TOS, _ = c.u8(core.LayerNetwork, "tos", off+1)
	ip.TotalLen, _ = c.u16(core.LayerNetwork, "total_len", off+2)
	ip.ID, _ = c.u16(core.LayerNetwork, "id", off+4)

	// Flags (3 bits) + Fragment Offset (13 bits)
	flagsOffset, _ := c.u16(core.LayerNetwork, "flags_frag", off+6)
	ip.DontFragment = flagsOffset&0x4000 != 0
	ip.MoreFragments = flagsOffset&0x2000 != 0
	ip.FragOffset = flagsOffset & 0x1FFF

	ip.TTL, _ = c.u8(core.LayerNetwork, "ttl", off+8)
	ip.Protocol, _ = c.u8(core.LayerNetwork, "protocol", off+9)
	ip.Checksum, _ = c.u16(core.LayerNetwork, "checksum", off+10)

	ip.SrcIP = netip.AddrFrom4([ipv4AddrLen]byte(hdr[12:16]))
	ip.DstIP = netip.AddrFrom4([ipv4AddrLen]byte(hdr[16:20]))

	var warn core.Warnings
	if ip.Version != 4 {
		warn |= core.WarnNotIPv4Version
	}
	if int(ip.TotalLen) < headerLen {
		warn |= core.WarnTotalLenBelowHeader
	}
	if int(ip.TotalLen) > c.remaining(off) {
		warn |= core.WarnTotalLenExceedsCapture
	}

	return ip, off + headerLen, warn, nil
}
