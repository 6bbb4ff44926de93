package decoder

import (
	"firestige.xyz/dissector/internal/core"
)

const (
	// Ethernet constants
	ethernetHeaderLen = 14
	macLen            = 6
)

// decodeEthernet decodes the Ethernet II header at offset 0.
// Returns LinkHeader and the offset of the next layer.
func decodeEthernet(c *cursor) (core.LinkHeader, int, error) {
	hdr, err := c.bytes(core.LayerLink, "header", 0, ethernetHeaderLen)
	if err != nil {
		return core.LinkHeader{}, 0, err
	}

	eth := core.LinkHeader{}

	// Destination and source MAC are byte sequences, copied as-is
	copy(eth.DstMAC[:], hdr[0:macLen])
	copy(eth.SrcMAC[:], hdr[macLen:2*macLen])

	// EtherType (2 bytes at offset 12)
	etherType, err := c.u16(core.LayerLink, "ethertype", 12)
	if err != nil {
		return core.LinkHeader{}, 0, err
	}
	eth.EtherType = etherType

	return eth, ethernetHeaderLen, nil
}
