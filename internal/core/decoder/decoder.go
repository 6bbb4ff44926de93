// Package decoder implements Ethernet/IPv4/TCP frame dissection.
//
// Decoding is a linear pipeline: link, network, transport (TCP only), then
// payload. Every stage reads through one bounds-checked cursor and the first
// failure aborts the whole call; no partial packet is returned.
package decoder

import "firestige.xyz/dissector/internal/core"

// Decoder decodes raw frames into structured format.
type Decoder interface {
	Decode(raw core.RawFrame) (core.DissectedPacket, error)
}

// Config contains decoder options.
type Config struct {
	// TrimToTotalLen bounds the payload by the IPv4 total length when that
	// length fits inside the capture, dropping Ethernet trailer padding.
	TrimToTotalLen bool
}

// StandardDecoder is stateless and safe for concurrent use.
type StandardDecoder struct {
	config Config
}

// NewStandardDecoder creates a decoder.
func NewStandardDecoder(cfg Config) *StandardDecoder {
	return &StandardDecoder{config: cfg}
}

// Decode dissects raw.Data, using raw.CaptureLen as the valid length.
// A zero CaptureLen means the whole of raw.Data was captured.
func (d *StandardDecoder) Decode(raw core.RawFrame) (core.DissectedPacket, error) {
	length := raw.CaptureLen
	if length == 0 {
		length = len(raw.Data)
	}
	return d.dissect(raw.Data, length)
}

// Dissect decodes buf[:length] with default options.
func Dissect(buf []byte, length int) (core.DissectedPacket, error) {
	return (&StandardDecoder{}).dissect(buf, length)
}

func (d *StandardDecoder) dissect(buf []byte, length int) (core.DissectedPacket, error) {
	c := newCursor(buf, length)

	link, off, err := decodeEthernet(c)
	if err != nil {
		return core.DissectedPacket{}, err
	}

	netStart := off
	network, off, warn, err := decodeIPv4(c, off)
	if err != nil {
		return core.DissectedPacket{}, err
	}
	if link.EtherType != core.EtherTypeIPv4 {
		warn |= core.WarnNotIPv4EtherType
	}

	transport, off, err := decodeTransport(c, off, network.Protocol)
	if err != nil {
		return core.DissectedPacket{}, err
	}

	pc := c
	if d.config.TrimToTotalLen && warn&(core.WarnTotalLenExceedsCapture|core.WarnTotalLenBelowHeader) == 0 {
		pc = newCursor(buf, netStart+int(network.TotalLen))
	}

	return core.DissectedPacket{
		Link:      link,
		Network:   network,
		Transport: transport,
		Payload:   extractPayload(pc, off),
		Warnings:  warn,
	}, nil
}
