package console

import (
	"encoding/hex"
	"time"

	"firestige.xyz/dissector/internal/core"
)

type record struct {
	Timestamp  string         `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	CaptureLen int            `json:"capture_len" yaml:"capture_len"`
	OrigLen    int            `json:"orig_len,omitempty" yaml:"orig_len,omitempty"`
	Ethernet   ethernetRecord `json:"ethernet" yaml:"ethernet"`
	IPv4       ipv4Record     `json:"ipv4" yaml:"ipv4"`
	TCP        *tcpRecord     `json:"tcp,omitempty" yaml:"tcp,omitempty"`
	Payload    payloadRecord  `json:"payload" yaml:"payload"`
	Warnings   []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type ethernetRecord struct {
	Dst       string `json:"dst" yaml:"dst"`
	Src       string `json:"src" yaml:"src"`
	EtherType uint16 `json:"ether_type" yaml:"ether_type"`
}

type ipv4Record struct {
	Version       uint8  `json:"version" yaml:"version"`
	IHL           uint8  `json:"ihl" yaml:"ihl"`
	TOS           uint8  `json:"tos" yaml:"tos"`
	TotalLen      uint16 `json:"total_len" yaml:"total_len"`
	ID            uint16 `json:"id" yaml:"id"`
	DontFragment  bool   `json:"df" yaml:"df"`
	MoreFragments bool   `json:"mf" yaml:"mf"`
	FragOffset    uint16 `json:"frag_offset" yaml:"frag_offset"`
	TTL           uint8  `json:"ttl" yaml:"ttl"`
	Protocol      uint8  `json:"protocol" yaml:"protocol"`
	Checksum      uint16 `json:"checksum" yaml:"checksum"`
	Src           string `json:"src" yaml:"src"`
	Dst           string `json:"dst" yaml:"dst"`
}

type tcpRecord struct {
	SrcPort    uint16 `json:"src_port" yaml:"src_port"`
	DstPort    uint16 `json:"dst_port" yaml:"dst_port"`
	Seq        uint32 `json:"seq" yaml:"seq"`
	Ack        uint32 `json:"ack" yaml:"ack"`
	DataOffset uint8  `json:"data_offset" yaml:"data_offset"`
	Flags      string `json:"flags" yaml:"flags"`
	Window     uint16 `json:"window" yaml:"window"`
	Checksum   uint16 `json:"checksum" yaml:"checksum"`
	Urgent     uint16 `json:"urgent" yaml:"urgent"`
}

type payloadRecord struct {
	Length    int    `json:"length" yaml:"length"`
	Data      string `json:"data,omitempty" yaml:"data,omitempty"`
	Truncated int    `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

func (s *Sink) newRecord(raw core.RawFrame, pkt *core.DissectedPacket) record {
	n := pkt.Network
	r := record{
		CaptureLen: raw.CaptureLen,
		OrigLen:    raw.OrigLen,
		Ethernet: ethernetRecord{
			Dst:       pkt.Link.DstMAC.String(),
			Src:       pkt.Link.SrcMAC.String(),
			EtherType: pkt.Link.EtherType,
		},
		IPv4: ipv4Record{
			Version:       n.Version,
			IHL:           n.IHL,
			TOS:           n.TOS,
			TotalLen:      n.TotalLen,
			ID:            n.ID,
			DontFragment:  n.DontFragment,
			MoreFragments: n.MoreFragments,
			FragOffset:    n.FragOffset,
			TTL:           n.TTL,
			Protocol:      n.Protocol,
			Checksum:      n.Checksum,
			Src:           n.SrcIP.String(),
			Dst:           n.DstIP.String(),
		},
		Payload:  payloadRecord{Length: len(pkt.Payload)},
		Warnings: pkt.Warnings.Names(),
	}
	if r.CaptureLen == 0 {
		r.CaptureLen = len(raw.Data)
	}
	if !raw.Timestamp.IsZero() {
		r.Timestamp = raw.Timestamp.UTC().Format(time.RFC3339Nano)
	}

	if t := pkt.Transport; t != nil {
		r.TCP = &tcpRecord{
			SrcPort:    t.SrcPort,
			DstPort:    t.DstPort,
			Seq:        t.Seq,
			Ack:        t.Ack,
			DataOffset: t.DataOffset,
			Flags:      t.Flags.String(),
			Window:     t.Window,
			Checksum:   t.Checksum,
			Urgent:     t.Urgent,
		}
	}

	if s.payload != PayloadNone && len(pkt.Payload) > 0 {
		shown, omitted := s.clip(pkt.Payload)
		if s.payload == PayloadText {
			r.Payload.Data = preview(shown)
		} else {
			r.Payload.Data = hex.EncodeToString(shown)
		}
		r.Payload.Truncated = omitted
	}
	return r
}
