package console

import (
	"bytes"
	"fmt"

	"firestige.xyz/dissector/internal/core"
)

const bytesPerLine = 16

func field(buf *bytes.Buffer, name string, format string, args ...interface{}) {
	fmt.Fprintf(buf, "   |-%-20s: ", name)
	fmt.Fprintf(buf, format, args...)
	buf.WriteByte('\n')
}

func (s *Sink) renderText(buf *bytes.Buffer, pkt *core.DissectedPacket) {
	title := "Packet"
	if pkt.Transport != nil {
		title = "TCP Packet"
	}
	fmt.Fprintf(buf, "\n***********************%s*************************\n", title)

	l := pkt.Link
	buf.WriteString("\n[Ethernet Header]\n")
	field(buf, "Destination Address", "%s", l.DstMAC)
	field(buf, "Source Address", "%s", l.SrcMAC)
	field(buf, "Protocol", "0x%04X", l.EtherType)

	n := pkt.Network
	buf.WriteString("\n[IP Header]\n")
	field(buf, "IP Version", "%d", n.Version)
	field(buf, "IP Header Length", "%d DWORDS (%d Bytes)", n.IHL, n.HeaderLen())
	field(buf, "Type Of Service", "%d", n.TOS)
	field(buf, "IP Total Length", "%d Bytes", n.TotalLen)
	field(buf, "Identification", "%d", n.ID)
	field(buf, "Fragment", "DF=%t MF=%t Offset=%d", n.DontFragment, n.MoreFragments, n.FragOffset)
	field(buf, "TTL", "%d", n.TTL)
	field(buf, "Protocol", "%d", n.Protocol)
	field(buf, "Checksum", "0x%04X", n.Checksum)
	field(buf, "Source IP", "%s", n.SrcIP)
	field(buf, "Destination IP", "%s", n.DstIP)

	if t := pkt.Transport; t != nil {
		buf.WriteString("\n[TCP Header]\n")
		field(buf, "Source Port", "%d", t.SrcPort)
		field(buf, "Destination Port", "%d", t.DstPort)
		field(buf, "Sequence Number", "%d", t.Seq)
		field(buf, "Acknowledge Number", "%d", t.Ack)
		field(buf, "Header Length", "%d DWORDS (%d Bytes)", t.DataOffset, t.HeaderLen())
		field(buf, "Flags", "%s", t.Flags)
		field(buf, "Window", "%d", t.Window)
		field(buf, "Checksum", "0x%04X", t.Checksum)
		field(buf, "Urgent Pointer", "%d", t.Urgent)
	}

	if pkt.Warnings != 0 {
		buf.WriteString("\n[Warnings]\n")
		for _, name := range pkt.Warnings.Names() {
			fmt.Fprintf(buf, "   |-%s\n", name)
		}
	}

	if s.payload == PayloadNone || len(pkt.Payload) == 0 {
		return
	}

	shown, omitted := s.clip(pkt.Payload)
	fmt.Fprintf(buf, "\n[Application Data] %d Bytes\n", len(pkt.Payload))
	if s.payload == PayloadText {
		buf.WriteString(preview(shown))
		buf.WriteByte('\n')
	} else {
		hexDump(buf, shown)
	}
	if omitted > 0 {
		fmt.Fprintf(buf, "... %d more bytes\n", omitted)
	}
}

// hexDump writes data as rows of 16 upper-case hex octets.
func hexDump(buf *bytes.Buffer, data []byte) {
	for i, b := range data {
		fmt.Fprintf(buf, "%.2X ", b)
		if (i+1)%bytesPerLine == 0 || i == len(data)-1 {
			buf.WriteByte('\n')
		}
	}
}

// preview renders printable ASCII as-is and everything else as '.'.
func preview(data []byte) string {
	out := make([]byte, len(data))
	for i, b := range data {
		if b >= 0x20 && b < 0x7f {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
