package decoder

import (
	"errors"
	"net/netip"
	"testing"

	"firestige.xyz/dissector/internal/core"
)

func TestDecodeIPv4Basic(t *testing.T) {
	// Minimal IPv4 header (20 bytes)
	data := []byte{
		0x45,                   // Version 4, IHL 5
		0x10,                   // DSCP, ECN
		0x00, 0x18,             // Total Length: 24 bytes
		0x12, 0x34,             // Identification
		0x40, 0x00,             // Flags: DF, Fragment Offset 0
		0x40,                   // TTL: 64
		0x11,                   // Protocol: UDP (17)
		0xBE, 0xEF,             // Checksum
		192, 168, 1, 1,         // Src IP
		192, 168, 1, 2,         // Dst IP
		0x01, 0x02, 0x03, 0x04, // Payload
	}

	ip, next, warn, err := decodeIPv4(newCursor(data, len(data)), 0)
	if err != nil {
		t.Fatalf("decodeIPv4 failed: %v", err)
	}

	if ip.Version != 4 {
		t.Errorf("Expected version 4, got %d", ip.Version)
	}
	if ip.IHL != 5 || ip.HeaderLen() != 20 {
		t.Errorf("Expected IHL 5 (20 bytes), got %d (%d bytes)", ip.IHL, ip.HeaderLen())
	}
	if ip.TOS != 0x10 {
		t.Errorf("Expected TOS 0x10, got 0x%02x", ip.TOS)
	}
	if ip.TotalLen != 24 {
		t.Errorf("Expected TotalLen 24, got %d", ip.TotalLen)
	}
	if ip.ID != 0x1234 {
		t.Errorf("Expected ID 0x1234, got 0x%04x", ip.ID)
	}
	if !ip.DontFragment || ip.MoreFragments || ip.FragOffset != 0 {
		t.Errorf("Unexpected fragment fields DF=%v MF=%v off=%d", ip.DontFragment, ip.MoreFragments, ip.FragOffset)
	}
	if ip.TTL != 64 {
		t.Errorf("Expected TTL 64, got %d", ip.TTL)
	}
	if ip.Protocol != 17 {
		t.Errorf("Expected protocol 17, got %d", ip.Protocol)
	}
	if ip.Checksum != 0xBEEF {
		t.Errorf("Expected checksum 0xbeef, got 0x%04x", ip.Checksum)
	}

	expectedSrcIP := netip.MustParseAddr("192.168.1.1")
	if ip.SrcIP != expectedSrcIP {
		t.Errorf("Expected SrcIP %v, got %v", expectedSrcIP, ip.SrcIP)
	}
	expectedDstIP := netip.MustParseAddr("192.168.1.2")
	if ip.DstIP != expectedDstIP {
		t.Errorf("Expected DstIP %v, got %v", expectedDstIP, ip.DstIP)
	}

	if next != 20 {
		t.Errorf("Expected next offset 20, got %d", next)
	}
	if warn != 0 {
		t.Errorf("Expected no warnings, got %v", warn)
	}
}

func TestDecodeIPv4Fragment(t *testing.T) {
	data := make([]byte, 20)
	data[0] = 0x45
	data[2], data[3] = 0x00, 0x14
	data[6], data[7] = 0x20, 0xB9 // MF, offset 185

	ip, _, _, err := decodeIPv4(newCursor(data, len(data)), 0)
	if err != nil {
		t.Fatalf("decodeIPv4 failed: %v", err)
	}
	if ip.DontFragment || !ip.MoreFragments || ip.FragOffset != 185 {
		t.Errorf("Unexpected fragment fields DF=%v MF=%v off=%d", ip.DontFragment, ip.MoreFragments, ip.FragOffset)
	}
}

func TestDecodeIPv4WithOptions(t *testing.T) {
	// IHL 6: 20 byte header + 4 bytes of options, then payload
	data := make([]byte, 24+2)
	data[0] = 0x46
	data[2], data[3] = 0x00, 0x1A // Total Length: 26
	data[9] = 6
	data[20], data[21], data[22], data[23] = 0x94, 0x04, 0x00, 0x00 // Router Alert

	ip, next, _, err := decodeIPv4(newCursor(data, len(data)), 0)
	if err != nil {
		t.Fatalf("decodeIPv4 failed: %v", err)
	}
	if ip.HeaderLen() != 24 {
		t.Errorf("Expected header length 24, got %d", ip.HeaderLen())
	}
	if next != 24 {
		t.Errorf("Expected next offset 24, got %d", next)
	}
}

func TestDecodeIPv4IHLBelowMinimum(t *testing.T) {
	for ihl := byte(0); ihl < 5; ihl++ {
		data := make([]byte, 60)
		data[0] = 0x40 | ihl

		_, _, _, err := decodeIPv4(newCursor(data, len(data)), 0)
		if !errors.Is(err, core.ErrMalformedHeader) {
			t.Errorf("IHL %d: expected ErrMalformedHeader, got %v", ihl, err)
		}
	}
}

func TestDecodeIPv4Truncated(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		_, _, _, err := decodeIPv4(newCursor(nil, 0), 0)
		if !errors.Is(err, core.ErrTruncatedBuffer) {
			t.Errorf("Expected ErrTruncatedBuffer, got %v", err)
		}
	})

	t.Run("ShorterThanIHL", func(t *testing.T) {
		// IHL 15 claims 60 bytes, only 40 captured
		data := make([]byte, 40)
		data[0] = 0x4F

		_, _, _, err := decodeIPv4(newCursor(data, len(data)), 0)
		if !errors.Is(err, core.ErrTruncatedBuffer) {
			t.Errorf("Expected ErrTruncatedBuffer, got %v", err)
		}
	})
}

func TestDecodeIPv4Warnings(t *testing.T) {
	tests := []struct {
		name     string
		version  byte
		totalLen uint16
		want     core.Warnings
	}{
		{"Consistent", 4, 20, 0},
		{"ExceedsCapture", 4, 1500, core.WarnTotalLenExceedsCapture},
		{"BelowHeader", 4, 10, core.WarnTotalLenBelowHeader},
		{"WrongVersion", 6, 20, core.WarnNotIPv4Version},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, 20)
			data[0] = tt.version<<4 | 5
			data[2], data[3] = byte(tt.totalLen>>8), byte(tt.totalLen)

			_, _, warn, err := decodeIPv4(newCursor(data, len(data)), 0)
			if err != nil {
				t.Fatalf("decodeIPv4 failed: %v", err)
			}
			if warn != tt.want {
				t.Errorf("Expected warnings %v, got %v", tt.want, warn)
			}
		})
	}
}
