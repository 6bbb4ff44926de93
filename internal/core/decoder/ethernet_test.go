package decoder

import (
	"errors"
	"testing"

	"firestige.xyz/dissector/internal/core"
)

func TestDecodeEthernetBasic(t *testing.T) {
	// Simple Ethernet frame: Dst MAC, Src MAC, EtherType
	data := []byte{
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, // Dst MAC
		0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, // Src MAC
		0x08, 0x00, // EtherType: IPv4
		0x45, 0x00, // Payload (start of IP header)
	}

	eth, next, err := decodeEthernet(newCursor(data, len(data)))
	if err != nil {
		t.Fatalf("decodeEthernet failed: %v", err)
	}

	// Check Dst MAC
	expectedDstMAC := core.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	if eth.DstMAC != expectedDstMAC {
		t.Errorf("Expected DstMAC %v, got %v", expectedDstMAC, eth.DstMAC)
	}

	// Check Src MAC
	expectedSrcMAC := core.HardwareAddr{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	if eth.SrcMAC != expectedSrcMAC {
		t.Errorf("Expected SrcMAC %v, got %v", expectedSrcMAC, eth.SrcMAC)
	}

	// Check EtherType
	if eth.EtherType != 0x0800 {
		t.Errorf("Expected EtherType 0x0800, got 0x%04x", eth.EtherType)
	}

	if next != 14 {
		t.Errorf("Expected next offset 14, got %d", next)
	}
}

func TestDecodeEthernetTypeByteOrder(t *testing.T) {
	data := make([]byte, 14)
	data[12], data[13] = 0x86, 0xDD // IPv6

	eth, _, err := decodeEthernet(newCursor(data, len(data)))
	if err != nil {
		t.Fatalf("decodeEthernet failed: %v", err)
	}
	if eth.EtherType != 0x86DD {
		t.Errorf("Expected EtherType 0x86dd, got 0x%04x", eth.EtherType)
	}
}

func TestDecodeEthernetTooShort(t *testing.T) {
	for n := 0; n < 14; n++ {
		data := make([]byte, 14)
		_, _, err := decodeEthernet(newCursor(data, n))
		if !errors.Is(err, core.ErrTruncatedBuffer) {
			t.Errorf("length %d: expected ErrTruncatedBuffer, got %v", n, err)
		}
	}
}
