package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/dissector/internal/config"
)

func writeTrace(t *testing.T) string {
	t.Helper()
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x11, 0x22, 0x33, 0x44, 0x55, 0x66},
		DstMAC:       net.HardwareAddr{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.IP{192, 168, 1, 10},
		DstIP:    net.IP{10, 0, 0, 1},
	}
	tcp := &layers.TCP{SrcPort: 8080, DstPort: 40000, SYN: true, ACK: true, Window: 512}
	require.NoError(t, tcp.SetNetworkLayerForChecksum(ip))

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, eth, ip, tcp, gopacket.Payload("ping")))

	path := filepath.Join(t.TempDir(), "trace.pcap")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := pcapgo.NewWriter(f)
	require.NoError(t, w.WriteFileHeader(65536, layers.LinkTypeEthernet))
	frame := buf.Bytes()
	require.NoError(t, w.WritePacket(gopacket.CaptureInfo{
		Timestamp:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		CaptureLength: len(frame),
		Length:        len(frame),
	}, frame))
	return path
}

func TestRunDissectFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Capture.Source = config.SourceFile
	cfg.Capture.File.Path = writeTrace(t)
	cfg.Output.Format = "json"
	cfg.Decoder.TrimToTotalLen = true
	cfg.Log.Level = "error"

	var out bytes.Buffer
	require.NoError(t, runDissect(context.Background(), cfg, &out))

	var got struct {
		TCP struct {
			SrcPort uint16 `json:"src_port"`
			Flags   string `json:"flags"`
		} `json:"tcp"`
		Payload struct {
			Length int    `json:"length"`
			Data   string `json:"data"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out.Bytes()), &got))
	assert.Equal(t, uint16(8080), got.TCP.SrcPort)
	assert.Equal(t, "SYN ACK", got.TCP.Flags)
	assert.Equal(t, 4, got.Payload.Length)
	assert.Equal(t, "70696e67", got.Payload.Data)
}

func TestRunDissectMissingFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Capture.Source = config.SourceFile
	cfg.Capture.File.Path = filepath.Join(t.TempDir(), "missing.pcap")
	cfg.Log.Level = "error"

	assert.Error(t, runDissect(context.Background(), cfg, &bytes.Buffer{}))
}

func TestReadCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"read", writeTrace(t), "--format", "text", "--payload", "text", "--trim"})
	require.NoError(t, rootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "[TCP Header]")
	assert.Contains(t, text, "Source Port         : 8080")
	assert.Contains(t, text, "[Application Data] 4 Bytes\nping\n")
}

func TestReadCommandRequiresFile(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"read"})
	assert.Error(t, rootCmd.Execute())
}

func TestValidateCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
dissector:
  capture:
    source: "file"
    file:
      path: "/tmp/trace.pcap"
  pipeline:
    workers: 2
`), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"validate", "-c", cfgPath, "--format", "yaml", "--payload", "none"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "VALID: source=file workers=2 output=yaml/none\n", out.String())
}

func TestValidateCommandInvalid(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dissector:\n  log:\n    level: \"loud\"\n"), 0644))

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"validate", "-c", cfgPath})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "log level"))
}
