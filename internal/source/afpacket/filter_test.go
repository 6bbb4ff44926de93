package afpacket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/bpf"
)

func frame(etherType uint16, protocol byte) []byte {
	b := make([]byte, 54)
	b[12] = byte(etherType >> 8)
	b[13] = byte(etherType)
	b[14] = 0x45
	b[23] = protocol
	return b
}

func TestTCPOnlyProgram(t *testing.T) {
	vm, err := bpf.NewVM(tcpOnlyProgram(40))
	require.NoError(t, err)

	tests := []struct {
		name   string
		packet []byte
		want   int
	}{
		{"ipv4 tcp", frame(0x0800, 6), 40},
		{"ipv4 udp", frame(0x0800, 17), 0},
		{"ipv6", frame(0x86dd, 6), 0},
		{"arp", frame(0x0806, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := vm.Run(tt.packet)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestCompileTCPOnly(t *testing.T) {
	raw, err := compileTCPOnly(65536)
	require.NoError(t, err)
	assert.Len(t, raw, len(tcpOnlyProgram(65536)))
}
