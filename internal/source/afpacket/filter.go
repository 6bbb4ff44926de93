package afpacket

import (
	"golang.org/x/net/bpf"
)

const (
	offEtherType  = 12
	offIPProtocol = 14 + 9
	etherTypeIPv4 = 0x0800
	protocolTCP   = 6
)

// tcpOnlyProgram accepts IPv4/TCP frames, truncated to snapLen, and
// drops everything else in the kernel.
func tcpOnlyProgram(snapLen int) []bpf.Instruction {
	return []bpf.Instruction{
		bpf.LoadAbsolute{Off: offEtherType, Size: 2},
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: etherTypeIPv4, SkipFalse: 3},
		bpf.LoadAbsolute{Off: offIPProtocol, Size: 1},
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: protocolTCP, SkipFalse: 1},
		bpf.RetConstant{Val: uint32(snapLen)},
		bpf.RetConstant{Val: 0},
	}
}

func compileTCPOnly(snapLen int) ([]bpf.RawInstruction, error) {
	return bpf.Assemble(tcpOnlyProgram(snapLen))
}
