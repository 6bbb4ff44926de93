// Package afpacket captures live frames from a Linux AF_PACKET ring.
package afpacket

const Name = "afpacket"

// Options configures the TPACKET_V3 ring.
type Options struct {
	Interface    string
	SnapLen      int
	BufferSizeMB int
	TimeoutMs    int
	FanoutID     uint16 // 0 disables fanout
	TCPOnly      bool
}
