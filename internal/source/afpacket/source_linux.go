//go:build linux

package afpacket

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/gopacket/afpacket"
	"github.com/google/gopacket/layers"

	"firestige.xyz/dissector/internal/core"
	"firestige.xyz/dissector/internal/log"
)

type Source struct {
	handle *afpacket.TPacket
	ctx    context.Context

	device    string
	snapLen   int
	frameSize int
	blockSize int
	numBlocks int
	timeout   time.Duration
	fanoutID  uint16
	tcpOnly   bool
}

func NewSource(opts Options) (*Source, error) {
	if opts.Interface == "" {
		return nil, fmt.Errorf("%w: afpacket source requires an interface", core.ErrConfigInvalid)
	}
	frameSize, blockSize, numBlocks, err := recomputeSize(opts.BufferSizeMB, opts.SnapLen, os.Getpagesize())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConfigInvalid, err)
	}
	return &Source{
		device:    opts.Interface,
		snapLen:   opts.SnapLen,
		frameSize: frameSize,
		blockSize: blockSize,
		numBlocks: numBlocks,
		timeout:   time.Duration(opts.TimeoutMs) * time.Millisecond,
		fanoutID:  opts.FanoutID,
		tcpOnly:   opts.TCPOnly,
	}, nil
}

func (s *Source) Start(ctx context.Context) error {
	tp, err := afpacket.NewTPacket(
		afpacket.OptInterface(s.device),
		afpacket.OptFrameSize(s.frameSize),
		afpacket.OptBlockSize(s.blockSize),
		afpacket.OptNumBlocks(s.numBlocks),
		afpacket.OptPollTimeout(s.timeout),
		afpacket.SocketRaw,
		afpacket.TPacketVersion3,
	)
	if err != nil {
		return fmt.Errorf("failed to open afpacket on %s: %w", s.device, err)
	}

	if s.fanoutID > 0 {
		if err := tp.SetFanout(afpacket.FanoutHashWithDefrag, s.fanoutID); err != nil {
			tp.Close()
			return fmt.Errorf("failed to join fanout group %d: %w", s.fanoutID, err)
		}
	}

	if s.tcpOnly {
		prog, err := compileTCPOnly(s.snapLen)
		if err != nil {
			tp.Close()
			return fmt.Errorf("failed to assemble tcp filter: %w", err)
		}
		if err := tp.SetBPF(prog); err != nil {
			tp.Close()
			return fmt.Errorf("failed to attach tcp filter: %w", err)
		}
	}

	s.handle = tp
	s.ctx = ctx
	log.GetLogger().WithFields(map[string]interface{}{
		"device":     s.device,
		"frame_size": s.frameSize,
		"block_size": s.blockSize,
		"num_blocks": s.numBlocks,
		"fanout_id":  s.fanoutID,
		"tcp_only":   s.tcpOnly,
	}).Info("afpacket source started")
	return nil
}

// ReadFrame blocks until a frame arrives or the start context is done.
func (s *Source) ReadFrame() (core.RawFrame, error) {
	if s.handle == nil {
		return core.RawFrame{}, core.ErrSourceNotStarted
	}

	for {
		data, ci, err := s.handle.ReadPacketData()
		if err == nil {
			return core.RawFrame{
				Data:           data,
				CaptureLen:     ci.CaptureLength,
				OrigLen:        ci.Length,
				Timestamp:      ci.Timestamp,
				InterfaceIndex: ci.InterfaceIndex,
			}, nil
		}
		if !errors.Is(err, afpacket.ErrTimeout) && !errors.Is(err, afpacket.ErrPoll) {
			return core.RawFrame{}, fmt.Errorf("failed to read packet: %w", err)
		}
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			return core.RawFrame{}, ctxErr
		}
	}
}

func (s *Source) LinkType() layers.LinkType {
	return layers.LinkTypeEthernet
}

func (s *Source) Stop() error {
	if s.handle == nil {
		return nil
	}
	if _, v3, err := s.handle.SocketStats(); err == nil {
		log.GetLogger().WithFields(map[string]interface{}{
			"packets": v3.Packets(),
			"drops":   v3.Drops(),
			"freezes": v3.QueueFreezes(),
		}).Info("afpacket source stopped")
	}
	s.handle.Close()
	s.handle = nil
	return nil
}
