// Package source provides the frame sources feeding the dissector.
package source

import (
	"context"
	"fmt"

	"github.com/google/gopacket/layers"

	"firestige.xyz/dissector/internal/config"
	"firestige.xyz/dissector/internal/core"
	"firestige.xyz/dissector/internal/source/afpacket"
	"firestige.xyz/dissector/internal/source/file"
)

// Source yields captured link-layer frames.
//
// ReadFrame returns io.EOF once an offline source is exhausted. Each
// returned RawFrame owns its Data slice.
type Source interface {
	Start(ctx context.Context) error
	ReadFrame() (core.RawFrame, error)
	LinkType() layers.LinkType
	Stop() error
}

// New builds the source selected by cfg.Source.
func New(cfg config.CaptureConfig) (Source, error) {
	switch cfg.Source {
	case config.SourceFile:
		s, err := file.NewSource(cfg.File.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.SourceAFPacket:
		s, err := afpacket.NewSource(afpacket.Options{
			Interface:    cfg.AFPacket.Interface,
			SnapLen:      cfg.AFPacket.SnapLen,
			BufferSizeMB: cfg.AFPacket.BufferSizeMB,
			TimeoutMs:    cfg.AFPacket.TimeoutMs,
			FanoutID:     cfg.AFPacket.FanoutID,
			TCPOnly:      cfg.AFPacket.TCPOnly,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSource, cfg.Source)
	}
}
