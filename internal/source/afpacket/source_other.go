//go:build !linux

package afpacket

import (
	"context"
	"errors"

	"github.com/google/gopacket/layers"

	"firestige.xyz/dissector/internal/core"
)

var errUnsupported = errors.New("afpacket capture is only supported on linux")

type Source struct{}

func NewSource(opts Options) (*Source, error) {
	return nil, errUnsupported
}

func (s *Source) Start(ctx context.Context) error { return errUnsupported }
func (s *Source) ReadFrame() (core.RawFrame, error) { return core.RawFrame{}, errUnsupported }
func (s *Source) LinkType() layers.LinkType { return layers.LinkTypeEthernet }
func (s *Source) Stop() error { return nil }
