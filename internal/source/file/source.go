// Package file reads frames from pcap and pcapng capture files.
package file

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"firestige.xyz/dissector/internal/core"
	"firestige.xyz/dissector/internal/log"
)

const Name = "file"

// pcapng files open with a Section Header Block, whose type is
// palindromic so it reads the same in either byte order.
var ngMagic = []byte{0x0a, 0x0d, 0x0d, 0x0a}

type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

type Source struct {
	path   string
	f      *os.File
	reader packetReader
}

func NewSource(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: file source requires a path", core.ErrConfigInvalid)
	}
	return &Source{path: path}, nil
}

func (s *Source) Start(ctx context.Context) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open capture file %s: %w", s.path, err)
	}

	br := bufio.NewReader(f)
	magic, err := br.Peek(4)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to read capture file header %s: %w", s.path, err)
	}

	var r packetReader
	if bytes.Equal(magic, ngMagic) {
		r, err = pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
	} else {
		r, err = pcapgo.NewReader(br)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to parse capture file %s: %w", s.path, err)
	}

	if r.LinkType() != layers.LinkTypeEthernet {
		f.Close()
		return fmt.Errorf("unsupported link type %s in %s", r.LinkType(), s.path)
	}

	s.f = f
	s.reader = r
	log.GetLogger().WithField("path", s.path).WithField("ng", bytes.Equal(magic, ngMagic)).Info("capture file opened")
	return nil
}

func (s *Source) ReadFrame() (core.RawFrame, error) {
	if s.reader == nil {
		return core.RawFrame{}, core.ErrSourceNotStarted
	}

	data, ci, err := s.reader.ReadPacketData()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return core.RawFrame{}, io.EOF
		}
		return core.RawFrame{}, fmt.Errorf("failed to read packet: %w", err)
	}

	return core.RawFrame{
		Data:           data,
		CaptureLen:     ci.CaptureLength,
		OrigLen:        ci.Length,
		Timestamp:      ci.Timestamp,
		InterfaceIndex: ci.InterfaceIndex,
	}, nil
}

func (s *Source) LinkType() layers.LinkType {
	if s.reader == nil {
		return layers.LinkTypeEthernet
	}
	return s.reader.LinkType()
}

func (s *Source) Stop() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	s.reader = nil
	return err
}
