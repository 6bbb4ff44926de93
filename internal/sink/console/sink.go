// Package console renders dissected packets to a writer.
package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"firestige.xyz/dissector/internal/config"
	"firestige.xyz/dissector/internal/core"
	"firestige.xyz/dissector/internal/log"
)

const Name = "console"

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	PayloadHex  = "hex"
	PayloadText = "text"
	PayloadNone = "none"
)

// Sink writes one rendered packet per Write call. Safe for concurrent use.
type Sink struct {
	mu  sync.Mutex
	w   io.Writer
	buf bytes.Buffer

	format     string
	payload    string
	maxPayload int

	written atomic.Uint64
}

func NewSink(w io.Writer, cfg config.OutputConfig) (*Sink, error) {
	s := &Sink{
		w:          w,
		format:     cfg.Format,
		payload:    cfg.Payload,
		maxPayload: cfg.MaxPayloadBytes,
	}
	if s.format == "" {
		s.format = FormatText
	}
	if s.payload == "" {
		s.payload = PayloadHex
	}

	switch s.format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("%w: invalid output format %q, must be text, json or yaml", core.ErrConfigInvalid, s.format)
	}
	switch s.payload {
	case PayloadHex, PayloadText, PayloadNone:
	default:
		return nil, fmt.Errorf("%w: invalid payload mode %q, must be hex, text or none", core.ErrConfigInvalid, s.payload)
	}
	if s.maxPayload < 0 {
		return nil, fmt.Errorf("%w: max payload bytes must be >= 0", core.ErrConfigInvalid)
	}
	return s, nil
}

// Write renders pkt, captured as raw, and writes it out in one call.
func (s *Sink) Write(raw core.RawFrame, pkt *core.DissectedPacket) error {
	if pkt == nil {
		return fmt.Errorf("nil packet")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()
	var err error
	switch s.format {
	case FormatJSON:
		err = s.renderJSON(&s.buf, raw, pkt)
	case FormatYAML:
		err = s.renderYAML(&s.buf, raw, pkt)
	default:
		s.renderText(&s.buf, pkt)
	}
	if err != nil {
		return err
	}

	if _, err := s.w.Write(s.buf.Bytes()); err != nil {
		return fmt.Errorf("console write failed: %w", err)
	}
	s.written.Add(1)
	return nil
}

// Written returns the number of packets written so far.
func (s *Sink) Written() uint64 {
	return s.written.Load()
}

func (s *Sink) Close() error {
	log.GetLogger().WithField("total_written", s.written.Load()).Info("console sink closed")
	return nil
}

func (s *Sink) renderJSON(buf *bytes.Buffer, raw core.RawFrame, pkt *core.DissectedPacket) error {
	data, err := json.Marshal(s.newRecord(raw, pkt))
	if err != nil {
		return fmt.Errorf("json marshal failed: %w", err)
	}
	buf.Write(data)
	buf.WriteByte('\n')
	return nil
}

func (s *Sink) renderYAML(buf *bytes.Buffer, raw core.RawFrame, pkt *core.DissectedPacket) error {
	data, err := yaml.Marshal(s.newRecord(raw, pkt))
	if err != nil {
		return fmt.Errorf("yaml marshal failed: %w", err)
	}
	buf.WriteString("---\n")
	buf.Write(data)
	return nil
}

// clip returns the part of the payload that will be rendered and the
// number of bytes left out.
func (s *Sink) clip(payload []byte) ([]byte, int) {
	if s.maxPayload > 0 && len(payload) > s.maxPayload {
		return payload[:s.maxPayload], len(payload) - s.maxPayload
	}
	return payload, 0
}
