// Package pipeline implements the capture, dissect and output loop.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"firestige.xyz/dissector/internal/core"
	"firestige.xyz/dissector/internal/core/decoder"
	"firestige.xyz/dissector/internal/log"
	"firestige.xyz/dissector/internal/metrics"
	"firestige.xyz/dissector/internal/source"
)

// Sink receives every successfully dissected packet.
type Sink interface {
	Write(raw core.RawFrame, pkt *core.DissectedPacket) error
	Close() error
}

// Pipeline moves frames from a source through the decoder into a sink.
// One capture goroutine feeds a buffered channel drained by Workers
// dissect goroutines.
type Pipeline struct {
	name    string
	source  source.Source
	decoder decoder.Decoder
	sink    Sink
	workers int
	metrics *Metrics

	frames chan core.RawFrame
	wg     sync.WaitGroup
}

// Config contains pipeline configuration.
type Config struct {
	Name       string // source label for metrics and logs
	Source     source.Source
	Decoder    decoder.Decoder
	Sink       Sink
	Workers    int
	BufferSize int // Raw frame channel buffer size
}

// New creates a new pipeline.
func New(cfg Config) *Pipeline {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1024
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Decoder == nil {
		cfg.Decoder = decoder.NewStandardDecoder(decoder.Config{})
	}

	return &Pipeline{
		name:    cfg.Name,
		source:  cfg.Source,
		decoder: cfg.Decoder,
		sink:    cfg.Sink,
		workers: cfg.Workers,
		metrics: NewMetrics(cfg.Name),
		frames:  make(chan core.RawFrame, cfg.BufferSize),
	}
}

// Run starts the source and blocks until it is exhausted or ctx is done.
// A Pipeline runs once.
// Frames already queued are still dissected before Run returns.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.source == nil || p.sink == nil {
		return fmt.Errorf("%w: pipeline requires a source and a sink", core.ErrConfigInvalid)
	}
	if err := p.source.Start(ctx); err != nil {
		return err
	}

	logger := log.GetLogger().WithField("source", p.name)
	logger.WithField("workers", p.workers).Info("pipeline starting")

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.processLoop()
	}

	err := p.captureLoop(ctx)
	close(p.frames)
	p.wg.Wait()

	if stopErr := p.source.Stop(); stopErr != nil {
		logger.WithError(stopErr).Warn("source stop failed")
	}

	s := p.Stats()
	logger.WithFields(map[string]interface{}{
		"received":     s.Received,
		"dissected":    s.Dissected,
		"truncated":    s.Truncated,
		"malformed":    s.Malformed,
		"warned":       s.Warned,
		"written":      s.Written,
		"write_errors": s.WriteErrors,
	}).Info("pipeline stopped")
	return err
}

// captureLoop reads frames until EOF, cancellation or a read error.
func (p *Pipeline) captureLoop(ctx context.Context) error {
	for {
		raw, err := p.source.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("capture failed: %w", err)
		}

		p.metrics.Received.Add(1)
		metrics.FramesTotal.WithLabelValues(p.name).Inc()

		select {
		case p.frames <- raw:
		case <-ctx.Done():
			return nil
		}
	}
}

func (p *Pipeline) processLoop() {
	defer p.wg.Done()

	for raw := range p.frames {
		if err := p.processFrame(raw); err != nil {
			log.GetLogger().WithError(err).Debug("frame processing failed")
		}
	}
}

func (p *Pipeline) processFrame(raw core.RawFrame) error {
	pkt, err := p.decoder.Decode(raw)
	if err != nil {
		kind := core.ErrorKind(err)
		switch kind {
		case "truncated":
			p.metrics.Truncated.Add(1)
		case "malformed":
			p.metrics.Malformed.Add(1)
		}
		metrics.ErrorsTotal.WithLabelValues(kind).Inc()
		return fmt.Errorf("dissect failed: %w", err)
	}
	p.metrics.Dissected.Add(1)

	if pkt.Warnings != 0 {
		p.metrics.Warned.Add(1)
		for _, name := range pkt.Warnings.Names() {
			metrics.WarningsTotal.WithLabelValues(name).Inc()
		}
	}
	if pkt.Transport != nil {
		metrics.TransportTotal.WithLabelValues("tcp").Inc()
	} else {
		metrics.TransportTotal.WithLabelValues("none").Inc()
	}
	metrics.PayloadBytes.Observe(float64(len(pkt.Payload)))

	if err := p.sink.Write(raw, &pkt); err != nil {
		p.metrics.WriteErrors.Add(1)
		metrics.OutputErrorsTotal.Inc()
		return fmt.Errorf("write failed: %w", err)
	}
	p.metrics.Written.Add(1)
	return nil
}

// Stats returns pipeline statistics.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Received:    p.metrics.Received.Load(),
		Dissected:   p.metrics.Dissected.Load(),
		Truncated:   p.metrics.Truncated.Load(),
		Malformed:   p.metrics.Malformed.Load(),
		Warned:      p.metrics.Warned.Load(),
		Written:     p.metrics.Written.Load(),
		WriteErrors: p.metrics.WriteErrors.Load(),
	}
}

// Stats represents pipeline statistics.
type Stats struct {
	Received    uint64
	Dissected   uint64
	Truncated   uint64
	Malformed   uint64
	Warned      uint64
	Written     uint64
	WriteErrors uint64
}
