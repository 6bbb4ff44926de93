package pipeline

import (
	"firestige.xyz/dissector/internal/core/decoder"
	"firestige.xyz/dissector/internal/source"
)

// Builder provides a fluent interface for building pipelines.
type Builder struct {
	config Config
}

// NewBuilder creates a new pipeline builder.
func NewBuilder() *Builder {
	return &Builder{
		config: Config{
			Workers:    1,
			BufferSize: 1024,
		},
	}
}

// WithName sets the source label used in logs and metrics.
func (b *Builder) WithName(name string) *Builder {
	b.config.Name = name
	return b
}

func (b *Builder) WithSource(s source.Source) *Builder {
	b.config.Source = s
	return b
}

func (b *Builder) WithDecoder(d decoder.Decoder) *Builder {
	b.config.Decoder = d
	return b
}

func (b *Builder) WithSink(s Sink) *Builder {
	b.config.Sink = s
	return b
}

// WithWorkers sets the number of dissect goroutines.
func (b *Builder) WithWorkers(n int) *Builder {
	b.config.Workers = n
	return b
}

// WithBufferSize sets the raw frame channel buffer size.
func (b *Builder) WithBufferSize(size int) *Builder {
	b.config.BufferSize = size
	return b
}

// Build creates the pipeline.
func (b *Builder) Build() *Pipeline {
	return New(b.config)
}
