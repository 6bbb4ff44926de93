package pipeline

import (
	"sync/atomic"
)

// Metrics contains per-pipeline counters.
type Metrics struct {
	Source string

	Received    atomic.Uint64
	Dissected   atomic.Uint64
	Truncated   atomic.Uint64
	Malformed   atomic.Uint64
	Warned      atomic.Uint64
	Written     atomic.Uint64
	WriteErrors atomic.Uint64
}

// NewMetrics creates a new metrics instance.
func NewMetrics(source string) *Metrics {
	return &Metrics{Source: source}
}

// Reset resets all counters to zero.
func (m *Metrics) Reset() {
	m.Received.Store(0)
	m.Dissected.Store(0)
	m.Truncated.Store(0)
	m.Malformed.Store(0)
	m.Warned.Store(0)
	m.Written.Store(0)
	m.WriteErrors.Store(0)
}
