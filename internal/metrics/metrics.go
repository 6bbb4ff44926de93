// Package metrics implements Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FramesTotal counts frames handed to the decoder, by source
	FramesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dissector_frames_total",
			Help: "Total number of captured frames received",
		},
		[]string{"source"},
	)

	// ErrorsTotal counts frames rejected by the decoder, by error kind
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dissector_errors_total",
			Help: "Total number of frames that failed to dissect",
		},
		[]string{"kind"},
	)

	// WarningsTotal counts non-fatal anomalies, by warning name
	WarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dissector_warnings_total",
			Help: "Total number of non-fatal header anomalies",
		},
		[]string{"kind"},
	)

	// TransportTotal counts dissected packets by transport ("tcp" or "none")
	TransportTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dissector_transport_total",
			Help: "Total number of dissected packets by transport protocol",
		},
		[]string{"protocol"},
	)

	// PayloadBytes tracks the application payload size distribution
	PayloadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dissector_payload_bytes",
			Help:    "Size of application payload after all decoded headers",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9), // 1 .. 65536
		},
	)

	// OutputErrorsTotal counts failures writing packets to the sink
	OutputErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dissector_output_errors_total",
			Help: "Total number of packets that could not be written",
		},
	)
)
