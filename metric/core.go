package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the engine-level metrics for a StoreSight run.
type Metrics struct {
	// Input metrics
	RecordsLoaded  *prometheus.CounterVec
	RecordsSkipped *prometheus.CounterVec

	// Detection metrics
	EventsDetected   *prometheus.CounterVec
	DetectorDuration *prometheus.HistogramVec
	UnknownSKUs      prometheus.Counter

	// Sink metrics
	SinkWrites prometheus.Counter
	SinkErrors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all engine metrics
func NewMetrics() *Metrics {
	return &Metrics{
		RecordsLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storesight",
				Subsystem: "input",
				Name:      "records_loaded_total",
				Help:      "Total number of records loaded per stream",
			},
			[]string{"stream"},
		),

		RecordsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storesight",
				Subsystem: "input",
				Name:      "records_skipped_total",
				Help:      "Total number of malformed records excluded per stream",
			},
			[]string{"stream"},
		),

		EventsDetected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storesight",
				Subsystem: "detection",
				Name:      "events_total",
				Help:      "Total number of events detected per event kind",
			},
			[]string{"kind"},
		),

		DetectorDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "storesight",
				Subsystem: "detection",
				Name:      "detector_duration_seconds",
				Help:      "Detector execution duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"detector"},
		),

		UnknownSKUs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "storesight",
				Subsystem: "detection",
				Name:      "unknown_skus_total",
				Help:      "Total number of transactions referencing SKUs absent from the catalog",
			},
		),

		SinkWrites: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "storesight",
				Subsystem: "sink",
				Name:      "writes_total",
				Help:      "Total number of events written to sinks",
			},
		),

		SinkErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storesight",
				Subsystem: "sink",
				Name:      "errors_total",
				Help:      "Total number of sink write errors",
			},
			[]string{"sink"},
		),
	}
}

// RecordLoaded increments the loaded-record counter for a stream
func (m *Metrics) RecordLoaded(stream string, n int) {
	m.RecordsLoaded.WithLabelValues(stream).Add(float64(n))
}

// RecordSkipped increments the skipped-record counter for a stream
func (m *Metrics) RecordSkipped(stream string, n int) {
	m.RecordsSkipped.WithLabelValues(stream).Add(float64(n))
}

// RecordEvent increments the detected-event counter for an event kind
func (m *Metrics) RecordEvent(kind string) {
	m.EventsDetected.WithLabelValues(kind).Inc()
}

// RecordDetectorDuration records a detector's execution time
func (m *Metrics) RecordDetectorDuration(detector string, duration time.Duration) {
	m.DetectorDuration.WithLabelValues(detector).Observe(duration.Seconds())
}

// RecordUnknownSKU increments the unknown-SKU counter
func (m *Metrics) RecordUnknownSKU() {
	m.UnknownSKUs.Inc()
}

// RecordSinkWrite adds written events to the sink counter
func (m *Metrics) RecordSinkWrite(n int) {
	m.SinkWrites.Add(float64(n))
}

// RecordSinkError increments the sink error counter
func (m *Metrics) RecordSinkError(sink string) {
	m.SinkErrors.WithLabelValues(sink).Inc()
}
