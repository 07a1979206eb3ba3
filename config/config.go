package config

import (
	"fmt"

	"github.com/c360/storesight/errors"
)

// Config represents the complete run configuration: detection thresholds,
// sink settings and the optional metrics listener. It is resolved once
// before detection starts and treated as immutable for the run.
type Config struct {
	Detection Detection `json:"detection" yaml:"detection"`
	Sink      Sink      `json:"sink"      yaml:"sink"`
	Metrics   Metrics   `json:"metrics"   yaml:"metrics"`
}

// Detection holds the detector thresholds and join windows.
// All durations are in seconds, matching the sensor export units.
type Detection struct {
	// RecognitionConfidenceMin is the floor below which vision predictions
	// are not evaluated. Domain [0, 1].
	RecognitionConfidenceMin float64 `json:"recognition_confidence_min" yaml:"recognition_confidence_min"`

	// WeightTolerancePercent is the allowed deviation from catalog weight,
	// as a percentage of the expected weight.
	WeightTolerancePercent float64 `json:"weight_tolerance_percent" yaml:"weight_tolerance_percent"`

	// QueueLengthThreshold triggers LongQueueLength at or above this count.
	QueueLengthThreshold int `json:"queue_length_threshold" yaml:"queue_length_threshold"`

	// WaitTimeThreshold triggers LongWaitTime at or above this many seconds.
	WaitTimeThreshold float64 `json:"wait_time_threshold" yaml:"wait_time_threshold"`

	// InventoryDiscrepancyThreshold is the minimum unit delta treated as
	// significant rather than noise.
	InventoryDiscrepancyThreshold int `json:"inventory_discrepancy_threshold" yaml:"inventory_discrepancy_threshold"`

	// InventoryCheckInterval is the nominal snapshot cadence in seconds.
	// Retained from the historical configuration surface; the pair-wise
	// snapshot diff does not consult it.
	InventoryCheckInterval float64 `json:"inventory_check_interval" yaml:"inventory_check_interval"`

	// StationInactiveThreshold is the per-station activity gap, in seconds,
	// at or above which a crash is reported.
	StationInactiveThreshold float64 `json:"station_inactive_threshold" yaml:"station_inactive_threshold"`

	// RecognitionWindowBefore / RecognitionWindowAfter bound the
	// scanner-avoidance join: a recognition at t matches transactions in
	// [t-before, t+after], both ends inclusive.
	RecognitionWindowBefore float64 `json:"recognition_window_before" yaml:"recognition_window_before"`
	RecognitionWindowAfter  float64 `json:"recognition_window_after"  yaml:"recognition_window_after"`

	// TransactionWindow bounds the barcode-switching join: a transaction at
	// t matches recognitions in [t-w, t+w], both ends inclusive.
	TransactionWindow float64 `json:"transaction_window" yaml:"transaction_window"`

	// Workers caps the detector pool size. Zero means one worker per
	// detector.
	Workers int `json:"workers" yaml:"workers"`
}

// Sink configures where the assembled event log is written.
type Sink struct {
	// Directory and FilePrefix locate the output file; Format selects
	// jsonl (one event per line) or json (pretty-printed).
	Directory  string `json:"directory"   yaml:"directory"`
	FilePrefix string `json:"file_prefix" yaml:"file_prefix"`
	Format     string `json:"format"      yaml:"format"`

	// NATSURL and NATSSubject enable the optional NATS publisher sink
	// when both are set.
	NATSURL     string `json:"nats_url"     yaml:"nats_url"`
	NATSSubject string `json:"nats_subject" yaml:"nats_subject"`
}

// Metrics configures the optional Prometheus listener.
type Metrics struct {
	// ListenAddr enables the /metrics endpoint when non-empty,
	// e.g. ":9090".
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
}

// Default returns the configuration with all documented defaults applied.
func Default() *Config {
	return &Config{
		Detection: Detection{
			RecognitionConfidenceMin:      0.7,
			WeightTolerancePercent:        10,
			QueueLengthThreshold:          5,
			WaitTimeThreshold:             300,
			InventoryDiscrepancyThreshold: 2,
			InventoryCheckInterval:        600,
			StationInactiveThreshold:      180,
			RecognitionWindowBefore:       5,
			RecognitionWindowAfter:        10,
			TransactionWindow:             10,
		},
		Sink: Sink{
			Directory:  "output",
			FilePrefix: "events",
			Format:     "jsonl",
		},
	}
}

// Validate checks every field against its domain. A violation is fatal:
// an inconsistent configuration can silently under- or over-report events,
// so the run aborts before any detection begins.
func (c *Config) Validate() error {
	if err := c.Detection.Validate(); err != nil {
		return err
	}
	return c.Sink.Validate()
}

// Validate checks the detection thresholds and windows
func (d *Detection) Validate() error {
	if d.RecognitionConfidenceMin < 0 || d.RecognitionConfidenceMin > 1 {
		return invalid("recognition_confidence_min must be within [0, 1], got %g", d.RecognitionConfidenceMin)
	}
	if d.WeightTolerancePercent <= 0 {
		return invalid("weight_tolerance_percent must be positive, got %g", d.WeightTolerancePercent)
	}
	if d.QueueLengthThreshold < 1 {
		return invalid("queue_length_threshold must be at least 1, got %d", d.QueueLengthThreshold)
	}
	if d.WaitTimeThreshold <= 0 {
		return invalid("wait_time_threshold must be positive, got %g", d.WaitTimeThreshold)
	}
	if d.InventoryDiscrepancyThreshold < 0 {
		return invalid("inventory_discrepancy_threshold cannot be negative, got %d", d.InventoryDiscrepancyThreshold)
	}
	if d.InventoryCheckInterval <= 0 {
		return invalid("inventory_check_interval must be positive, got %g", d.InventoryCheckInterval)
	}
	if d.StationInactiveThreshold <= 0 {
		return invalid("station_inactive_threshold must be positive, got %g", d.StationInactiveThreshold)
	}
	if d.RecognitionWindowBefore < 0 {
		return invalid("recognition_window_before cannot be negative, got %g", d.RecognitionWindowBefore)
	}
	if d.RecognitionWindowAfter < 0 {
		return invalid("recognition_window_after cannot be negative, got %g", d.RecognitionWindowAfter)
	}
	if d.TransactionWindow < 0 {
		return invalid("transaction_window cannot be negative, got %g", d.TransactionWindow)
	}
	if d.Workers < 0 {
		return invalid("workers cannot be negative, got %d", d.Workers)
	}
	return nil
}

// Validate checks the sink settings
func (s *Sink) Validate() error {
	if s.Directory == "" {
		return invalid("sink directory is required")
	}
	if s.Format != "jsonl" && s.Format != "json" {
		return invalid("sink format must be jsonl or json, got %q", s.Format)
	}
	// NATS sink is all-or-nothing
	if (s.NATSURL == "") != (s.NATSSubject == "") {
		return invalid("nats_url and nats_subject must be set together")
	}
	return nil
}

// invalid builds a fatal configuration error
func invalid(format string, args ...any) error {
	return errors.WrapFatal(errors.ErrInvalidConfig, "Config", "Validate",
		fmt.Sprintf(format, args...))
}
