package detector

import (
	"context"
	"io"
	"log/slog"

	"github.com/c360/storesight/config"
	"github.com/c360/storesight/dataset"
	"github.com/c360/storesight/metric"
	"github.com/c360/storesight/types"
)

// Detector is one detection procedure over the run context. Detectors
// are read-only over the Dataset and independent of each other, so the
// engine runs them concurrently. Ordinal fixes the detector's position
// in the assembly order; for equal event timestamps the assembler
// preserves lower-ordinal output first.
type Detector interface {
	// Name identifies the detector in logs and metrics labels.
	Name() string

	// Ordinal is the detector's fixed position in the assembly order.
	Ordinal() int

	// Detect scans the dataset and returns candidate events in emission
	// order. Event IDs are left empty for the assembler.
	Detect(ctx context.Context, ds *dataset.Dataset) []types.Event
}

// Assembly ordinals. The order is part of the output contract: it is
// the tie-break for events with equal timestamps.
const (
	ordinalScannerAvoidance = iota
	ordinalBarcodeSwitching
	ordinalWeightDiscrepancy
	ordinalQueueMonitor
	ordinalInventoryReconciler
	ordinalActivityGap
)

// Options carries the shared observability handles. Both are optional;
// detectors run silent without them.
type Options struct {
	Logger  *slog.Logger
	Metrics *metric.Metrics
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// All returns the full detector set in assembly order.
func All(cfg config.Detection, opts Options) []Detector {
	return []Detector{
		NewScannerAvoidance(cfg),
		NewBarcodeSwitching(cfg),
		NewWeightDiscrepancy(cfg, opts),
		NewQueueMonitor(cfg),
		NewInventoryReconciler(cfg),
		NewActivityGap(cfg),
	}
}
