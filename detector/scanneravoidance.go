package detector

import (
	"context"
	"time"

	"github.com/c360/storesight/config"
	"github.com/c360/storesight/dataset"
	"github.com/c360/storesight/pkg/timestamp"
	"github.com/c360/storesight/types"
)

// ScannerAvoidance flags vision recognitions that never see a matching
// scan: a high-confidence prediction at a station with no transaction
// for the predicted SKU inside the join window.
type ScannerAvoidance struct {
	confidenceMin float64
	before        time.Duration
	after         time.Duration
}

// NewScannerAvoidance builds the detector from the resolved thresholds.
func NewScannerAvoidance(cfg config.Detection) *ScannerAvoidance {
	return &ScannerAvoidance{
		confidenceMin: cfg.RecognitionConfidenceMin,
		before:        time.Duration(cfg.RecognitionWindowBefore * float64(time.Second)),
		after:         time.Duration(cfg.RecognitionWindowAfter * float64(time.Second)),
	}
}

func (d *ScannerAvoidance) Name() string { return "scanner_avoidance" }

func (d *ScannerAvoidance) Ordinal() int { return ordinalScannerAvoidance }

// Detect emits one event per unmatched recognition. Recognitions below
// the confidence floor are not evaluated at all, and there is no
// deduplication across recognitions: two predictions of the same absent
// transaction each yield their own event.
func (d *ScannerAvoidance) Detect(_ context.Context, ds *dataset.Dataset) []types.Event {
	var events []types.Event

	for _, rec := range ds.Recognitions {
		if rec.Confidence < d.confidenceMin {
			continue
		}

		start := timestamp.Sub(rec.Timestamp, d.before)
		end := timestamp.Add(rec.Timestamp, d.after)

		matched := false
		for _, tx := range ds.TransactionIndex.Window(rec.StationID, start, end) {
			if tx.SKU == rec.PredictedSKU {
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		events = append(events, types.Event{
			Timestamp: rec.Timestamp,
			Kind:      types.EventScannerAvoidance,
			StationID: rec.StationID,
			Attributes: map[string]any{
				"product_sku": rec.PredictedSKU,
				"confidence":  rec.Confidence,
			},
		})
	}

	return events
}
