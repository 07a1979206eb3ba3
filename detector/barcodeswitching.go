package detector

import (
	"context"
	"time"

	"github.com/c360/storesight/config"
	"github.com/c360/storesight/dataset"
	"github.com/c360/storesight/pkg/timestamp"
	"github.com/c360/storesight/types"
)

// BarcodeSwitching flags scans whose best vision match disagrees on
// SKU: the customer scanned one product while the camera saw another.
type BarcodeSwitching struct {
	confidenceMin float64
	window        time.Duration
}

// NewBarcodeSwitching builds the detector from the resolved thresholds.
func NewBarcodeSwitching(cfg config.Detection) *BarcodeSwitching {
	return &BarcodeSwitching{
		confidenceMin: cfg.RecognitionConfidenceMin,
		window:        time.Duration(cfg.TransactionWindow * float64(time.Second)),
	}
}

func (d *BarcodeSwitching) Name() string { return "barcode_switching" }

func (d *BarcodeSwitching) Ordinal() int { return ordinalBarcodeSwitching }

// Detect joins each transaction against the recognitions at its station
// within a symmetric window, both ends inclusive. Among the matches the
// highest-confidence one wins (earliest on ties, which the sorted index
// guarantees); only a winning match that clears the confidence floor
// and disagrees on SKU produces an event. An agreeing match produces
// nothing: that is the complement of the scanner-avoidance predicate
// over the same join.
func (d *BarcodeSwitching) Detect(_ context.Context, ds *dataset.Dataset) []types.Event {
	var events []types.Event

	for _, tx := range ds.Transactions {
		start := timestamp.Sub(tx.Timestamp, d.window)
		end := timestamp.Add(tx.Timestamp, d.window)

		matches := ds.RecognitionIndex.Window(tx.StationID, start, end)
		if len(matches) == 0 {
			continue
		}

		best := matches[0]
		for _, rec := range matches[1:] {
			if rec.Confidence > best.Confidence {
				best = rec
			}
		}

		if best.Confidence < d.confidenceMin || best.PredictedSKU == tx.SKU {
			continue
		}

		events = append(events, types.Event{
			Timestamp: tx.Timestamp,
			Kind:      types.EventBarcodeSwitching,
			StationID: tx.StationID,
			Attributes: map[string]any{
				"scanned_sku":   tx.SKU,
				"predicted_sku": best.PredictedSKU,
				"customer_id":   tx.CustomerID,
			},
		})
	}

	return events
}
