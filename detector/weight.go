package detector

import (
	"context"
	"log/slog"
	"math"

	"github.com/c360/storesight/config"
	"github.com/c360/storesight/dataset"
	"github.com/c360/storesight/types"
)

// WeightDiscrepancy flags scale readings outside the catalog tolerance
// for the scanned SKU. Tolerance scales with the expected weight, so a
// heavy item tolerates a larger absolute deviation than a light one.
type WeightDiscrepancy struct {
	tolerancePercent float64
	opts             Options
}

// NewWeightDiscrepancy builds the detector. Unknown SKUs are skipped
// with a notice through the options' logger and metrics, never aborted
// on.
func NewWeightDiscrepancy(cfg config.Detection, opts Options) *WeightDiscrepancy {
	return &WeightDiscrepancy{
		tolerancePercent: cfg.WeightTolerancePercent,
		opts:             opts,
	}
}

func (d *WeightDiscrepancy) Name() string { return "weight_discrepancy" }

func (d *WeightDiscrepancy) Ordinal() int { return ordinalWeightDiscrepancy }

// Detect checks each transaction against its catalog weight. The
// comparison is strict: a delta exactly equal to the tolerance is
// within bounds and produces no event.
func (d *WeightDiscrepancy) Detect(_ context.Context, ds *dataset.Dataset) []types.Event {
	var events []types.Event
	logger := d.opts.logger()

	for _, tx := range ds.Transactions {
		entry, ok := ds.Catalog.Lookup(tx.SKU)
		if !ok {
			logger.Debug("unknown sku, skipping weight check",
				slog.String("sku", tx.SKU),
				slog.String("station_id", tx.StationID))
			if d.opts.Metrics != nil {
				d.opts.Metrics.RecordUnknownSKU()
			}
			continue
		}

		expected := entry.ExpectedWeight
		tolerance := expected * d.tolerancePercent / 100
		delta := math.Abs(tx.ActualWeight - expected)
		if delta <= tolerance {
			continue
		}

		events = append(events, types.Event{
			Timestamp: tx.Timestamp,
			Kind:      types.EventWeightDiscrepancy,
			StationID: tx.StationID,
			Attributes: map[string]any{
				"product_sku":     tx.SKU,
				"expected_weight": int(expected),
				"actual_weight":   int(tx.ActualWeight),
				"delta":           int(delta),
				"customer_id":     tx.CustomerID,
			},
		})
	}

	return events
}
