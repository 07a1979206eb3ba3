package detector

import (
	"context"
	"sort"

	"github.com/c360/storesight/config"
	"github.com/c360/storesight/dataset"
	"github.com/c360/storesight/types"
)

// InventoryReconciler diffs consecutive inventory snapshots against the
// sales recorded between them. On-hand counts that drift further than
// the unit threshold from the sales-adjusted expectation indicate theft
// or misplacement.
type InventoryReconciler struct {
	threshold int
}

// NewInventoryReconciler builds the detector from the resolved thresholds.
func NewInventoryReconciler(cfg config.Detection) *InventoryReconciler {
	return &InventoryReconciler{threshold: cfg.InventoryDiscrepancyThreshold}
}

func (d *InventoryReconciler) Name() string { return "inventory_reconciler" }

func (d *InventoryReconciler) Ordinal() int { return ordinalInventoryReconciler }

// Detect walks consecutive snapshot pairs in timestamp order. Sales are
// counted over the half-open interval (s1, s2]: a transaction at
// exactly s1 was already reflected in that snapshot, one at exactly s2
// was not. SKUs present in either snapshot are reconciled, with the
// missing side counted as zero. The threshold comparison is strict.
// Events are store-wide, so they carry no station.
func (d *InventoryReconciler) Detect(_ context.Context, ds *dataset.Dataset) []types.Event {
	var events []types.Event

	for i := 0; i+1 < len(ds.Snapshots); i++ {
		s1 := ds.Snapshots[i]
		s2 := ds.Snapshots[i+1]

		sold := make(map[string]int)
		for _, tx := range ds.TransactionIndex.Window("", s1.Timestamp+1, s2.Timestamp) {
			sold[tx.SKU]++
		}

		for _, sku := range unionSKUs(s1.Counts, s2.Counts) {
			expected := s1.Counts[sku] - sold[sku]
			actual := s2.Counts[sku]

			delta := expected - actual
			if delta < 0 {
				delta = -delta
			}
			if delta <= d.threshold {
				continue
			}

			events = append(events, types.Event{
				Timestamp: s2.Timestamp,
				Kind:      types.EventInventoryDiscrepancy,
				Attributes: map[string]any{
					"sku":                sku,
					"expected_inventory": expected,
					"actual_inventory":   actual,
					"delta":              delta,
				},
			})
		}
	}

	return events
}

// unionSKUs returns the sorted union of the SKU keys of two snapshots.
// Sorting keeps the per-pair emission order deterministic.
func unionSKUs(a, b map[string]int) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for sku := range a {
		seen[sku] = struct{}{}
	}
	for sku := range b {
		seen[sku] = struct{}{}
	}
	skus := make([]string, 0, len(seen))
	for sku := range seen {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}
