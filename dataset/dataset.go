// Package dataset assembles the loaded streams into the immutable run
// context shared by every detector.
//
// A Dataset is built once after loading and never mutated: detectors
// run concurrently against it, and correctness of the shared indexes
// depends on nobody writing after construction.
package dataset

import (
	"sort"

	"github.com/c360/storesight/catalog"
	"github.com/c360/storesight/index"
	"github.com/c360/storesight/types"
)

// Dataset is the complete input of one detection run: the four sensor
// streams, their temporal indexes, and the product catalog. Skipped
// counts per stream carry over from loading so the run report can
// surface partial input.
type Dataset struct {
	Transactions []types.Transaction
	Recognitions []types.Recognition
	QueueSamples []types.QueueSample

	// Snapshots are sorted ascending by timestamp; consecutive pairs
	// bound the inventory reconciliation intervals.
	Snapshots []types.InventorySnapshot

	Catalog *catalog.Catalog

	TransactionIndex *index.Index[types.Transaction]
	RecognitionIndex *index.Index[types.Recognition]
	QueueIndex       *index.Index[types.QueueSample]

	// Skipped maps stream name to the number of malformed records the
	// loader dropped.
	Skipped map[string]int
}

// New builds the run context: streams are indexed per station and
// snapshots sorted by time. The input slices are not retained for the
// indexed streams, but Snapshots is sorted in place.
func New(
	transactions []types.Transaction,
	recognitions []types.Recognition,
	queueSamples []types.QueueSample,
	snapshots []types.InventorySnapshot,
	cat *catalog.Catalog,
	skipped map[string]int,
) *Dataset {
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp < snapshots[j].Timestamp
	})

	if skipped == nil {
		skipped = make(map[string]int)
	}

	return &Dataset{
		Transactions: transactions,
		Recognitions: recognitions,
		QueueSamples: queueSamples,
		Snapshots:    snapshots,
		Catalog:      cat,
		TransactionIndex: index.New(transactions,
			func(t types.Transaction) string { return t.StationID },
			func(t types.Transaction) int64 { return t.Timestamp }),
		RecognitionIndex: index.New(recognitions,
			func(r types.Recognition) string { return r.StationID },
			func(r types.Recognition) int64 { return r.Timestamp }),
		QueueIndex: index.New(queueSamples,
			func(q types.QueueSample) string { return q.StationID },
			func(q types.QueueSample) int64 { return q.Timestamp }),
		Skipped: skipped,
	}
}

// Stations returns the union of stations seen in the transaction and
// queue streams, sorted. This is the station universe for activity gap
// detection: a station with no activity at all has no timeline to
// measure gaps in.
func (d *Dataset) Stations() []string {
	seen := make(map[string]struct{})
	for _, id := range d.TransactionIndex.Stations() {
		seen[id] = struct{}{}
	}
	for _, id := range d.QueueIndex.Stations() {
		seen[id] = struct{}{}
	}
	stations := make([]string, 0, len(seen))
	for id := range seen {
		stations = append(stations, id)
	}
	sort.Strings(stations)
	return stations
}

// ActivityTimeline returns the merged, ascending timestamps of all
// transaction and queue activity at one station.
func (d *Dataset) ActivityTimeline(stationID string) []int64 {
	return index.MergeTimestamps(
		index.Timestamps(d.TransactionIndex, stationID),
		index.Timestamps(d.QueueIndex, stationID),
	)
}

// TotalRecords returns the count of well-formed records across all
// four streams.
func (d *Dataset) TotalRecords() int {
	return len(d.Transactions) + len(d.Recognitions) + len(d.QueueSamples) + len(d.Snapshots)
}
