// Package index provides sorted temporal indexes over sensor streams.
//
// An Index is built once per run and answers window queries without
// rescanning the stream: records are bucketed per station, sorted by
// timestamp, and looked up by binary search. Queries cost O(log n + k)
// for k matches. Indexes are immutable after construction; the returned
// slices alias internal storage and must not be mutated by callers.
package index

import (
	"sort"
)

// Index holds one stream's records sorted by timestamp, both globally
// and per station. T is the record type; accessors extract the station
// and the Unix-millisecond timestamp from it.
type Index[T any] struct {
	all       []T
	byStation map[string][]T
	stations  []string
	ts        func(T) int64
}

// New builds an index over records. The input order is preserved for
// equal timestamps so repeated runs over the same streams stay
// deterministic. Records with an empty station still appear in
// all-station queries.
func New[T any](records []T, station func(T) string, ts func(T) int64) *Index[T] {
	ix := &Index[T]{
		all:       make([]T, len(records)),
		byStation: make(map[string][]T),
		ts:        ts,
	}
	copy(ix.all, records)
	sort.SliceStable(ix.all, func(i, j int) bool {
		return ts(ix.all[i]) < ts(ix.all[j])
	})

	for _, rec := range ix.all {
		id := station(rec)
		ix.byStation[id] = append(ix.byStation[id], rec)
	}
	for id := range ix.byStation {
		ix.stations = append(ix.stations, id)
	}
	sort.Strings(ix.stations)
	return ix
}

// Window returns the records for stationID with timestamps in
// [start, end], both ends inclusive. An empty stationID queries all
// stations merged in timestamp order. The result aliases the index;
// callers must not modify it.
func (ix *Index[T]) Window(stationID string, start, end int64) []T {
	recs := ix.all
	if stationID != "" {
		recs = ix.byStation[stationID]
	}
	if len(recs) == 0 || start > end {
		return nil
	}
	lo := sort.Search(len(recs), func(i int) bool { return ix.ts(recs[i]) >= start })
	hi := sort.Search(len(recs), func(i int) bool { return ix.ts(recs[i]) > end })
	if lo >= hi {
		return nil
	}
	return recs[lo:hi]
}

// Station returns all records for one station in timestamp order.
func (ix *Index[T]) Station(stationID string) []T {
	return ix.byStation[stationID]
}

// Stations returns the distinct station identifiers in sorted order.
func (ix *Index[T]) Stations() []string {
	return ix.stations
}

// All returns every record in timestamp order.
func (ix *Index[T]) All() []T {
	return ix.all
}

// Len returns the number of indexed records
func (ix *Index[T]) Len() int {
	return len(ix.all)
}
