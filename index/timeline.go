package index

import "sort"

// MergeTimestamps merges already-sorted timestamp slices into one
// ascending slice. Duplicates are preserved; a station reporting a
// transaction and a queue sample at the same instant is still a single
// moment of activity, and gap measurement between equal timestamps is
// zero either way.
func MergeTimestamps(sorted ...[]int64) []int64 {
	total := 0
	for _, s := range sorted {
		total += len(s)
	}
	if total == 0 {
		return nil
	}
	merged := make([]int64, 0, total)
	for _, s := range sorted {
		merged = append(merged, s...)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
	return merged
}

// Timestamps projects the per-station records of an index onto their
// timestamps, preserving sort order.
func Timestamps[T any](ix *Index[T], stationID string) []int64 {
	recs := ix.Station(stationID)
	if len(recs) == 0 {
		return nil
	}
	out := make([]int64, len(recs))
	for i, rec := range recs {
		out[i] = ix.ts(rec)
	}
	return out
}
