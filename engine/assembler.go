package engine

import (
	"fmt"
	"sort"

	"github.com/c360/storesight/types"
)

// assemble merges the per-detector outputs into the final event log.
//
// Outputs arrive indexed by detector ordinal, so concatenation yields
// the fixed detector order; the stable sort then orders by timestamp
// while preserving that order for ties. IDs are allocated only after
// the sort and never change afterward: E001 upward, zero-padded to at
// least three digits.
func assemble(outputs [][]types.Event) []types.Event {
	total := 0
	for _, out := range outputs {
		total += len(out)
	}

	events := make([]types.Event, 0, total)
	for _, out := range outputs {
		events = append(events, out...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})

	for i := range events {
		events[i].ID = fmt.Sprintf("E%03d", i+1)
	}

	return events
}
