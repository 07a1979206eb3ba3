// Package detector implements the six detection procedures over the
// run context.
//
// Each detector consumes one or two streams plus the catalog through
// the shared Dataset indexes and emits candidate events with empty IDs;
// the engine's assembler allocates identifiers after the global sort.
// Detectors are pure with respect to the Dataset and hold no mutable
// state across calls, which is what lets the engine fan them out on a
// worker pool without locking.
//
// The join and threshold policies are load-bearing: window bounds are
// inclusive on both ends for the temporal joins, the inventory sales
// interval is half-open, tolerance and discrepancy comparisons are
// strict, and queue thresholds are at-or-above. Changing any of these
// changes the emitted event set.
package detector
