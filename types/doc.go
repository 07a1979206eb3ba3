// Package types defines the data model shared across StoreSight: the four
// sensor record kinds (transactions, recognitions, queue samples, inventory
// snapshots), the product catalog entry, and the detected event with its
// external JSON representation.
//
// Records are immutable once loaded; detectors only read them. Timestamps
// are Unix milliseconds (see pkg/timestamp).
package types
