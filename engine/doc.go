// Package engine orchestrates a detection run.
//
// A run is single-pass batch processing: the dataset is fully
// materialized before detection begins, the six detectors fan out on a
// worker pool against the shared read-only indexes, and the assembler
// waits for all of them before producing the final log. The output is
// deterministic for a given dataset and configuration: detector
// ordinals fix the concatenation order, the timestamp sort is stable,
// and IDs are assigned only after the sort.
package engine
