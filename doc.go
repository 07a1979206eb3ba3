// Package storesight is a batch correlation and anomaly-detection engine for
// retail checkout telemetry.
//
// # Overview
//
// StoreSight consumes several independently-sampled sensor streams recorded
// at self-checkout stations (point-of-sale transactions, vision-based
// product recognition, queue occupancy samples and inventory snapshots)
// together with a static product catalog, and produces a single globally
// time-ordered log of operational and fraud-indicating events.
//
// # Architecture
//
// Data flows one way through the system:
//
//	┌─────────────────────────────────────┐
//	│            Loader                   │  JSONL streams, CSV catalog
//	│   (typed records, skip counting)    │
//	└─────────────────────────────────────┘
//	           ↓ materializes
//	┌─────────────────────────────────────┐
//	│            Dataset                  │  Immutable run context:
//	│  (streams + temporal indexes +      │  per-station sorted indexes,
//	│   catalog)                          │  catalog lookup
//	└─────────────────────────────────────┘
//	           ↓ read by
//	┌─────────────────────────────────────┐
//	│          Detectors                  │  Six independent detection
//	│  (windowed joins, thresholds,       │  procedures, run concurrently
//	│   state diffs, gap analysis)        │
//	└─────────────────────────────────────┘
//	           ↓ merged by
//	┌─────────────────────────────────────┐
//	│          Assembler                  │  Stable timestamp sort,
//	│     (engine.Run → Result)           │  sequential E### identifiers
//	└─────────────────────────────────────┘
//	           ↓ written by
//	┌─────────────────────────────────────┐
//	│            Sinks                    │  events.jsonl file,
//	│    (output/file, output/natspub)    │  optional NATS publisher
//	└─────────────────────────────────────┘
//
// The engine operates on complete, already-materialized batches. Detectors
// never observe partial input and share no mutable state; the assembler is
// the only synchronization point.
//
// # Packages
//
//   - types: sensor records, catalog entries, detected events
//   - config: validated run configuration with explicit defaults
//   - loader: JSONL/CSV parsing into typed records
//   - catalog: SKU → reference attribute lookup
//   - index: per-stream temporal indexes with O(log n + k) window queries
//   - dataset: the immutable run context handed to detectors
//   - detector: the six detection procedures
//   - engine: orchestration, assembly, identifier allocation
//   - output/file, output/natspub: event sinks
//   - metric, errors, pkg/...: ambient infrastructure
package storesight
