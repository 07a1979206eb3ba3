// Package metric provides Prometheus instrumentation for StoreSight runs.
//
// The Registry owns a private prometheus.Registry pre-populated with the
// core engine metrics (records loaded and skipped per stream, events
// detected per kind, detector durations, sink writes and errors) plus Go
// runtime collectors. Components may register additional metrics under a
// "component.metric" key; duplicate registrations are rejected.
//
// Server exposes the registry on an HTTP listener for the duration of a
// batch run, which is long enough for a scrape when runs are scheduled.
package metric
