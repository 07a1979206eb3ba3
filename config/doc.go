// Package config defines the validated run configuration for StoreSight.
//
// Configuration is layered: documented defaults, then an optional JSON or
// YAML file, then STORESIGHT_* environment overrides. The merged result is
// validated once at startup; any threshold or window outside its domain is
// a fatal error that aborts the run before detection begins (a logically
// inconsistent configuration can silently under- or over-report events).
//
// The resolved Config is immutable for the duration of the run: every
// detector observes the same values.
package config
