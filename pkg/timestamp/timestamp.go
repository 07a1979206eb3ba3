// Package timestamp provides standardized Unix timestamp handling utilities.
//
// This package uses int64 milliseconds as the canonical timestamp format to
// eliminate timestamp parsing bugs and provide consistent behavior across the
// codebase. All timestamps are stored as milliseconds since Unix epoch (UTC).
//
// Sensor export files carry zone-less timestamps ("2006-01-02T15:04:05");
// these are interpreted as UTC. Stream clocks are assumed synchronized.
//
// Zero Value Semantics:
//   - A timestamp value of 0 means "not set" or "unknown"
//   - Functions handle zero values gracefully, returning appropriate defaults
package timestamp

import (
	"fmt"
	"time"
)

// ISO8601Local is the zone-less layout used by the sensor export files.
const ISO8601Local = "2006-01-02T15:04:05"

// Now returns the current time as Unix milliseconds.
func Now() int64 {
	return time.Now().UnixMilli()
}

// ToUnixMs converts a time.Time to Unix milliseconds.
func ToUnixMs(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromUnixMs converts Unix milliseconds to time.Time.
// Returns zero time if timestamp is 0.
func FromUnixMs(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// Format converts Unix milliseconds to an ISO-8601 string for the event
// output contract. Returns empty string if timestamp is 0.
func Format(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(ISO8601Local)
}

// Parse converts a timestamp string to Unix milliseconds. It accepts
// RFC3339 ("2006-01-02T15:04:05Z07:00"), RFC3339 with fractional seconds,
// and the zone-less sensor form ("2006-01-02T15:04:05", interpreted as UTC).
//
// Returns an error for empty or unrecognized input.
func Parse(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("timestamp is empty")
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ToUnixMs(t), nil
	}
	if t, err := time.ParseInLocation(ISO8601Local, s, time.UTC); err == nil {
		return ToUnixMs(t), nil
	}

	return 0, fmt.Errorf("unrecognized timestamp format: %q", s)
}

// IsZero checks if a timestamp is unset (zero).
func IsZero(ms int64) bool {
	return ms == 0
}

// Add adds a duration to a timestamp and returns the new timestamp.
// Returns 0 if the input timestamp is zero.
func Add(ms int64, d time.Duration) int64 {
	if ms == 0 {
		return 0
	}
	return time.UnixMilli(ms).Add(d).UnixMilli()
}

// Sub subtracts a duration from a timestamp and returns the new timestamp.
// Returns 0 if the input timestamp is zero.
func Sub(ms int64, d time.Duration) int64 {
	if ms == 0 {
		return 0
	}
	return time.UnixMilli(ms).Add(-d).UnixMilli()
}

// Between returns the duration between two timestamps.
// Returns 0 if either timestamp is zero.
func Between(start, end int64) time.Duration {
	if start == 0 || end == 0 {
		return 0
	}
	return time.UnixMilli(end).Sub(time.UnixMilli(start))
}

// Midpoint returns the timestamp halfway between two timestamps.
// Used for events that describe a window rather than an instant.
func Midpoint(a, b int64) int64 {
	return a + (b-a)/2
}

// Min returns the earlier of two timestamps.
// Zero values are treated as "later than any other time".
func Min(a, b int64) int64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}

// Max returns the later of two timestamps.
// Zero values are treated as "earlier than any other time".
func Max(a, b int64) int64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	if a > b {
		return a
	}
	return b
}

// Validate checks if a timestamp is valid (non-negative and reasonable).
// Returns an error if the timestamp is negative or unreasonably large.
func Validate(ms int64) error {
	if ms < 0 {
		return fmt.Errorf("timestamp cannot be negative: %d", ms)
	}
	// Year 3000 cutoff
	if ms > 32503680000000 {
		return fmt.Errorf("timestamp too far in future: %d", ms)
	}
	return nil
}
