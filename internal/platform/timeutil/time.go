// Package timeutil holds the timestamp layouts shared by logs and payloads.
package timeutil

import (
	"time"
)

// RFC3339Millis is RFC 3339 UTC with fixed millisecond precision, used in payloads.
const RFC3339Millis = "2006-01-02T15:04:05.000Z"

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision, used in log entries.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// Time marshals as RFC 3339 UTC with millisecond precision, e.g. "2024-01-15T10:30:00.000Z".
type Time struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(RFC3339Millis) + `"`), nil
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}
