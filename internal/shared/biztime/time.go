// Package biztime centralizes time handling for the ticket engine.
// All storage and transport use UTC. Persistence stores instants as Unix
// milliseconds, which keeps ordering comparisons portable across sqlite and
// MySQL.
package biztime

import (
	"time"
)

// NowUTC returns current time in UTC truncated to millisecond precision, the
// resolution that survives a round trip through storage.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// ToMillis converts t to Unix milliseconds.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts Unix milliseconds to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ToMillisPtr converts an optional time. nil stays nil.
func ToMillisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// FromMillisPtr converts optional Unix milliseconds. nil stays nil.
func FromMillisPtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := FromMillis(*ms)
	return &t
}
