// Package utils provides utility functions for the application.
package utils

import (
	"time"
)

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// UTCNowPtr returns a pointer to the current time in UTC
func UTCNowPtr() *time.Time {
	now := UTCNow()
	return &now
}

// NowIn returns the current time in the given location, falling back to UTC
func NowIn(loc *time.Location) time.Time {
	if loc == nil {
		return UTCNow()
	}
	return time.Now().In(loc)
}

// StartOfDay truncates t to midnight in t's own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsFuture reports whether t is strictly after now
func IsFuture(t, now time.Time) bool {
	return t.After(now)
}

// LoadLocation resolves an IANA zone name, treating "" as UTC
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "UTC" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
