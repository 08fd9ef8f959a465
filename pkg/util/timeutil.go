package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// UnixMillis converts a timestamp into epoch milliseconds, the unit stored in cache envelopes.
func UnixMillis(t time.Time) int64 {
	return t.UnixMilli()
}
