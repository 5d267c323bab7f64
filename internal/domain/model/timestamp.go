package model

import "time"

// TimestampLayout is the wire format for submission timestamps. Its
// microsecond precision matches the ledger's storage resolution, so a
// formatted timestamp parses back to the exact stored instant and exact-match
// lookups stay deterministic.
const TimestampLayout = "2006-01-02 15:04:05.000000 MST"

// FormatTimestamp renders t in the wire format, in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a wire-format timestamp string.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}
