package utils

import "time"

// timestampLayout keeps all nine fractional digits so every stored
// timestamp has the same width and string order matches time order
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimestamp renders t as a fixed-width UTC RFC3339 string with
// nanoseconds, the form every store writes
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp parses a timestamp written by FormatTimestamp. Any RFC3339
// value is accepted, including ones with trimmed fractional digits.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
