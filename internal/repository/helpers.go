package repository

import (
	"time"
)

// timestampLayout is fixed-width so that text order in SQLite equals
// chronological order. Values are always stored in UTC.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}
