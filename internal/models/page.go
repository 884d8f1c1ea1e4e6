package models

import (
	"strings"
	"time"

	"shareit/internal/apperr"
)

// PageSkip converts a (from, size) pair into a row offset. from is rounded
// down to a whole page, so from=5,size=10 starts at row 0.
func PageSkip(from, size int) int {
	if size <= 0 {
		return 0
	}
	return (from / size) * size
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseTimestamp accepts RFC 3339 or a zone-less local date-time, which is
// taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperr.Validation("timestamp is required")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperr.Validation("invalid timestamp: %s", s)
}
