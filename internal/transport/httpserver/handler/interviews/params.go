package interviews

import (
	"fmt"
	"strings"
	"time"
)

var scheduledAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseScheduledAt accepts RFC 3339 timestamps, datetime-local form values
// and plain dates. Values without a zone are read as UTC.
func parseScheduledAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("scheduledAt is required")
	}
	for _, layout := range scheduledAtLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("scheduledAt must be a valid date")
}
