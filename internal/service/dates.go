package service

import (
	"strings"
	"time"
)

// storeDateTimeLayout is the representation dates take in the store.
const storeDateTimeLayout = "2006-01-02 15:04:05"

// wire layouts accepted for incoming dates, tried in order.
var wireDateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	storeDateTimeLayout,
	"2006-01-02",
}

// normalizeDateTime converts a wire timestamp (typically RFC3339, e.g.
// "2025-01-10T00:00:00.000Z") into the store's date-time representation
// in UTC. Returns false when the value parses under no accepted layout.
func normalizeDateTime(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range wireDateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(storeDateTimeLayout), true
		}
	}
	return "", false
}
