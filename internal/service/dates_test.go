package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDateTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"rfc3339 with millis", "2025-01-10T00:00:00.000Z", "2025-01-10 00:00:00", true},
		{"rfc3339", "2025-01-10T15:30:00Z", "2025-01-10 15:30:00", true},
		{"rfc3339 with offset", "2025-01-10T15:30:00+01:00", "2025-01-10 14:30:00", true},
		{"store layout passes through", "2025-01-10 15:30:00", "2025-01-10 15:30:00", true},
		{"date only", "2025-01-10", "2025-01-10 00:00:00", true},
		{"surrounding whitespace", "  2025-01-10T00:00:00Z  ", "2025-01-10 00:00:00", true},
		{"garbage", "not-a-date", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeDateTime(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
