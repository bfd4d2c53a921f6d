package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeSince(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, "unknown time"},
		{"seconds", now.Add(-30 * time.Second), "30 seconds ago"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"hours", now.Add(-3 * time.Hour), "3 hours ago"},
		{"days", now.Add(-2 * 24 * time.Hour), "2 days ago"},
		{"weeks", now.Add(-2 * 7 * 24 * time.Hour), "2 weeks ago"},
		{"old falls back to date", now.Add(-6 * 7 * 24 * time.Hour), "Jan 18, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeSince(tt.t, now))
		})
	}
}
