package dateutil_test

import (
	"testing"
	"time"

	"github.com/hyerin/tinywords/internal/dateutil"
	"github.com/stretchr/testify/assert"
)

func TestAddDays(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		n        int
		expected string
	}{
		{"next day", "2026-02-15", 1, "2026-02-16"},
		{"two days", "2026-02-15", 2, "2026-02-17"},
		{"four days", "2026-02-15", 4, "2026-02-19"},
		{"month rollover", "2026-01-31", 1, "2026-02-01"},
		{"year rollover", "2025-12-31", 1, "2026-01-01"},
		{"leap day", "2024-02-28", 1, "2024-02-29"},
		{"non-leap february", "2026-02-28", 1, "2026-03-01"},
		{"backwards", "2026-03-01", -1, "2026-02-28"},
		{"zero", "2026-02-15", 0, "2026-02-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dateutil.AddDays(tt.date, tt.n))
		})
	}
}

func TestAddDays_DSTBoundary(t *testing.T) {
	// 2026-03-08 is a US DST transition; calendar math must not care.
	assert.Equal(t, "2026-03-09", dateutil.AddDays("2026-03-08", 1))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, dateutil.Compare("2026-02-15", "2026-02-15"))
	assert.Equal(t, -1, dateutil.Compare("2026-02-14", "2026-02-15"))
	assert.Equal(t, 1, dateutil.Compare("2026-03-01", "2026-02-28"))
	assert.Equal(t, -1, dateutil.Compare("2025-12-31", "2026-01-01"))
}

func TestValid(t *testing.T) {
	assert.True(t, dateutil.Valid("2026-02-15"))
	assert.False(t, dateutil.Valid("2026-2-15"))
	assert.False(t, dateutil.Valid("2026-02-30"))
	assert.False(t, dateutil.Valid("yesterday"))
	assert.False(t, dateutil.Valid(""))
}

func TestToday(t *testing.T) {
	utc := dateutil.Today(time.UTC)
	assert.True(t, dateutil.Valid(utc))

	// nil location falls back to UTC
	assert.Equal(t, utc, dateutil.Today(nil))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, 2, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-15", dateutil.FormatDate(ts))
}
