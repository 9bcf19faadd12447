package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	assert.NoError(t, err)

	d, err := ParseDate("2025-07-15", loc)
	assert.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.July, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, loc, d.Location())

	_, err = ParseDate("15/07/2025", loc)
	assert.Error(t, err)

	_, err = ParseDate("", loc)
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	base := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	got, err := ParseTime("09:30:00", base)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 15, 9, 30, 0, 0, time.UTC), got)

	// 空串表示不指定时间，原样返回日期
	got, err = ParseTime("", base)
	assert.NoError(t, err)
	assert.Equal(t, base, got)

	_, err = ParseTime("9:3", base)
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 7, 15, 18, 42, 11, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    int
		expected int
	}{
		{"July", 2025, 7, 31},
		{"June", 2025, 6, 30},
		{"February non-leap", 2025, 2, 28},
		{"February leap", 2024, 2, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestSundaysInMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    int
		expected int
	}{
		{"July 2025 has four Sundays", 2025, 7, 4},
		{"March 2025 has five Sundays", 2025, 3, 5},
		{"February 2026 has four Sundays", 2026, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SundaysInMonth(tt.year, tt.month))
		})
	}
}
