package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name     string
		lat1     float64
		lon1     float64
		lat2     float64
		lon2     float64
		expected float64
	}{
		{
			name:     "Same point",
			lat1:     31.2304,
			lon1:     121.4737,
			lat2:     31.2304,
			lon2:     121.4737,
			expected: 0,
		},
		{
			name:     "One degree latitude at equator",
			lat1:     0,
			lon1:     0,
			lat2:     1,
			lon2:     0,
			expected: 111194.93,
		},
		{
			name:     "One degree longitude at equator",
			lat1:     0,
			lon1:     0,
			lat2:     0,
			lon2:     1,
			expected: 111194.93,
		},
		{
			name:     "Short hop north",
			lat1:     31.2304,
			lon1:     121.4737,
			lat2:     31.2310,
			lon2:     121.4737,
			expected: 66.72,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, d, 0.01)
		})
	}
}

func TestHaversineDistanceSymmetry(t *testing.T) {
	d1 := HaversineDistance(31.2304, 121.4737, 39.9042, 116.4074)
	d2 := HaversineDistance(39.9042, 116.4074, 31.2304, 121.4737)
	assert.Equal(t, d1, d2)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 4.0, Round2(4.000001))
	assert.Equal(t, 1.0, Round2(0.999999))
	assert.Equal(t, 7.46, Round2(7.455))
	assert.Equal(t, -2.35, Round2(-2.345))
}

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		lat      float64
		lon      float64
		expected bool
	}{
		{"Normal coordinate", 31.2304, 121.4737, true},
		{"Latitude upper boundary", 90, 0, true},
		{"Latitude lower boundary", -90, 0, true},
		{"Longitude upper boundary", 0, 180, true},
		{"Longitude lower boundary", 0, -180, true},
		{"Latitude too large", 90.0001, 0, false},
		{"Latitude too small", -90.0001, 0, false},
		{"Longitude too large", 0, 180.0001, false},
		{"Longitude too small", 0, -180.0001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidCoordinate(tt.lat, tt.lon))
		})
	}
}
