package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"OnDuty/internal/model"
)

func TestFenceResult(t *testing.T) {
	office := &model.OfficeLocation{
		Name:         "总部",
		RadiusMeters: 200,
	}

	tests := []struct {
		name     string
		distance float64
		allowed  bool
		excess   float64
	}{
		{"Well inside", 50, true, 0},
		{"Exactly on the boundary", 200, true, 0},
		{"Just outside", 200.01, false, 0.01},
		{"Far outside", 812.5, false, 612.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fenceResult(office, tt.distance)
			assert.Equal(t, tt.allowed, result.Allowed)
			assert.Equal(t, tt.distance, result.DistanceMeters)
			assert.Equal(t, tt.excess, result.ExcessMeters)
		})
	}
}
