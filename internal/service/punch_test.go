package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"OnDuty/internal/model"
)

func punchAt(hour, minute int, punchType model.PunchType) model.PunchEvent {
	return model.PunchEvent{
		Type:      punchType,
		PunchedAt: time.Date(2025, 7, 15, hour, minute, 0, 0, time.UTC),
	}
}

func TestAggregatePunches(t *testing.T) {
	tests := []struct {
		name          string
		punches       []model.PunchEvent
		expectedWork  float64
		expectedBreak float64
		onBreak       bool
	}{
		{
			name:    "No punches",
			punches: nil,
		},
		{
			name: "Single in without out",
			punches: []model.PunchEvent{
				punchAt(9, 0, model.PunchTypeIn),
			},
			onBreak: true,
		},
		{
			name: "Simple work day",
			punches: []model.PunchEvent{
				punchAt(9, 0, model.PunchTypeIn),
				punchAt(18, 0, model.PunchTypeOut),
			},
			expectedWork: 9,
		},
		{
			name: "Work then lunch break then afternoon",
			punches: []model.PunchEvent{
				punchAt(9, 0, model.PunchTypeIn),
				punchAt(13, 0, model.PunchTypeOut),
				punchAt(14, 0, model.PunchTypeIn),
				punchAt(18, 0, model.PunchTypeOut),
			},
			expectedWork:  4,
			expectedBreak: 1,
		},
		{
			name: "Third pair is not accumulated",
			punches: []model.PunchEvent{
				punchAt(9, 0, model.PunchTypeIn),
				punchAt(12, 0, model.PunchTypeOut),
				punchAt(13, 0, model.PunchTypeIn),
				punchAt(15, 0, model.PunchTypeOut),
				punchAt(16, 0, model.PunchTypeIn),
				punchAt(18, 0, model.PunchTypeOut),
			},
			expectedWork:  3,
			expectedBreak: 1,
		},
		{
			name: "Trailing in leaves the day on break",
			punches: []model.PunchEvent{
				punchAt(9, 0, model.PunchTypeIn),
				punchAt(13, 0, model.PunchTypeOut),
				punchAt(14, 0, model.PunchTypeIn),
			},
			expectedWork:  4,
			expectedBreak: 1,
			onBreak:       true,
		},
		{
			name: "Half hour granularity is rounded",
			punches: []model.PunchEvent{
				punchAt(9, 10, model.PunchTypeIn),
				punchAt(12, 30, model.PunchTypeOut),
			},
			expectedWork: 3.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := aggregatePunches(tt.punches)
			assert.Equal(t, tt.expectedWork, agg.WorkHours)
			assert.Equal(t, tt.expectedBreak, agg.BreakHours)
			assert.Equal(t, tt.onBreak, agg.OnBreak)
		})
	}
}

func TestAggregatePunchesDeterministic(t *testing.T) {
	punches := []model.PunchEvent{
		punchAt(9, 0, model.PunchTypeIn),
		punchAt(13, 0, model.PunchTypeOut),
		punchAt(14, 0, model.PunchTypeIn),
		punchAt(18, 0, model.PunchTypeOut),
	}

	first := aggregatePunches(punches)
	second := aggregatePunches(punches)
	assert.Equal(t, first.WorkHours, second.WorkHours)
	assert.Equal(t, first.BreakHours, second.BreakHours)
	assert.Equal(t, first.OnBreak, second.OnBreak)
}

func TestAggregatePunchesFirstInLastOut(t *testing.T) {
	punches := []model.PunchEvent{
		punchAt(9, 0, model.PunchTypeIn),
		punchAt(13, 0, model.PunchTypeOut),
		punchAt(14, 0, model.PunchTypeIn),
		punchAt(18, 0, model.PunchTypeOut),
	}

	agg := aggregatePunches(punches)
	assert.NotNil(t, agg.FirstIn)
	assert.NotNil(t, agg.LastOut)
	assert.Equal(t, punches[0].PunchedAt, agg.FirstIn.PunchedAt)
	assert.Equal(t, punches[3].PunchedAt, agg.LastOut.PunchedAt)
}
