package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPaidStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   DayStatus
		expected bool
	}{
		{"Full day", DayStatusFull, true},
		{"Half day", DayStatusHalf, true},
		{"Casual leave", DayStatusCasualLeave, true},
		{"Sick leave", DayStatusSickLeave, true},
		{"Special leave", DayStatusSpecialLeave, true},
		{"Sunday", DayStatusSunday, true},
		{"WFH", DayStatusWFH, true},
		{"Unpaid leave", DayStatusUnpaidLeave, false},
		{"Auto leave", DayStatusAutoLeave, false},
		{"Generic leave", DayStatusLeave, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPaidStatus(tt.status))
		})
	}
}

func TestValidDayStatus(t *testing.T) {
	assert.True(t, ValidDayStatus(DayStatusFull))
	assert.True(t, ValidDayStatus(DayStatusAutoLeave))
	assert.False(t, ValidDayStatus(DayStatus("vacation")))
	assert.False(t, ValidDayStatus(DayStatus("")))
}

func TestValidPunchType(t *testing.T) {
	assert.True(t, ValidPunchType("in"))
	assert.True(t, ValidPunchType("out"))
	assert.False(t, ValidPunchType("IN"))
	assert.False(t, ValidPunchType(""))
	assert.False(t, ValidPunchType("lunch"))
}
