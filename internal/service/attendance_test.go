package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"OnDuty/config"
	"OnDuty/internal/model"
)

func TestClassifyDay(t *testing.T) {
	// 2025-07-13 周日，2025-07-15 周二
	sunday := time.Date(2025, 7, 13, 0, 0, 0, 0, time.UTC)
	weekday := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	mandatory := &model.Holiday{Name: "国庆节", Type: model.HolidayTypeMandatory, IsPaid: true}
	special := &model.Holiday{Name: "公司周年庆", Type: model.HolidayTypeSpecial, IsPaid: true}

	tests := []struct {
		name             string
		date             time.Time
		hasPunches       bool
		holiday          *model.Holiday
		workHours        float64
		expectedStatus   model.DayStatus
		expectedVerified model.VerificationStatus
	}{
		{
			name:             "Punches on a Sunday count as a worked day",
			date:             sunday,
			hasPunches:       true,
			workHours:        8,
			expectedStatus:   model.DayStatusFull,
			expectedVerified: model.VerificationStatusVerified,
		},
		{
			name:             "Punches on a holiday count by hours",
			date:             weekday,
			hasPunches:       true,
			holiday:          mandatory,
			workHours:        6,
			expectedStatus:   model.DayStatusHalf,
			expectedVerified: model.VerificationStatusVerified,
		},
		{
			name:             "Sunday without punches",
			date:             sunday,
			holiday:          mandatory,
			expectedStatus:   model.DayStatusSunday,
			expectedVerified: model.VerificationStatusVerified,
		},
		{
			name:             "Mandatory holiday without punches",
			date:             weekday,
			holiday:          mandatory,
			expectedStatus:   model.DayStatusMandatoryHoliday,
			expectedVerified: model.VerificationStatusVerified,
		},
		{
			name:             "Special holiday without punches",
			date:             weekday,
			holiday:          special,
			expectedStatus:   model.DayStatusSpecialHoliday,
			expectedVerified: model.VerificationStatusVerified,
		},
		{
			name:             "Full day at threshold",
			date:             weekday,
			hasPunches:       true,
			workHours:        7.5,
			expectedStatus:   model.DayStatusFull,
			expectedVerified: model.VerificationStatusVerified,
		},
		{
			name:             "Half day below threshold",
			date:             weekday,
			hasPunches:       true,
			workHours:        7.49,
			expectedStatus:   model.DayStatusHalf,
			expectedVerified: model.VerificationStatusVerified,
		},
		{
			name:             "No punches falls back to auto leave",
			date:             weekday,
			expectedStatus:   model.DayStatusAutoLeave,
			expectedVerified: model.VerificationStatusUnverified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, verified := classifyDay(tt.date, tt.hasPunches, tt.holiday, tt.workHours)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedVerified, verified)
		})
	}
}

func TestNewAutoLeaveAlertMessage(t *testing.T) {
	prev := config.Cfg.AutoLeaveAlertDelaySeconds
	config.Cfg.AutoLeaveAlertDelaySeconds = 300
	defer func() { config.Cfg.AutoLeaveAlertDelaySeconds = prev }()

	now := time.Date(2025, 7, 15, 18, 30, 0, 0, time.UTC)
	msg := newAutoLeaveAlertMessage("2025-07-15", []int64{101, 102}, now)

	assert.True(t, strings.HasPrefix(msg.BatchID, "automark_2025-07-15"))
	assert.Equal(t, "2025-07-15", msg.Date)
	assert.Equal(t, []int64{101, 102}, msg.EmployeeIDs)
	assert.Equal(t, 300, msg.DelaySeconds)

	// 下游按 RFC3339 解析投递时间
	scheduledAt, err := time.Parse(time.RFC3339, msg.ScheduledAt)
	assert.NoError(t, err)
	assert.True(t, scheduledAt.Equal(now))
}

func TestLeaveStatusForCategory(t *testing.T) {
	tests := []struct {
		name     string
		category model.LeaveCategory
		expected model.DayStatus
	}{
		{"Casual", model.LeaveCategoryCasual, model.DayStatusCasualLeave},
		{"Sick", model.LeaveCategorySick, model.DayStatusSickLeave},
		{"Special", model.LeaveCategorySpecial, model.DayStatusSpecialLeave},
		{"Unpaid", model.LeaveCategoryUnpaid, model.DayStatusUnpaidLeave},
		{"Mandatory holiday", model.LeaveCategoryMandatoryHoliday, model.DayStatusMandatoryHoliday},
		{"Emergency falls back to generic leave", model.LeaveCategoryEmergency, model.DayStatusLeave},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, leaveStatusForCategory(tt.category))
		})
	}
}
