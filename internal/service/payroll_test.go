package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"OnDuty/internal/model"
	"OnDuty/internal/model/dto"
)

// 2025 年 7 月：31 天，周日落在 6/13/20/27 号
func TestComputeMonthlySummary(t *testing.T) {
	loc := time.UTC
	holidays := map[int]*model.Holiday{
		15: {Name: "调休假日", Type: model.HolidayTypeMandatory, IsPaid: true},
	}

	// 除周日和节假日外剩 26 个工作日：20 个全勤、2 个半天、1 个事假、3 天缺卡
	days := make(map[int]*model.AttendanceDay)
	var workdays []int
	for d := 1; d <= 31; d++ {
		date := time.Date(2025, 7, d, 0, 0, 0, 0, loc)
		if date.Weekday() == time.Sunday || d == 15 {
			continue
		}
		workdays = append(workdays, d)
	}
	assert.Len(t, workdays, 26)

	for i, d := range workdays {
		switch {
		case i < 20:
			days[d] = &model.AttendanceDay{Status: model.DayStatusFull}
		case i < 22:
			days[d] = &model.AttendanceDay{Status: model.DayStatusHalf}
		case i < 23:
			days[d] = &model.AttendanceDay{Status: model.DayStatusCasualLeave, IsPaidDay: true}
		default:
			// 余下 3 天没有任何记录
		}
	}

	b := computeMonthlySummary(2025, 7, days, holidays, loc)

	assert.Equal(t, 31, b.CalendarDays)
	assert.Equal(t, 4, b.Sundays)
	assert.Equal(t, 1, b.PaidHolidays)
	assert.Equal(t, 1, b.MandatoryHoliday)
	assert.Equal(t, 20, b.FullDays)
	assert.Equal(t, 2, b.HalfDays)
	assert.Equal(t, 1, b.CasualLeaveDays)
	assert.Equal(t, 3, b.NotMarkedDays)
	assert.Equal(t, 26, b.TotalWorkingDays)
	assert.Equal(t, 22.0, b.PaidWorkingDays)
	assert.Equal(t, 3, b.DaysToDeduct)
	assert.Equal(t, 23.0, b.EffectivePaid)
}

func TestComputeMonthlySummaryUnpaidAndAutoLeave(t *testing.T) {
	loc := time.UTC

	days := map[int]*model.AttendanceDay{
		1: {Status: model.DayStatusUnpaidLeave},
		2: {Status: model.DayStatusAutoLeave},
		3: {Status: model.DayStatusLeave, IsPaidDay: true},
		4: {Status: model.DayStatusLeave, IsPaidDay: false},
	}

	b := computeMonthlySummary(2025, 7, days, nil, loc)

	assert.Equal(t, 1, b.AutoLeaveDays)
	assert.Equal(t, 2, b.UnpaidLeaveDays) // 无薪假 + 未计薪的普通请假
	assert.Equal(t, 1, b.OtherLeaveDays)
	assert.Equal(t, 27, b.TotalWorkingDays)
	// 3 天缺勤扣减（无薪、自动请假、未计薪请假）加上其余 23 个未标记的工作日
	assert.Equal(t, 3+23, b.DaysToDeduct)
}

func TestComputeMonthlySummarySundayRecordsIgnored(t *testing.T) {
	loc := time.UTC

	// 周日即使有记录也不参与汇总
	days := map[int]*model.AttendanceDay{
		6: {Status: model.DayStatusFull},
	}

	b := computeMonthlySummary(2025, 7, days, nil, loc)
	assert.Equal(t, 0, b.FullDays)
	assert.Equal(t, 27, b.NotMarkedDays)
}

func TestBreakdownJSONBRoundTrip(t *testing.T) {
	in := dto.PayrollBreakdown{
		CalendarDays:     31,
		Sundays:          4,
		PaidHolidays:     1,
		FullDays:         20,
		HalfDays:         2,
		TotalWorkingDays: 26,
		EffectivePaid:    23,
		DailyRate:        1153.85,
	}

	j := breakdownToJSONB(in)
	assert.NotNil(t, j)

	var out dto.PayrollBreakdown
	assert.NoError(t, jsonbToBreakdown(j, &out))
	assert.Equal(t, in, out)
}
