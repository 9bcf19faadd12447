package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeaveRequestTotalDays(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		from     time.Time
		to       time.Time
		expected int
	}{
		{"Single day", day(10), day(10), 1},
		{"Closed interval", day(10), day(12), 3},
		{"Full week", day(7), day(13), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := LeaveRequest{FromDate: tt.from, ToDate: tt.to}
			assert.Equal(t, tt.expected, r.TotalDays())
		})
	}
}

func TestLeaveRequestTotalDaysAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// 2025-03-09 凌晨进入夏令时，两个午夜之间只有 23 小时
	r := LeaveRequest{
		FromDate: time.Date(2025, 3, 9, 0, 0, 0, 0, loc),
		ToDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
	}
	assert.Equal(t, 2, r.TotalDays())

	// 秋季回拨同样不应多算
	fall := LeaveRequest{
		FromDate: time.Date(2025, 11, 2, 0, 0, 0, 0, loc),
		ToDate:   time.Date(2025, 11, 3, 0, 0, 0, 0, loc),
	}
	assert.Equal(t, 2, fall.TotalDays())
}

func TestLeaveRequestCovers(t *testing.T) {
	r := LeaveRequest{
		FromDate: time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		ToDate:   time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, r.Covers(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Covers(time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Covers(time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Covers(time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Covers(time.Date(2025, 7, 13, 0, 0, 0, 0, time.UTC)))
}

func TestHolidayDayStatus(t *testing.T) {
	mandatory := Holiday{Type: HolidayTypeMandatory}
	special := Holiday{Type: HolidayTypeSpecial}
	optional := Holiday{Type: HolidayTypeOptional}

	assert.Equal(t, DayStatusMandatoryHoliday, mandatory.DayStatus())
	assert.Equal(t, DayStatusSpecialHoliday, special.DayStatus())
	assert.Equal(t, DayStatusMandatoryHoliday, optional.DayStatus())
}

func TestLeaveBalanceRemaining(t *testing.T) {
	b := LeaveBalance{
		CasualBalance:  1.5,
		SickBalance:    2,
		SpecialBalance: 7,
	}

	assert.Equal(t, 1.5, b.Remaining(LeaveCategoryCasual))
	assert.Equal(t, 2.0, b.Remaining(LeaveCategorySick))
	assert.Equal(t, 7.0, b.Remaining(LeaveCategorySpecial))
	assert.Equal(t, 0.0, b.Remaining(LeaveCategoryUnpaid))
}
