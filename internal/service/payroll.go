package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"OnDuty/internal/model"
	"OnDuty/internal/model/dto"
	"OnDuty/internal/queue"
	pkgerrors "OnDuty/pkg/errors"
	"OnDuty/pkg/logger"
	"OnDuty/storage/database"
	"OnDuty/utils"
)

var (
	payrollService *PayrollService
	payrollOnce    sync.Once
)

func Payroll() *PayrollService {
	payrollOnce.Do(func() {
		payrollService = &PayrollService{}
	})
	return payrollService
}

type PayrollService struct{}

// computeMonthlySummary 对某员工某月的考勤记录做纯汇总
// days 以日号为键；holidays 以日号为键，只含计薪节假日
func computeMonthlySummary(year, month int, days map[int]*model.AttendanceDay, holidays map[int]*model.Holiday, loc *time.Location) dto.PayrollBreakdown {
	var b dto.PayrollBreakdown
	b.CalendarDays = utils.DaysInMonth(year, month)
	b.Sundays = utils.SundaysInMonth(year, month)

	for dayNum := 1; dayNum <= b.CalendarDays; dayNum++ {
		date := time.Date(year, time.Month(month), dayNum, 0, 0, 0, 0, loc)
		if date.Weekday() == time.Sunday {
			continue
		}
		if holiday, ok := holidays[dayNum]; ok {
			b.PaidHolidays++
			if holiday.Type == model.HolidayTypeSpecial {
				b.SpecialHolidays++
			} else {
				b.MandatoryHoliday++
			}
			continue
		}

		record, ok := days[dayNum]
		if !ok {
			b.NotMarkedDays++
			continue
		}

		switch record.Status {
		case model.DayStatusFull:
			b.FullDays++
			b.PaidWorkingDays += 1
		case model.DayStatusHalf:
			b.HalfDays++
			b.PaidWorkingDays += 0.5
		case model.DayStatusCasualLeave:
			b.CasualLeaveDays++
			b.PaidWorkingDays += 1
		case model.DayStatusSickLeave:
			b.SickLeaveDays++
			b.PaidWorkingDays += 1
		case model.DayStatusSpecialLeave:
			b.SpecialLeaveDays++
			b.PaidWorkingDays += 1
		case model.DayStatusWFH:
			b.WFHDays++
			b.PaidWorkingDays += 1
		case model.DayStatusMandatoryHoliday, model.DayStatusSpecialHoliday, model.DayStatusSunday:
			// 记录标了假日但节假表没有对应配置，按计薪日处理
			b.PaidWorkingDays += 1
		case model.DayStatusUnpaidLeave:
			b.UnpaidLeaveDays++
		case model.DayStatusAutoLeave:
			b.AutoLeaveDays++
		case model.DayStatusLeave:
			if record.IsPaidDay {
				b.OtherLeaveDays++
				b.PaidWorkingDays += 1
			} else {
				b.UnpaidLeaveDays++
			}
		default:
			b.NotMarkedDays++
		}
	}

	b.TotalWorkingDays = b.CalendarDays - b.Sundays - b.PaidHolidays
	b.DaysToDeduct = b.UnpaidLeaveDays + b.AutoLeaveDays + b.NotMarkedDays
	b.EffectivePaid = float64(b.TotalWorkingDays - b.DaysToDeduct)
	return b
}

// CalculatePayroll 核算某员工某月工资并幂等地写入工资单
func (s *PayrollService) CalculatePayroll(ctx context.Context, req *dto.CalculatePayrollRequest) (*dto.PayrollData, error) {
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		return nil, pkgerrors.InvalidPayPeriod
	}

	employee, err := Punch().getActiveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	loc := punchLocation()
	monthStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, -1)

	db := database.DB().WithContext(ctx)

	var records []model.AttendanceDay
	err = db.Where("employee_id = ? AND date >= ? AND date <= ?", employee.ID, monthStart, monthEnd).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance days: %w", err)
	}
	days := make(map[int]*model.AttendanceDay, len(records))
	for i := range records {
		days[records[i].Date.Day()] = &records[i]
	}

	var holidayRows []model.Holiday
	err = db.Where("date >= ? AND date <= ? AND is_paid = ?", monthStart, monthEnd, true).
		Find(&holidayRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	holidays := make(map[int]*model.Holiday, len(holidayRows))
	for i := range holidayRows {
		holidays[holidayRows[i].Date.Day()] = &holidayRows[i]
	}

	breakdown := computeMonthlySummary(req.Year, req.Month, days, holidays, loc)
	if breakdown.TotalWorkingDays <= 0 {
		return nil, pkgerrors.ZeroWorkingDays.WithDetails(map[string]interface{}{
			"year":  req.Year,
			"month": req.Month,
		})
	}

	breakdown.DailyRate = utils.Round2(employee.BaseSalary / float64(breakdown.TotalWorkingDays))
	earned := utils.Round2(breakdown.DailyRate * breakdown.EffectivePaid)
	gross := utils.Round2(earned + req.Allowances)
	net := utils.Round2(gross - req.Deductions)

	status := model.PayrollStatusDraft
	if req.Finalize {
		status = model.PayrollStatusFinalized
	}

	record := model.PayrollRecord{
		EmployeeID:     employee.ID,
		Month:          req.Month,
		Year:           req.Year,
		BaseSalary:     employee.BaseSalary,
		AttendanceDays: breakdown.EffectivePaid,
		WorkingDays:    breakdown.TotalWorkingDays,
		EarnedSalary:   earned,
		Allowances:     req.Allowances,
		GrossPay:       gross,
		Deductions:     req.Deductions,
		NetPay:         net,
		Status:         status,
		Breakdown:      breakdownToJSONB(breakdown),
	}

	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"base_salary", "attendance_days", "working_days",
			"earned_salary", "allowances", "gross_pay", "deductions", "net_pay",
			"status", "breakdown", "updated_at",
		}),
	}).Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	logger.Logger.Info("Payroll calculated",
		zap.Int64("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Float64("net_pay", net),
		zap.String("status", string(status)),
	)

	if req.Finalize {
		go func() {
			if err := queue.PublishPayrollFinalizedEvent(req.EmployeeID, req.Year, req.Month, net); err != nil {
				logger.Logger.Warn("Failed to publish payroll finalized event",
					zap.Int64("employee_id", req.EmployeeID),
					zap.Error(err),
				)
			}
		}()
	}

	return toPayrollData(&record, req.EmployeeID, breakdown), nil
}

// GetPayroll 查询某员工某月的工资单
func (s *PayrollService) GetPayroll(ctx context.Context, employeePublicID int64, year, month int) (*dto.PayrollData, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, pkgerrors.InvalidPayPeriod
	}

	employee, err := Punch().getActiveEmployee(ctx, employeePublicID)
	if err != nil {
		return nil, err
	}

	var record model.PayrollRecord
	err = database.DB().WithContext(ctx).
		Where("employee_id = ? AND year = ? AND month = ?", employee.ID, year, month).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.PayrollNotFound
		}
		return nil, fmt.Errorf("failed to query payroll record: %w", err)
	}

	var breakdown dto.PayrollBreakdown
	if err := jsonbToBreakdown(record.Breakdown, &breakdown); err != nil {
		logger.Logger.Warn("Failed to decode payroll breakdown",
			zap.Int64("employee_id", employeePublicID),
			zap.Error(err),
		)
	}

	return toPayrollData(&record, employeePublicID, breakdown), nil
}

func breakdownToJSONB(b dto.PayrollBreakdown) model.JSONB {
	raw, err := json.Marshal(b)
	if err != nil {
		return model.JSONB{}
	}
	var out model.JSONB
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.JSONB{}
	}
	return out
}

func jsonbToBreakdown(j model.JSONB, out *dto.PayrollBreakdown) error {
	raw, err := json.Marshal(j)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func toPayrollData(r *model.PayrollRecord, employeePublicID int64, breakdown dto.PayrollBreakdown) *dto.PayrollData {
	return &dto.PayrollData{
		EmployeeID:     employeePublicID,
		Year:           r.Year,
		Month:          r.Month,
		BaseSalary:     r.BaseSalary,
		AttendanceDays: r.AttendanceDays,
		WorkingDays:    r.WorkingDays,
		EarnedSalary:   r.EarnedSalary,
		Allowances:     r.Allowances,
		GrossPay:       r.GrossPay,
		Deductions:     r.Deductions,
		NetPay:         r.NetPay,
		Status:         string(r.Status),
		Breakdown:      breakdown,
	}
}
