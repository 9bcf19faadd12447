package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"OnDuty/config"
	"OnDuty/internal/model"
	"OnDuty/internal/model/dto"
	"OnDuty/internal/queue"
	pkgerrors "OnDuty/pkg/errors"
	"OnDuty/pkg/logger"
	"OnDuty/pkg/metrics"
	"OnDuty/pkg/snowflake"
	"OnDuty/storage/database"
	"OnDuty/utils"
)

// 当日打卡累计工时达到该阈值记为全天出勤，否则记为半天
const fullDayThresholdHours = 7.5

var (
	attendanceService *AttendanceService
	attendanceOnce    sync.Once
)

func Attendance() *AttendanceService {
	attendanceOnce.Do(func() {
		attendanceService = &AttendanceService{}
	})
	return attendanceService
}

type AttendanceService struct{}

// findHoliday 查询某日的节假日配置，没有则返回 nil
func findHoliday(tx *gorm.DB, day time.Time) (*model.Holiday, error) {
	var holiday model.Holiday
	err := tx.Where("date = ?", day).First(&holiday).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query holiday: %w", err)
	}
	return &holiday, nil
}

// classifyDay 按优先级给出某日状态
// 周日/节假日规则只在当天没有任何打卡时生效；一旦有打卡，按时长算全勤或半勤
func classifyDay(date time.Time, hasPunches bool, holiday *model.Holiday, workHours float64) (model.DayStatus, model.VerificationStatus) {
	if hasPunches {
		if workHours >= fullDayThresholdHours {
			return model.DayStatusFull, model.VerificationStatusVerified
		}
		return model.DayStatusHalf, model.VerificationStatusVerified
	}
	if date.Weekday() == time.Sunday {
		return model.DayStatusSunday, model.VerificationStatusVerified
	}
	if holiday != nil {
		return holiday.DayStatus(), model.VerificationStatusVerified
	}
	return model.DayStatusAutoLeave, model.VerificationStatusUnverified
}

// leaveStatusForCategory 请假类别到考勤状态的映射
func leaveStatusForCategory(category model.LeaveCategory) model.DayStatus {
	switch category {
	case model.LeaveCategoryCasual:
		return model.DayStatusCasualLeave
	case model.LeaveCategorySick:
		return model.DayStatusSickLeave
	case model.LeaveCategorySpecial:
		return model.DayStatusSpecialLeave
	case model.LeaveCategoryUnpaid:
		return model.DayStatusUnpaidLeave
	case model.LeaveCategoryMandatoryHoliday:
		return model.DayStatusMandatoryHoliday
	default:
		return model.DayStatusLeave
	}
}

// GetDailyStatus 查询某员工某日的考勤状态
func (s *AttendanceService) GetDailyStatus(ctx context.Context, employeePublicID int64, dateStr string) (*dto.DailyStatusData, error) {
	employee, err := Punch().getActiveEmployee(ctx, employeePublicID)
	if err != nil {
		return nil, err
	}

	day, err := utils.ParseDate(dateStr, punchLocation())
	if err != nil {
		return nil, pkgerrors.InvalidDate
	}

	var record model.AttendanceDay
	err = database.DB().WithContext(ctx).
		Where("employee_id = ? AND date = ?", employee.ID, day).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.AttendanceDayNotFound
		}
		return nil, fmt.Errorf("failed to query attendance day: %w", err)
	}

	return &dto.DailyStatusData{
		EmployeeID:         employeePublicID,
		Date:               utils.FormatDate(record.Date),
		Status:             string(record.Status),
		VerificationStatus: string(record.VerificationStatus),
		TotalWorkHours:     record.TotalWorkHours,
		TotalBreakHours:    record.TotalBreakHours,
		IsPaidDay:          record.IsPaidDay,
		Pinned:             record.Pinned,
		Note:               record.Note,
	}, nil
}

// PinDay 管理员手工钉住某日状态，之后的打卡与自动标记都不再改写它
func (s *AttendanceService) PinDay(ctx context.Context, employeePublicID int64, dateStr string, req *dto.PinDayRequest) (*dto.DailyStatusData, error) {
	employee, err := Punch().getActiveEmployee(ctx, employeePublicID)
	if err != nil {
		return nil, err
	}

	day, err := utils.ParseDate(dateStr, punchLocation())
	if err != nil {
		return nil, pkgerrors.InvalidDate
	}

	status := model.DayStatus(req.Status)
	if !model.ValidDayStatus(status) {
		return nil, pkgerrors.InvalidDayStatus.WithDetails(map[string]interface{}{
			"status": req.Status,
		})
	}

	var record model.AttendanceDay
	err = database.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dayErr := tx.Where("employee_id = ? AND date = ?", employee.ID, day).
			First(&record).Error
		if dayErr != nil {
			if !errors.Is(dayErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to query attendance day: %w", dayErr)
			}
			record = model.AttendanceDay{
				EmployeeID: employee.ID,
				Date:       day,
			}
		}

		record.Status = status
		record.VerificationStatus = model.VerificationStatusVerified
		record.IsPaidDay = model.IsPaidStatus(status)
		record.Pinned = true
		if req.Note != "" {
			record.Note = req.Note
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Logger.Info("Attendance day pinned",
		zap.Int64("employee_id", employeePublicID),
		zap.String("date", dateStr),
		zap.String("status", req.Status),
	)

	return &dto.DailyStatusData{
		EmployeeID:         employeePublicID,
		Date:               dateStr,
		Status:             string(record.Status),
		VerificationStatus: string(record.VerificationStatus),
		TotalWorkHours:     record.TotalWorkHours,
		TotalBreakHours:    record.TotalBreakHours,
		IsPaidDay:          record.IsPaidDay,
		Pinned:             record.Pinned,
		Note:               record.Note,
	}, nil
}

// RunDailyAutoMark 对某个考勤日做批量补标记
// 顺序：节假日优先，其次已批准的请假，最后无记录者记为 auto_leave 待核实
func (s *AttendanceService) RunDailyAutoMark(ctx context.Context, dateStr string, dryRun bool) (*dto.AutoMarkReport, error) {
	start := time.Now()

	day, err := utils.ParseDate(dateStr, punchLocation())
	if err != nil {
		return nil, pkgerrors.InvalidDate
	}

	report := &dto.AutoMarkReport{
		Date:   utils.FormatDate(day),
		DryRun: dryRun,
	}

	if day.Weekday() == time.Sunday {
		report.Skipped = true
		metrics.RecordAutoMarkRun("skipped_sunday", 0, time.Since(start).Seconds())
		logger.Logger.Info("Auto-mark skipped, date is a Sunday", zap.String("date", report.Date))
		return report, nil
	}

	db := database.DB().WithContext(ctx)

	holiday, err := findHoliday(db, day)
	if err != nil {
		return nil, err
	}

	var employees []model.Employee
	if err := db.Where("status = ?", model.EmployeeStatusActive).Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	// 一次取出当日已有的考勤记录，避免逐员工查询
	var existing []model.AttendanceDay
	if err := db.Where("date = ?", day).Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to list attendance days: %w", err)
	}
	marked := make(map[int64]bool, len(existing))
	for _, d := range existing {
		marked[d.EmployeeID] = true
	}

	var autoLeavePublicIDs []int64
	for _, employee := range employees {
		if marked[employee.ID] {
			continue
		}

		var markErr error
		switch {
		case holiday != nil:
			markErr = s.markDay(ctx, dryRun, employee.ID, day, model.AttendanceDay{
				Status:             holiday.DayStatus(),
				VerificationStatus: model.VerificationStatusVerified,
				HolidayID:          &holiday.ID,
			})
			if markErr == nil {
				report.HolidayMarked++
			}
		default:
			markErr = s.markNonHolidayDay(ctx, dryRun, &employee, day, report, &autoLeavePublicIDs)
		}
		if markErr != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("employee %d: %v", employee.PublicID, markErr))
		}
	}

	totalMarked := int64(report.HolidayMarked + report.LeaveMarked + report.AutoLeaveMarked)
	metrics.RecordAutoMarkRun("completed", totalMarked, time.Since(start).Seconds())

	if !dryRun && len(autoLeavePublicIDs) > 0 {
		s.publishAutoLeaveAlert(report.Date, autoLeavePublicIDs)
	}

	logger.Logger.Info("Auto-mark run completed",
		zap.String("date", report.Date),
		zap.Bool("dry_run", dryRun),
		zap.Int("holiday_marked", report.HolidayMarked),
		zap.Int("leave_marked", report.LeaveMarked),
		zap.Int("auto_leave_marked", report.AutoLeaveMarked),
		zap.Int("deferred", report.Deferred),
		zap.Int("errors", len(report.Errors)),
	)

	return report, nil
}

// markNonHolidayDay 处理无节假日情况下的单个员工：已批假 > 待审假挂起 > auto_leave
func (s *AttendanceService) markNonHolidayDay(ctx context.Context, dryRun bool, employee *model.Employee, day time.Time, report *dto.AutoMarkReport, autoLeavePublicIDs *[]int64) error {
	db := database.DB().WithContext(ctx)

	var approved model.LeaveRequest
	err := db.Where("employee_id = ? AND status = ? AND from_date <= ? AND to_date >= ?",
		employee.ID, model.LeaveRequestStatusApproved, day, day).
		First(&approved).Error
	if err == nil {
		status := leaveStatusForCategory(approved.Category)
		if !approved.IsPaid {
			status = model.DayStatusUnpaidLeave
		}
		markErr := s.markDay(ctx, dryRun, employee.ID, day, model.AttendanceDay{
			Status:             status,
			VerificationStatus: model.VerificationStatusVerified,
			LeaveRequestID:     &approved.ID,
			LeaveTypeID:        approved.LeaveTypeID,
		})
		if markErr == nil {
			report.LeaveMarked++
		}
		return markErr
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to query approved leave: %w", err)
	}

	var pendingCount int64
	err = db.Model(&model.LeaveRequest{}).
		Where("employee_id = ? AND status = ? AND from_date <= ? AND to_date >= ?",
			employee.ID, model.LeaveRequestStatusPending, day, day).
		Count(&pendingCount).Error
	if err != nil {
		return fmt.Errorf("failed to query pending leave: %w", err)
	}
	if pendingCount > 0 {
		// 审批结果出来之前不标记，等下一轮或人工处理
		report.Deferred++
		return nil
	}

	markErr := s.markDay(ctx, dryRun, employee.ID, day, model.AttendanceDay{
		Status:             model.DayStatusAutoLeave,
		VerificationStatus: model.VerificationStatusUnverified,
	})
	if markErr == nil {
		report.AutoLeaveMarked++
		*autoLeavePublicIDs = append(*autoLeavePublicIDs, employee.PublicID)
	}
	return markErr
}

// markDay 写入一条系统标记的考勤记录；dryRun 时只计数
func (s *AttendanceService) markDay(ctx context.Context, dryRun bool, employeeID int64, day time.Time, template model.AttendanceDay) error {
	if dryRun {
		return nil
	}
	record := template
	record.EmployeeID = employeeID
	record.Date = day
	record.IsPaidDay = model.IsPaidStatus(record.Status)
	return database.DB().WithContext(ctx).Create(&record).Error
}

// newAutoLeaveAlertMessage 组装一个批次的缺勤告警消息
func newAutoLeaveAlertMessage(date string, employeePublicIDs []int64, now time.Time) model.AutoLeaveAlertMessage {
	batchID := fmt.Sprintf("automark_%s", date)
	if id, err := snowflake.NextID(); err == nil {
		batchID = fmt.Sprintf("automark_%s_%d", date, id)
	}

	return model.AutoLeaveAlertMessage{
		BatchID:      batchID,
		Date:         date,
		ScheduledAt:  now.Format(time.RFC3339),
		EmployeeIDs:  employeePublicIDs,
		DelaySeconds: config.Cfg.AutoLeaveAlertDelaySeconds,
	}
}

func (s *AttendanceService) publishAutoLeaveAlert(date string, employeePublicIDs []int64) {
	msg := newAutoLeaveAlertMessage(date, employeePublicIDs, time.Now())
	if err := queue.PublishAutoLeaveAlert(msg); err != nil {
		logger.Logger.Error("Failed to publish auto-leave alert batch",
			zap.String("batch_id", msg.BatchID),
			zap.Int("employee_count", len(employeePublicIDs)),
			zap.Error(err),
		)
	}
}

func punchLocation() *time.Location {
	loc, err := time.LoadLocation(config.Cfg.PunchTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}
