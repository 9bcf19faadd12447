package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"OnDuty/config"
	"OnDuty/internal/cache"
	"OnDuty/internal/model"
	"OnDuty/internal/model/dto"
	"OnDuty/internal/queue"
	pkgerrors "OnDuty/pkg/errors"
	"OnDuty/pkg/logger"
	"OnDuty/pkg/metrics"
	"OnDuty/storage/database"
	"OnDuty/utils"
)

var (
	punchService *PunchService
	punchOnce    sync.Once
)

func Punch() *PunchService {
	punchOnce.Do(func() {
		punchService = &PunchService{}
	})
	return punchService
}

type PunchService struct{}

// punchAggregate 打卡序列聚合结果
type punchAggregate struct {
	FirstIn    *model.PunchEvent
	LastOut    *model.PunchEvent
	WorkHours  float64
	BreakHours float64
	OnBreak    bool
}

// aggregatePunches 按时间序解释交替的 in/out 打卡对：
// 第一对 in→out 计入工时，紧随其后的 out→in 间隔计入休息时长，
// 其余的对不再累加。兼容历史口径，刻意保持这种不对称处理。
func aggregatePunches(punches []model.PunchEvent) punchAggregate {
	var agg punchAggregate
	var openIn *model.PunchEvent
	var prevOut *model.PunchEvent
	workDone := false
	breakDone := false

	for i := range punches {
		p := &punches[i]
		switch p.Type {
		case model.PunchTypeIn:
			if agg.FirstIn == nil {
				agg.FirstIn = p
			}
			if prevOut != nil && workDone && !breakDone {
				agg.BreakHours += p.PunchedAt.Sub(prevOut.PunchedAt).Hours()
				breakDone = true
			}
			openIn = p
		case model.PunchTypeOut:
			agg.LastOut = p
			if openIn != nil {
				if !workDone {
					agg.WorkHours += p.PunchedAt.Sub(openIn.PunchedAt).Hours()
					workDone = true
				}
				openIn = nil
			}
			prevOut = p
		}
	}

	agg.OnBreak = openIn != nil
	agg.WorkHours = utils.Round2(agg.WorkHours)
	agg.BreakHours = utils.Round2(agg.BreakHours)
	return agg
}

// RecordPunch 记录一次打卡并重算当日考勤
// 围栏校验通过后才允许写入；同类型连续打卡会被拒绝
func (s *PunchService) RecordPunch(ctx context.Context, req *dto.RecordPunchRequest) (*dto.AttendanceDaySnapshot, error) {
	start := time.Now()

	if !model.ValidPunchType(req.Type) {
		return nil, pkgerrors.InvalidPunchType
	}
	if !utils.ValidCoordinate(req.Latitude, req.Longitude) {
		return nil, pkgerrors.InvalidCoordinates
	}

	fence, err := Office().Evaluate(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}
	if !fence.Allowed {
		metrics.RecordPunchRejected(req.Type, "geofence")
		return nil, pkgerrors.GeofenceRejected.WithDetails(map[string]interface{}{
			"distance_meters": fence.DistanceMeters,
			"radius_meters":   fence.RadiusMeters,
			"excess_meters":   fence.ExcessMeters,
			"office_id":       fence.OfficeID,
			"office_name":     fence.OfficeName,
		})
	}

	employee, err := s.getActiveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(config.Cfg.PunchTimezone)
	if err != nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	day := utils.DateOnly(now)
	dateStr := utils.FormatDate(day)

	// 同一员工同一天的打卡串行化，避免并发双写都自认为是首次打卡
	lockKey := fmt.Sprintf("punch:%d:%s", employee.ID, dateStr)
	locked, err := cache.TryLock(ctx, lockKey, 10*time.Second)
	if err != nil {
		logger.Logger.Warn("Failed to acquire punch lock, falling through to row lock",
			zap.Int64("employee_id", employee.ID),
			zap.Error(err),
		)
	} else if !locked {
		return nil, pkgerrors.PunchSequenceConflict
	} else {
		defer func() {
			if err := cache.Unlock(context.WithoutCancel(ctx), lockKey); err != nil {
				logger.Logger.Warn("Failed to release punch lock", zap.Error(err))
			}
		}()
	}

	var snapshot *dto.AttendanceDaySnapshot
	err = database.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 行级锁定当日记录（若存在），串行化同日的读改写
		var existing model.AttendanceDay
		dayErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("employee_id = ? AND date = ?", employee.ID, day).
			First(&existing).Error
		hasDay := dayErr == nil
		if dayErr != nil && !errors.Is(dayErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to lock attendance day: %w", dayErr)
		}

		var last model.PunchEvent
		lastErr := tx.Where("employee_id = ? AND punch_date = ?", employee.ID, day).
			Order("punched_at DESC").
			First(&last).Error
		if lastErr == nil && string(last.Type) == req.Type {
			return pkgerrors.PunchSequenceConflict
		}
		if lastErr != nil && !errors.Is(lastErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to query last punch: %w", lastErr)
		}

		event := model.PunchEvent{
			EmployeeID: employee.ID,
			PunchDate:  day,
			PunchedAt:  now,
			Type:       model.PunchType(req.Type),
			Latitude:   req.Latitude,
			Longitude:  req.Longitude,
			Distance:   fence.DistanceMeters,
			Location:   req.Location,
			Note:       req.Note,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create punch event: %w", err)
		}

		var punches []model.PunchEvent
		if err := tx.Where("employee_id = ? AND punch_date = ?", employee.ID, day).
			Order("punched_at ASC").
			Find(&punches).Error; err != nil {
			return fmt.Errorf("failed to load punches: %w", err)
		}

		agg := aggregatePunches(punches)

		dayRecord := existing
		if !hasDay {
			dayRecord = model.AttendanceDay{
				EmployeeID: employee.ID,
				Date:       day,
			}
		}
		applyAggregate(&dayRecord, agg)

		if !dayRecord.Pinned {
			holiday, err := findHoliday(tx, day)
			if err != nil {
				return err
			}
			status, verification := classifyDay(day, len(punches) > 0, holiday, agg.WorkHours)
			dayRecord.Status = status
			dayRecord.VerificationStatus = verification
			dayRecord.IsPaidDay = model.IsPaidStatus(status)
			if holiday != nil && (status == model.DayStatusMandatoryHoliday || status == model.DayStatusSpecialHoliday) {
				dayRecord.HolidayID = &holiday.ID
			}
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_in_time", "last_out_time",
				"first_in_lat", "first_in_lon", "last_out_lat", "last_out_lon",
				"first_in_place", "last_out_place",
				"total_work_hours", "total_break_hours", "on_break",
				"status", "verification_status", "is_paid_day", "holiday_id",
				"updated_at",
			}),
		}).Create(&dayRecord).Error; err != nil {
			return fmt.Errorf("failed to upsert attendance day: %w", err)
		}

		snapshot = &dto.AttendanceDaySnapshot{
			Date:               dateStr,
			Status:             string(dayRecord.Status),
			VerificationStatus: string(dayRecord.VerificationStatus),
			FirstInTime:        dayRecord.FirstInTime,
			LastOutTime:        dayRecord.LastOutTime,
			TotalWorkHours:     dayRecord.TotalWorkHours,
			TotalBreakHours:    dayRecord.TotalBreakHours,
			OnBreak:            dayRecord.OnBreak,
			IsPaidDay:          dayRecord.IsPaidDay,
			Pinned:             dayRecord.Pinned,
			DistanceMeters:     fence.DistanceMeters,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPunchRecorded(req.Type, time.Since(start).Seconds())

	// 事件投递失败不影响打卡结果
	go func() {
		if err := queue.PublishPunchRecordedEvent(req.EmployeeID, dateStr, req.Type); err != nil {
			logger.Logger.Warn("Failed to publish punch recorded event",
				zap.Int64("employee_id", req.EmployeeID),
				zap.Error(err),
			)
		}
	}()

	logger.Logger.Info("Punch recorded",
		zap.Int64("employee_id", req.EmployeeID),
		zap.String("type", req.Type),
		zap.String("date", dateStr),
		zap.Float64("distance_meters", fence.DistanceMeters),
	)

	return snapshot, nil
}

// applyAggregate 将聚合结果写回考勤日
func applyAggregate(day *model.AttendanceDay, agg punchAggregate) {
	if agg.FirstIn != nil {
		t := agg.FirstIn.PunchedAt
		day.FirstInTime = &t
		day.FirstInLat = agg.FirstIn.Latitude
		day.FirstInLon = agg.FirstIn.Longitude
		day.FirstInPlace = agg.FirstIn.Location
	}
	if agg.LastOut != nil {
		t := agg.LastOut.PunchedAt
		day.LastOutTime = &t
		day.LastOutLat = agg.LastOut.Latitude
		day.LastOutLon = agg.LastOut.Longitude
		day.LastOutPlace = agg.LastOut.Location
	}
	if agg.OnBreak {
		day.LastOutTime = nil
	}
	day.TotalWorkHours = agg.WorkHours
	day.TotalBreakHours = agg.BreakHours
	day.OnBreak = agg.OnBreak
}

func (s *PunchService) getActiveEmployee(ctx context.Context, publicID int64) (*model.Employee, error) {
	var employee model.Employee
	err := database.DB().WithContext(ctx).
		Where("public_id = ? AND status = ?", publicID, model.EmployeeStatusActive).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.EmployeeNotFound
		}
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}
	return &employee, nil
}

// ListPunches 查询某员工某日的打卡序列
func (s *PunchService) ListPunches(ctx context.Context, employeePublicID int64, dateStr string) ([]model.PunchEvent, error) {
	employee, err := s.getActiveEmployee(ctx, employeePublicID)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(config.Cfg.PunchTimezone)
	if err != nil {
		loc = time.Local
	}
	day, err := utils.ParseDate(dateStr, loc)
	if err != nil {
		return nil, pkgerrors.InvalidDate
	}

	var punches []model.PunchEvent
	err = database.DB().WithContext(ctx).
		Where("employee_id = ? AND punch_date = ?", employee.ID, day).
		Order("punched_at ASC").
		Find(&punches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	return punches, nil
}
