package schedule

// 考勤调度器：每天固定时间对前一天做批量补标记

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"OnDuty/config"
	"OnDuty/internal/cache"
	"OnDuty/internal/service"
	"OnDuty/pkg/logger"
	"OnDuty/utils"
)

var (
	attendanceSchedOnce sync.Once
	attendanceSchedInst *AttendanceScheduler
)

type AttendanceScheduler struct {
	logger      *zap.Logger
	jobRunning  bool
	jobMu       sync.Mutex
	lastRunTime time.Time
}

func GetAttendanceScheduler() *AttendanceScheduler {
	attendanceSchedOnce.Do(func() {
		attendanceSchedInst = &AttendanceScheduler{
			logger: logger.Logger,
		}
	})
	return attendanceSchedInst
}

// RunDailyAutoMark 对前一个考勤日执行自动标记
// redis 标记保证重启或多实例下同一天只会真正执行一次
func (s *AttendanceScheduler) RunDailyAutoMark(ctx context.Context) error {
	s.jobMu.Lock()
	if s.jobRunning {
		s.jobMu.Unlock()
		s.logger.Info("Auto-mark job already running, skipping")
		return nil
	}
	s.jobRunning = true
	s.jobMu.Unlock()

	defer func() {
		s.jobMu.Lock()
		s.jobRunning = false
		s.jobMu.Unlock()
	}()

	startTime := time.Now()
	s.lastRunTime = startTime

	loc, err := time.LoadLocation(config.Cfg.PunchTimezone)
	if err != nil {
		loc = time.Local
	}
	target := utils.FormatDate(time.Now().In(loc).AddDate(0, 0, -1))

	done, err := cache.IsAutoMarkDone(ctx, target)
	if err != nil {
		s.logger.Warn("Failed to check auto-mark marker, proceeding",
			zap.String("date", target),
			zap.Error(err),
		)
	} else if done {
		s.logger.Info("Auto-mark already done for date, skipping",
			zap.String("date", target),
		)
		return nil
	}

	s.logger.Info("Starting daily auto-mark run",
		zap.String("date", target),
		zap.Time("start_time", startTime),
	)

	report, err := service.Attendance().RunDailyAutoMark(ctx, target, false)
	if err != nil {
		s.logger.Error("Daily auto-mark run failed",
			zap.String("date", target),
			zap.Error(err),
		)
		return err
	}

	if err := cache.MarkAutoMarkDone(ctx, target); err != nil {
		s.logger.Warn("Failed to set auto-mark marker",
			zap.String("date", target),
			zap.Error(err),
		)
	}

	s.logger.Info("Daily auto-mark run completed",
		zap.String("date", target),
		zap.Bool("skipped", report.Skipped),
		zap.Int("holiday_marked", report.HolidayMarked),
		zap.Int("leave_marked", report.LeaveMarked),
		zap.Int("auto_leave_marked", report.AutoLeaveMarked),
		zap.Int("deferred", report.Deferred),
		zap.Duration("duration", time.Since(startTime)),
	)

	return nil
}
