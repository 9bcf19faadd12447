package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"OnDuty/config"
	"OnDuty/internal/model"
	"OnDuty/pkg/logger"
	"OnDuty/pkg/metrics"
	"OnDuty/pkg/notify"
	"OnDuty/storage/database"
	"OnDuty/utils"
)

var (
	notificationSvc  *NotificationService
	notificationOnce sync.Once
)

func Notification() *NotificationService {
	notificationOnce.Do(func() {
		notificationSvc = &NotificationService{}
	})
	return notificationSvc
}

// NotificationService 短信通知投递，消费端的落地实现
type NotificationService struct{}

// SendSMS 给单个员工发送模板短信
func (s *NotificationService) SendSMS(ctx context.Context, employeeID int64, phone, category string, payload map[string]interface{}) error {
	start := time.Now()

	templateParam := "{}"
	if len(payload) > 0 {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal template param: %w", err)
		}
		templateParam = string(raw)
	}

	err := notify.SendSingle(ctx, phone, config.Cfg.NotifySignName, config.Cfg.NotifyTemplateCode, templateParam)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordNotifySent(category, config.Cfg.NotifyProvider, status, time.Since(start).Seconds())

	if err != nil {
		logger.Logger.Error("Failed to send SMS notification",
			zap.Int64("employee_id", employeeID),
			zap.String("category", category),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("SMS notification sent",
		zap.Int64("employee_id", employeeID),
		zap.String("category", category),
	)
	return nil
}

// HandleAutoLeaveAlert 处理延迟投递的缺勤告警批次
// 投递时已过了补卡窗口，发送前复核该日是否仍是待核实的 auto_leave
func (s *NotificationService) HandleAutoLeaveAlert(ctx context.Context, msg model.AutoLeaveAlertMessage) error {
	day, err := utils.ParseDate(msg.Date, punchLocation())
	if err != nil {
		return fmt.Errorf("invalid date in auto-leave alert: %w", err)
	}

	var sent, skipped int
	var lastErr error
	for _, publicID := range msg.EmployeeIDs {
		var employee model.Employee
		err := database.DB().WithContext(ctx).
			Where("public_id = ?", publicID).
			First(&employee).Error
		if err != nil {
			logger.Logger.Warn("Auto-leave alert: employee not found",
				zap.Int64("employee_id", publicID),
				zap.String("batch_id", msg.BatchID),
			)
			skipped++
			continue
		}

		var record model.AttendanceDay
		err = database.DB().WithContext(ctx).
			Where("employee_id = ? AND date = ? AND status = ? AND verification_status = ?",
				employee.ID, day, model.DayStatusAutoLeave, model.VerificationStatusUnverified).
			First(&record).Error
		if err != nil {
			// 已被人工核实或改写，不再打扰
			skipped++
			continue
		}

		payload := map[string]interface{}{
			"name": employee.Name,
			"date": msg.Date,
		}
		if err := s.SendSMS(ctx, publicID, employee.Phone, "auto_leave", payload); err != nil {
			metrics.RecordNotifyRetry("auto_leave", "send_failure")
			lastErr = err
			continue
		}
		sent++
	}

	if config.Cfg.NotifyAdminPhone != "" && sent > 0 {
		payload := map[string]interface{}{
			"date":  msg.Date,
			"count": sent,
		}
		if err := s.SendSMS(ctx, 0, config.Cfg.NotifyAdminPhone, "auto_leave_summary", payload); err != nil {
			logger.Logger.Warn("Failed to send admin summary for auto-leave batch",
				zap.String("batch_id", msg.BatchID),
				zap.Error(err),
			)
		}
	}

	logger.Logger.Info("Auto-leave alert batch handled",
		zap.String("batch_id", msg.BatchID),
		zap.String("date", msg.Date),
		zap.Int("sent", sent),
		zap.Int("skipped", skipped),
	)

	return lastErr
}
