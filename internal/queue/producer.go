package queue

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"OnDuty/internal/model"
	"OnDuty/pkg/logger"
	"OnDuty/pkg/snowflake"
	"OnDuty/storage/mq"
)

// PublishAutoLeaveAlert 发布自动标记缺勤告警消息（延迟消息）
func PublishAutoLeaveAlert(msg model.AutoLeaveAlertMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.String("batch_id", msg.BatchID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("auto_leave_alert_%d", id)
	}

	delay := time.Duration(msg.DelaySeconds) * time.Second

	err := mq.PublishDelayedMessage(
		mq.ExchangeDelayed,
		"notification.sms.auto_leave", // routing key
		delay,
		msg,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish auto-leave alert message",
			zap.String("batch_id", msg.BatchID),
			zap.Int("employee_count", len(msg.EmployeeIDs)),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published auto-leave alert message",
		zap.String("message_id", msg.MessageID),
		zap.String("batch_id", msg.BatchID),
		zap.Int("employee_count", len(msg.EmployeeIDs)),
		zap.Duration("delay", delay),
	)

	return nil
}

// PublishSMSNotification 发布短信通知任务
func PublishSMSNotification(msg model.NotificationMessage) error {
	if msg.MessageID == "" {
		logger.Logger.Warn("MessageID is empty, generating fallback MessageID",
			zap.Int64("employee_id", msg.EmployeeID),
			zap.String("category", msg.Category),
		)
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.Int64("employee_id", msg.EmployeeID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("notification_sms_%d", id)
	}

	// 根据 category 构建 routing key，匹配 notification.sms.* 模式
	routingKey := fmt.Sprintf("notification.sms.%s", msg.Category)

	err := mq.PublishMessage(
		mq.ExchangeNotification,
		routingKey,
		msg,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish SMS notification",
			zap.String("message_id", msg.MessageID),
			zap.Int64("employee_id", msg.EmployeeID),
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published SMS notification",
		zap.String("message_id", msg.MessageID),
		zap.Int64("employee_id", msg.EmployeeID),
		zap.String("routing_key", routingKey),
	)

	return nil
}

// PublishLeaveReviewedEvent 发布请假审批完成事件
func PublishLeaveReviewedEvent(requestID, employeeID int64, decision string) error {
	event := model.EventMessage{
		EventID:    uuid.NewString(),
		EventKey:   "leave.reviewed",
		EventType:  "leave_reviewed",
		OccurredAt: time.Now().Format(time.RFC3339),
		Payload: map[string]interface{}{
			"leave_request_id": requestID,
			"employee_id":      employeeID,
			"decision":         decision,
		},
	}

	err := mq.PublishMessage(
		mq.ExchangeEvents,
		"leave.reviewed",
		event,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish leave reviewed event",
			zap.Int64("leave_request_id", requestID),
			zap.Int64("employee_id", employeeID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// PublishPunchRecordedEvent 发布打卡落库事件
func PublishPunchRecordedEvent(employeeID int64, date, punchType string) error {
	event := model.EventMessage{
		EventID:    uuid.NewString(),
		EventKey:   "punch.recorded",
		EventType:  "punch_recorded",
		OccurredAt: time.Now().Format(time.RFC3339),
		Payload: map[string]interface{}{
			"employee_id": employeeID,
			"date":        date,
			"punch_type":  punchType,
		},
	}

	err := mq.PublishMessage(
		mq.ExchangeEvents,
		"punch.recorded",
		event,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish punch recorded event",
			zap.Int64("employee_id", employeeID),
			zap.String("date", date),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// PublishPayrollFinalizedEvent 发布工资单定稿事件
func PublishPayrollFinalizedEvent(employeeID int64, year, month int, netPay float64) error {
	event := model.EventMessage{
		EventID:    uuid.NewString(),
		EventKey:   "payroll.finalized",
		EventType:  "payroll_finalized",
		OccurredAt: time.Now().Format(time.RFC3339),
		Payload: map[string]interface{}{
			"employee_id": employeeID,
			"year":        year,
			"month":       month,
			"net_pay":     netPay,
		},
	}

	err := mq.PublishMessage(
		mq.ExchangeEvents,
		"payroll.finalized",
		event,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish payroll finalized event",
			zap.Int64("employee_id", employeeID),
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Error(err),
		)
		return err
	}

	return nil
}
