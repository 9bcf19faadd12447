package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"OnDuty/internal/cache"
	"OnDuty/internal/model"
	"OnDuty/pkg/errors"
	"OnDuty/pkg/logger"
	"OnDuty/storage/mq"
)

type NotificationService interface {
	SendSMS(ctx context.Context, employeeID int64, phone, category string, payload map[string]interface{}) error
	HandleAutoLeaveAlert(ctx context.Context, msg model.AutoLeaveAlertMessage) error
}

var notificationService NotificationService

// SetNotificationService 设置通知服务（在 worker 启动时调用）
func SetNotificationService(s NotificationService) {
	notificationService = s
}

// StartSMSNotificationConsumer 启动短信通知消费者
// 同时承接普通通知消息和延迟投递的缺勤告警批次
func StartSMSNotificationConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var probe struct {
			Category string `json:"category"`
			BatchID  string `json:"batch_id"`
		}
		if err := json.Unmarshal(body, &probe); err != nil {
			return fmt.Errorf("failed to unmarshal notification message: %w", err)
		}

		if probe.BatchID != "" {
			return handleAutoLeaveAlert(ctx, body)
		}
		return handleSMSNotification(ctx, body)
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.QueueNotificationSMS,
		ConsumerTag:   "sms_notification_consumer",
		PrefetchCount: 20,
		Handler:       handler,
	})
}

func handleSMSNotification(ctx context.Context, body []byte) error {
	var msg model.NotificationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal SMS notification message: %w", err)
	}

	// 【幂等性检查】使用 SETNX 原子性地检查并标记消息正在处理
	processed, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
	if err != nil {
		logger.Logger.Warn("Failed to check message processed status",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
		// 如果检查失败，继续处理（不阻塞业务），但可能重复处理
	} else if !processed {
		logger.Logger.Info("Message already processed or being processed, skipping",
			zap.String("message_id", msg.MessageID),
			zap.Int64("employee_id", msg.EmployeeID),
		)
		return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
	}

	logger.Logger.Info("Processing SMS notification",
		zap.String("message_id", msg.MessageID),
		zap.Int64("employee_id", msg.EmployeeID),
		zap.String("category", msg.Category),
	)

	if notificationService == nil {
		logger.Logger.Error("NotificationService not initialized",
			zap.String("message_id", msg.MessageID),
		)
		cache.UnmarkMessageProcessing(ctx, msg.MessageID)
		return fmt.Errorf("notification service not initialized")
	}

	err = notificationService.SendSMS(ctx, msg.EmployeeID, msg.Phone, msg.Category, msg.Payload)
	if err != nil {
		// 如果是 SkipMessageError，标记为已处理并跳过（不重试）
		if errors.IsSkipMessageError(err) {
			if markErr := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); markErr != nil {
				logger.Logger.Warn("Failed to mark skipped message as processed",
					zap.String("message_id", msg.MessageID),
					zap.Error(markErr),
				)
			}
			return err
		}

		// 其他错误：取消标记，允许重试
		cache.UnmarkMessageProcessing(ctx, msg.MessageID)
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
		logger.Logger.Warn("Failed to mark message as processed",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
		// 不影响主流程，因为已经处理成功了
	}

	return nil
}

func handleAutoLeaveAlert(ctx context.Context, body []byte) error {
	var msg model.AutoLeaveAlertMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal auto-leave alert message: %w", err)
	}

	processed, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
	if err != nil {
		logger.Logger.Warn("Failed to check message processed status",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
	} else if !processed {
		logger.Logger.Info("Message already processed or being processed, skipping",
			zap.String("message_id", msg.MessageID),
			zap.String("batch_id", msg.BatchID),
		)
		return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
	}

	logger.Logger.Info("Processing auto-leave alert batch",
		zap.String("message_id", msg.MessageID),
		zap.String("batch_id", msg.BatchID),
		zap.Int("employee_count", len(msg.EmployeeIDs)),
	)

	if notificationService == nil {
		cache.UnmarkMessageProcessing(ctx, msg.MessageID)
		return fmt.Errorf("notification service not initialized")
	}

	if err := notificationService.HandleAutoLeaveAlert(ctx, msg); err != nil {
		cache.UnmarkMessageProcessing(ctx, msg.MessageID)
		return fmt.Errorf("failed to process auto-leave alert batch: %w", err)
	}

	if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
		logger.Logger.Warn("Failed to mark message as processed",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
	}

	return nil
}

// StartAttendanceEventConsumer 启动考勤事件消费者，消费事件总线上的领域事件
func StartAttendanceEventConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var event model.EventMessage
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("failed to unmarshal event message: %w", err)
		}

		logger.Logger.Info("Attendance event received",
			zap.String("event_key", event.EventKey),
			zap.String("event_type", event.EventType),
			zap.String("occurred_at", event.OccurredAt),
		)

		// 事件总线目前只做审计落日志，后续接入下游订阅方
		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.QueueAttendanceEvents,
		ConsumerTag:   "attendance_event_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartAllConsumers 启动所有消费者（在 worker 启动时调用）
func StartAllConsumers(ctx context.Context) {
	var wg sync.WaitGroup

	consumers := []struct {
		name     string
		consumer func(context.Context) error
	}{
		{"sms_notification", StartSMSNotificationConsumer},
		{"attendance_event", StartAttendanceEventConsumer},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func(name string, consumer func(context.Context) error) {
			defer wg.Done()

			logger.Logger.Info("Starting consumer",
				zap.String("consumer_name", name),
			)

			if err := consumer(ctx); err != nil {
				logger.Logger.Error("Consumer exited with error",
					zap.String("consumer_name", name),
					zap.Error(err),
				)
			}
		}(c.name, c.consumer)
	}

	wg.Wait()

	logger.Logger.Info("All consumers started")
}
