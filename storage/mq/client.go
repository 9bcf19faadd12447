package mq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"OnDuty/config"
	"OnDuty/pkg/logger"
	pkgmq "OnDuty/pkg/mq"
)

var (
	conn     *amqp.Connection
	connOnce sync.Once
	connErr  error
)

// 交换机与队列的拓扑在这里统一声明，消费端和发布端都依赖这份拓扑
const (
	ExchangeDelayed      = "attendance.delayed"
	ExchangeNotification = "notification.topic"
	ExchangeEvents       = "events.topic"

	QueueNotificationSMS  = "notification.sms"
	QueueAttendanceEvents = "events.attendance"
)

func Init() error {
	connOnce.Do(func() {
		url := config.Cfg.GetRabbitMQURL()

		conn, connErr = amqp.Dial(url)
		if connErr != nil {
			logger.Logger.Error("Failed to connect to RabbitMQ", zap.Error(connErr))
			return
		}

		ch, err := conn.Channel()
		if err != nil {
			connErr = fmt.Errorf("failed to open setup channel: %w", err)
			return
		}
		defer ch.Close()

		if connErr = declareTopology(ch); connErr != nil {
			logger.Logger.Error("Failed to declare RabbitMQ topology", zap.Error(connErr))
			return
		}

		if connErr = pkgmq.InitMQMetrics(otel.Meter("onduty.mq")); connErr != nil {
			logger.Logger.Error("Failed to init MQ metrics", zap.Error(connErr))
			return
		}

		logger.Logger.Info("RabbitMQ initialized successfully")
	})

	return connErr
}

func Connection() *amqp.Connection {
	return conn
}

func Close(ctx context.Context) error {
	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// declareTopology 声明交换机、队列和绑定关系
// 延迟交换机依赖 rabbitmq_delayed_message_exchange 插件
func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(
		ExchangeDelayed,
		"x-delayed-message",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		amqp.Table{"x-delayed-type": "topic"},
	); err != nil {
		return fmt.Errorf("failed to declare delayed exchange: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeNotification, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare notification exchange: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeEvents, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare events exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(QueueNotificationSMS, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", QueueNotificationSMS, err)
	}
	if err := ch.QueueBind(QueueNotificationSMS, "notification.sms.*", ExchangeNotification, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", QueueNotificationSMS, err)
	}
	if err := ch.QueueBind(QueueNotificationSMS, "notification.sms.*", ExchangeDelayed, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s to delayed exchange: %w", QueueNotificationSMS, err)
	}

	if _, err := ch.QueueDeclare(QueueAttendanceEvents, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", QueueAttendanceEvents, err)
	}
	if err := ch.QueueBind(QueueAttendanceEvents, "#", ExchangeEvents, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", QueueAttendanceEvents, err)
	}

	return nil
}
