package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 打卡相关指标
	PunchRecordedTotal     metric.Int64Counter
	PunchRejectedTotal     metric.Int64Counter
	PunchHandleDuration    metric.Float64Histogram
	GeofenceDistanceMeters metric.Float64Histogram

	// 自动标记相关指标
	AutoMarkRunTotal      metric.Int64Counter
	AutoMarkMarkedTotal   metric.Int64Counter
	AutoMarkDuration      metric.Float64Histogram

	// 通知相关指标
	NotifySentTotal    metric.Int64Counter
	NotifySendDuration metric.Float64Histogram
	NotifyRetryTotal   metric.Int64Counter
}

var (
	// 全局指标实例
	metrics *OTelMetrics
	// meter 用于创建指标
	meter = otel.Meter("onduty")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	// 打卡相关指标
	metrics.PunchRecordedTotal, err = meter.Int64Counter(
		"punch_recorded_total",
		metric.WithDescription("Total number of punch events recorded"),
		metric.WithUnit("{punch}"),
	)
	if err != nil {
		return err
	}

	metrics.PunchRejectedTotal, err = meter.Int64Counter(
		"punch_rejected_total",
		metric.WithDescription("Total number of punch events rejected"),
		metric.WithUnit("{punch}"),
	)
	if err != nil {
		return err
	}

	metrics.PunchHandleDuration, err = meter.Float64Histogram(
		"punch_handle_duration_seconds",
		metric.WithDescription("Time spent handling a punch request in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.GeofenceDistanceMeters, err = meter.Float64Histogram(
		"geofence_distance_meters",
		metric.WithDescription("Distance between punch location and active office"),
		metric.WithUnit("m"),
	)
	if err != nil {
		return err
	}

	// 自动标记相关指标
	metrics.AutoMarkRunTotal, err = meter.Int64Counter(
		"auto_mark_run_total",
		metric.WithDescription("Total number of auto-mark runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	metrics.AutoMarkMarkedTotal, err = meter.Int64Counter(
		"auto_mark_marked_total",
		metric.WithDescription("Total number of days marked by auto-mark"),
		metric.WithUnit("{day}"),
	)
	if err != nil {
		return err
	}

	metrics.AutoMarkDuration, err = meter.Float64Histogram(
		"auto_mark_duration_seconds",
		metric.WithDescription("Time spent running a full auto-mark pass in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	// 通知相关指标
	metrics.NotifySentTotal, err = meter.Int64Counter(
		"notify_sent_total",
		metric.WithDescription("Total number of notifications sent"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return err
	}

	metrics.NotifySendDuration, err = meter.Float64Histogram(
		"notify_send_duration_seconds",
		metric.WithDescription("Time spent sending a notification in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.NotifyRetryTotal, err = meter.Int64Counter(
		"notify_retry_total",
		metric.WithDescription("Total number of notification retry attempts"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// GetMetrics 获取全局指标实例
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordPunchRecorded 记录成功写入的打卡
func (m *OTelMetrics) RecordPunchRecorded(ctx context.Context, punchType string, duration float64) {
	m.PunchRecordedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("punch_type", punchType),
		attribute.String("status", "success"),
	))
	m.PunchHandleDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("punch_type", punchType),
	))
}

// RecordPunchRejected 记录被拒绝的打卡
func (m *OTelMetrics) RecordPunchRejected(ctx context.Context, punchType, reason string) {
	m.PunchRejectedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("punch_type", punchType),
		attribute.String("reason", reason),
	))
}

// RecordGeofenceDistance 记录打卡点到办公点的距离
func (m *OTelMetrics) RecordGeofenceDistance(ctx context.Context, officeID int64, distance float64) {
	m.GeofenceDistanceMeters.Record(ctx, distance, metric.WithAttributes(
		attribute.String("office_id", fmt.Sprintf("%d", officeID)),
	))
}

// RecordAutoMarkRun 记录一次自动标记运行
func (m *OTelMetrics) RecordAutoMarkRun(ctx context.Context, status string, marked int64, duration float64) {
	m.AutoMarkRunTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
	m.AutoMarkMarkedTotal.Add(ctx, marked, metric.WithAttributes(
		attribute.String("status", status),
	))
	m.AutoMarkDuration.Record(ctx, duration)
}

// RecordNotifySent 记录通知发送结果
func (m *OTelMetrics) RecordNotifySent(ctx context.Context, template, provider, status string, duration float64) {
	m.NotifySentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("template", template),
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
	m.NotifySendDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("template", template),
		attribute.String("provider", provider),
	))
}

// RecordNotifyRetry 记录通知重试
func (m *OTelMetrics) RecordNotifyRetry(ctx context.Context, template, reason string) {
	m.NotifyRetryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("template", template),
		attribute.String("retry_reason", reason),
	))
}
