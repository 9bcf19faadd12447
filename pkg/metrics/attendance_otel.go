package metrics

import (
	"context"
)

// RecordPunchRecorded 记录成功写入的打卡
func RecordPunchRecorded(punchType string, duration float64) {
	ctx := context.Background()
	m := GetMetrics()
	if m != nil {
		m.RecordPunchRecorded(ctx, punchType, duration)
	}
}

// RecordPunchRejected 记录被拒绝的打卡
func RecordPunchRejected(punchType, reason string) {
	ctx := context.Background()
	m := GetMetrics()
	if m != nil {
		m.RecordPunchRejected(ctx, punchType, reason)
	}
}

// RecordGeofenceDistance 记录打卡点到办公点的距离
func RecordGeofenceDistance(officeID int64, distance float64) {
	ctx := context.Background()
	m := GetMetrics()
	if m != nil {
		m.RecordGeofenceDistance(ctx, officeID, distance)
	}
}

// RecordAutoMarkRun 记录一次自动标记运行
func RecordAutoMarkRun(status string, marked int64, duration float64) {
	ctx := context.Background()
	m := GetMetrics()
	if m != nil {
		m.RecordAutoMarkRun(ctx, status, marked, duration)
	}
}

// RecordNotifySent 记录通知发送结果
func RecordNotifySent(template, provider, status string, duration float64) {
	ctx := context.Background()
	m := GetMetrics()
	if m != nil {
		m.RecordNotifySent(ctx, template, provider, status, duration)
	}
}

// RecordNotifyRetry 记录通知重试
func RecordNotifyRetry(template, reason string) {
	ctx := context.Background()
	m := GetMetrics()
	if m != nil {
		m.RecordNotifyRetry(ctx, template, reason)
	}
}
