package model

// AutoLeaveAlertMessage 自动标记缺勤告警消息，按批次聚合
type AutoLeaveAlertMessage struct {
	MessageID    string  `json:"message_id"` // 消息唯一ID，用于幂等性检查
	BatchID      string  `json:"batch_id"`
	Date         string  `json:"date"`
	ScheduledAt  string  `json:"scheduled_at"`
	EmployeeIDs  []int64 `json:"employee_ids"`
	DelaySeconds int     `json:"delay_seconds"`
}

// NotificationMessage 通知任务消息
type NotificationMessage struct {
	MessageID  string                 `json:"message_id"` // 消息唯一ID，用于幂等性检查
	Payload    map[string]interface{} `json:"payload"`
	Category   string                 `json:"category"`
	Channel    string                 `json:"channel"`
	Phone      string                 `json:"phone"`
	EmployeeID int64                  `json:"employee_id"`
	Date       string                 `json:"date,omitempty"`
}

// EventMessage 事件消息（用于事件总线）
type EventMessage struct {
	EventID    string                 `json:"event_id"` // 事件唯一ID，下游按此去重
	Payload    map[string]interface{} `json:"payload"`
	EventKey   string                 `json:"event_key"`
	EventType  string                 `json:"event_type"`
	OccurredAt string                 `json:"occurred_at"`
}
