package model

import "time"

// PunchType 打卡类型枚举
type PunchType string

const (
	PunchTypeIn  PunchType = "in"  // 上班打卡
	PunchTypeOut PunchType = "out" // 下班打卡
)

// ValidPunchType 校验打卡类型取值
func ValidPunchType(t string) bool {
	return t == string(PunchTypeIn) || t == string(PunchTypeOut)
}

// PunchEvent 打卡事件模型，写入后不可变更
type PunchEvent struct {
	BaseModel
	EmployeeID int64     `gorm:"not null;index:idx_punch_events_employee_date" json:"employee_id"`
	PunchDate  time.Time `gorm:"type:date;not null;index:idx_punch_events_employee_date" json:"punch_date"`
	PunchedAt  time.Time `gorm:"type:timestamptz;not null" json:"punched_at"`
	Type       PunchType `gorm:"type:varchar(8);not null" json:"type"`
	Latitude   float64   `gorm:"type:numeric(10,7);not null" json:"latitude"`
	Longitude  float64   `gorm:"type:numeric(10,7);not null" json:"longitude"`
	Distance   float64   `gorm:"type:numeric(10,2);not null;default:0" json:"distance"` // 距离激活办公点的米数
	Location   string    `gorm:"type:varchar(255);not null;default:''" json:"location"` // 展示用地点描述
	Note       string    `gorm:"type:varchar(255);not null;default:''" json:"note"`
}

// TableName 指定表名
func (PunchEvent) TableName() string {
	return "punch_events"
}
