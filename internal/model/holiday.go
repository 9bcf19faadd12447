package model

import "time"

// HolidayType 节假日类型枚举
type HolidayType string

const (
	HolidayTypeMandatory HolidayType = "mandatory" // 法定
	HolidayTypeSpecial   HolidayType = "special"   // 特别
	HolidayTypeOptional  HolidayType = "optional"  // 可选
)

// Holiday 节假日模型，按日期唯一
type Holiday struct {
	BaseModel
	Name   string      `gorm:"type:varchar(128);not null" json:"name"`
	Date   time.Time   `gorm:"type:date;not null;uniqueIndex:uniq_holidays_date" json:"date"`
	Type   HolidayType `gorm:"type:varchar(16);not null;default:'mandatory'" json:"type"`
	IsPaid bool        `gorm:"not null;default:true" json:"is_paid"`
}

// TableName 指定表名
func (Holiday) TableName() string {
	return "holidays"
}

// DayStatus 节假日对应的考勤状态
func (h *Holiday) DayStatus() DayStatus {
	if h.Type == HolidayTypeSpecial {
		return DayStatusSpecialHoliday
	}
	return DayStatusMandatoryHoliday
}
