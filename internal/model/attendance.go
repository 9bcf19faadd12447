package model

import "time"

// DayStatus 考勤日状态枚举
type DayStatus string

const (
	DayStatusFull             DayStatus = "full"              // 全勤
	DayStatusHalf             DayStatus = "half"              // 半勤
	DayStatusSunday           DayStatus = "sunday"            // 周日
	DayStatusMandatoryHoliday DayStatus = "mandatory_holiday" // 法定假日
	DayStatusSpecialHoliday   DayStatus = "special_holiday"   // 特别假日
	DayStatusLeave            DayStatus = "leave"             // 通用请假
	DayStatusCasualLeave      DayStatus = "casual_leave"      // 事假
	DayStatusSickLeave        DayStatus = "sick_leave"        // 病假
	DayStatusSpecialLeave     DayStatus = "special_leave"     // 特别假
	DayStatusUnpaidLeave      DayStatus = "unpaid_leave"      // 无薪假
	DayStatusAutoLeave        DayStatus = "auto_leave"        // 自动标记缺勤
	DayStatusWFH              DayStatus = "wfh"               // 居家办公
)

// VerificationStatus 考勤日核验状态
type VerificationStatus string

const (
	VerificationStatusVerified   VerificationStatus = "verified"   // 已核验
	VerificationStatusUnverified VerificationStatus = "unverified" // 待核验
)

// paidStatuses 计薪状态集合
var paidStatuses = map[DayStatus]bool{
	DayStatusFull:             true,
	DayStatusHalf:             true,
	DayStatusCasualLeave:      true,
	DayStatusSickLeave:        true,
	DayStatusSpecialLeave:     true,
	DayStatusMandatoryHoliday: true,
	DayStatusSpecialHoliday:   true,
	DayStatusSunday:           true,
	DayStatusWFH:              true,
}

// IsPaidStatus 状态是否计薪
func IsPaidStatus(s DayStatus) bool {
	return paidStatuses[s]
}

var dayStatuses = map[DayStatus]bool{
	DayStatusFull:             true,
	DayStatusHalf:             true,
	DayStatusSunday:           true,
	DayStatusMandatoryHoliday: true,
	DayStatusSpecialHoliday:   true,
	DayStatusLeave:            true,
	DayStatusCasualLeave:      true,
	DayStatusSickLeave:        true,
	DayStatusSpecialLeave:     true,
	DayStatusUnpaidLeave:      true,
	DayStatusAutoLeave:        true,
	DayStatusWFH:              true,
}

// ValidDayStatus 是否为已知的考勤状态
func ValidDayStatus(s DayStatus) bool {
	return dayStatuses[s]
}

// AttendanceDay 考勤日模型，(employee, date) 唯一
type AttendanceDay struct {
	BaseModel
	EmployeeID int64     `gorm:"not null;uniqueIndex:uniq_attendance_days_employee_date" json:"employee_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uniq_attendance_days_employee_date" json:"date"`

	FirstInTime  *time.Time `gorm:"type:timestamptz" json:"first_in_time,omitempty"`
	LastOutTime  *time.Time `gorm:"type:timestamptz" json:"last_out_time,omitempty"`
	FirstInLat   float64    `gorm:"type:numeric(10,7);not null;default:0" json:"first_in_lat"`
	FirstInLon   float64    `gorm:"type:numeric(10,7);not null;default:0" json:"first_in_lon"`
	LastOutLat   float64    `gorm:"type:numeric(10,7);not null;default:0" json:"last_out_lat"`
	LastOutLon   float64    `gorm:"type:numeric(10,7);not null;default:0" json:"last_out_lon"`
	FirstInPlace string     `gorm:"type:varchar(255);not null;default:''" json:"first_in_place"`
	LastOutPlace string     `gorm:"type:varchar(255);not null;default:''" json:"last_out_place"`

	TotalWorkHours  float64 `gorm:"type:numeric(6,2);not null;default:0" json:"total_work_hours"`
	TotalBreakHours float64 `gorm:"type:numeric(6,2);not null;default:0" json:"total_break_hours"`
	OnBreak         bool    `gorm:"not null;default:false" json:"on_break"`

	Status             DayStatus          `gorm:"type:varchar(24);not null;default:'half';index:idx_attendance_days_status" json:"status"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(16);not null;default:'unverified'" json:"verification_status"`
	IsPaidDay          bool               `gorm:"not null;default:false" json:"is_paid_day"`
	Pinned             bool               `gorm:"not null;default:false" json:"pinned"` // 置顶后自动重算不再覆盖状态

	HolidayID      *int64 `gorm:"index" json:"holiday_id,omitempty"`
	LeaveRequestID *int64 `gorm:"index" json:"leave_request_id,omitempty"`
	LeaveTypeID    *int64 `json:"leave_type_id,omitempty"`
	Note           string `gorm:"type:varchar(255);not null;default:''" json:"note"`
}

// TableName 指定表名
func (AttendanceDay) TableName() string {
	return "attendance_days"
}
