package model

import "time"

// LeaveCategory 假别枚举
type LeaveCategory string

const (
	LeaveCategoryCasual           LeaveCategory = "casual"            // 事假
	LeaveCategorySick             LeaveCategory = "sick"              // 病假
	LeaveCategorySpecial          LeaveCategory = "special"           // 特别假
	LeaveCategoryEmergency        LeaveCategory = "emergency"         // 紧急假
	LeaveCategoryUnpaid           LeaveCategory = "unpaid"            // 无薪假
	LeaveCategoryMandatoryHoliday LeaveCategory = "mandatory_holiday" // 法定假日
)

// LeaveType 假别定义模型
type LeaveType struct {
	BaseModel
	Name      string        `gorm:"type:varchar(64);not null" json:"name"`
	Category  LeaveCategory `gorm:"type:varchar(24);not null;index:idx_leave_types_category" json:"category"`
	IsPaid    bool          `gorm:"not null;default:true" json:"is_paid"`
	FixedDate *time.Time    `gorm:"type:date" json:"fixed_date,omitempty"`
	IsActive  bool          `gorm:"not null;default:true" json:"is_active"`
}

// TableName 指定表名
func (LeaveType) TableName() string {
	return "leave_types"
}

// LeaveRequestStatus 请假单状态枚举
type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"  // 待审批
	LeaveRequestStatusApproved LeaveRequestStatus = "approved" // 已批准
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected" // 已驳回
)

// LeaveRequest 请假单模型
type LeaveRequest struct {
	BaseModel
	EmployeeID  int64              `gorm:"not null;index:idx_leave_requests_employee" json:"employee_id"`
	LeaveTypeID *int64             `json:"leave_type_id,omitempty"`
	Category    LeaveCategory      `gorm:"type:varchar(24);not null" json:"category"`
	FromDate    time.Time          `gorm:"type:date;not null" json:"from_date"`
	ToDate      time.Time          `gorm:"type:date;not null" json:"to_date"`
	Reason      string             `gorm:"type:varchar(255);not null;default:''" json:"reason"`
	Status      LeaveRequestStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_leave_requests_status" json:"status"`

	ReviewedBy           *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt           *time.Time `gorm:"type:timestamptz" json:"reviewed_at,omitempty"`
	IsPaid               bool       `gorm:"not null;default:true" json:"is_paid"`
	DeductedFromBalance  bool       `gorm:"not null;default:false" json:"deducted_from_balance"`
}

// TableName 指定表名
func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// TotalDays 请假天数，闭区间
// 按日历日计数，本地时区的夏令时切换不影响结果
func (r *LeaveRequest) TotalDays() int {
	from := time.Date(r.FromDate.Year(), r.FromDate.Month(), r.FromDate.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(r.ToDate.Year(), r.ToDate.Month(), r.ToDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours()/24) + 1
}

// Covers 日期是否落在请假区间内
func (r *LeaveRequest) Covers(date time.Time) bool {
	return !date.Before(r.FromDate) && !date.After(r.ToDate)
}
