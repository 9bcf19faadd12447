package dto

// ========== Attendance 相关 DTO ==========

// DailyStatusData 某日考勤状态数据
type DailyStatusData struct {
	EmployeeID         int64   `json:"employee_id"`
	Date               string  `json:"date"`
	Status             string  `json:"status"`
	VerificationStatus string  `json:"verification_status"`
	TotalWorkHours     float64 `json:"total_work_hours"`
	TotalBreakHours    float64 `json:"total_break_hours"`
	IsPaidDay          bool    `json:"is_paid_day"`
	Pinned             bool    `json:"pinned"`
	Note               string  `json:"note"`
}

// AutoMarkRequest 自动标记批次请求
type AutoMarkRequest struct {
	Date   string `json:"date"`
	DryRun bool   `json:"dry_run"`
}

// AutoMarkReport 自动标记批次报告
type AutoMarkReport struct {
	Date            string   `json:"date"`
	DryRun          bool     `json:"dry_run"`
	Skipped         bool     `json:"skipped"` // 周日整批跳过
	HolidayMarked   int      `json:"holiday_marked"`
	LeaveMarked     int      `json:"leave_marked"`
	AutoLeaveMarked int      `json:"auto_leave_marked"`
	Deferred        int      `json:"deferred"` // 有待审请假，暂不标记
	Errors          []string `json:"errors,omitempty"`
}

// PinDayRequest 置顶某日状态请求
type PinDayRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}
