package dto

import "time"

// ========== Punch 相关 DTO ==========

// RecordPunchRequest 打卡请求
type RecordPunchRequest struct {
	EmployeeID int64   `json:"employee_id"`
	Type       string  `json:"type"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Location   string  `json:"location"`
	Note       string  `json:"note"`
}

// AttendanceDaySnapshot 当日考勤快照
type AttendanceDaySnapshot struct {
	Date               string     `json:"date"`
	Status             string     `json:"status"`
	VerificationStatus string     `json:"verification_status"`
	FirstInTime        *time.Time `json:"first_in_time,omitempty"`
	LastOutTime        *time.Time `json:"last_out_time,omitempty"`
	TotalWorkHours     float64    `json:"total_work_hours"`
	TotalBreakHours    float64    `json:"total_break_hours"`
	OnBreak            bool       `json:"on_break"`
	IsPaidDay          bool       `json:"is_paid_day"`
	Pinned             bool       `json:"pinned"`
	DistanceMeters     float64    `json:"distance_meters"`
}

// PunchHistoryQuery 打卡历史查询参数
type PunchHistoryQuery struct {
	From  string `query:"from"`
	To    string `query:"to"`
	Limit int    `query:"limit"`
}
