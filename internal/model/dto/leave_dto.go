package dto

import "time"

// ========== Leave 相关 DTO ==========

// SubmitLeaveRequest 提交请假申请
type SubmitLeaveRequest struct {
	EmployeeID  int64  `json:"employee_id"`
	LeaveTypeID *int64 `json:"leave_type_id,omitempty"`
	Category    string `json:"category"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	Reason      string `json:"reason"`
}

// ReviewLeaveRequest 审批请假申请
type ReviewLeaveRequest struct {
	ReviewerID int64  `json:"reviewer_id"`
	Decision   string `json:"decision"` // approve / reject
}

// LeaveRequestData 请假单数据
type LeaveRequestData struct {
	ID                  int64      `json:"id"`
	EmployeeID          int64      `json:"employee_id"`
	Category            string     `json:"category"`
	FromDate            string     `json:"from_date"`
	ToDate              string     `json:"to_date"`
	TotalDays           int        `json:"total_days"`
	Status              string     `json:"status"`
	IsPaid              bool       `json:"is_paid"`
	DeductedFromBalance bool       `json:"deducted_from_balance"`
	ReviewedBy          *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt          *time.Time `json:"reviewed_at,omitempty"`
}

// CreditRequest 月度事假发放请求
type CreditRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// ResetRequest 年度额度重置请求
type ResetRequest struct {
	Year int `json:"year"`
}

// BalanceReport 批量额度操作报告
type BalanceReport struct {
	Year      int      `json:"year"`
	Month     int      `json:"month,omitempty"`
	Processed int      `json:"processed"`
	Credited  int      `json:"credited"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

// LeaveBalanceData 年度额度数据
type LeaveBalanceData struct {
	EmployeeID            int64   `json:"employee_id"`
	Year                  int     `json:"year"`
	CasualBalance         float64 `json:"casual_balance"`
	CasualUsed            float64 `json:"casual_used"`
	SickBalance           int     `json:"sick_balance"`
	SickUsed              int     `json:"sick_used"`
	SpecialBalance        int     `json:"special_balance"`
	SpecialUsed           int     `json:"special_used"`
	UnpaidTaken           int     `json:"unpaid_taken"`
	LastCasualCreditMonth int     `json:"last_casual_credit_month"`
}
