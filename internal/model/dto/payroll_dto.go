package dto

// ========== Payroll 相关 DTO ==========

// CalculatePayrollRequest 工资核算请求
type CalculatePayrollRequest struct {
	EmployeeID int64   `json:"employee_id"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Allowances float64 `json:"allowances"`
	Deductions float64 `json:"deductions"`
	Finalize   bool    `json:"finalize"`
}

// PayrollBreakdown 工资核算明细
type PayrollBreakdown struct {
	CalendarDays     int     `json:"calendar_days"`
	Sundays          int     `json:"sundays"`
	PaidHolidays     int     `json:"paid_holidays"`
	MandatoryHoliday int     `json:"mandatory_holidays"`
	SpecialHolidays  int     `json:"special_holidays"`
	FullDays         int     `json:"full_days"`
	HalfDays         int     `json:"half_days"`
	CasualLeaveDays  int     `json:"casual_leave_days"`
	SickLeaveDays    int     `json:"sick_leave_days"`
	SpecialLeaveDays int     `json:"special_leave_days"`
	OtherLeaveDays   int     `json:"other_leave_days"`
	UnpaidLeaveDays  int     `json:"unpaid_leave_days"`
	AutoLeaveDays    int     `json:"auto_leave_days"`
	WFHDays          int     `json:"wfh_days"`
	NotMarkedDays    int     `json:"not_marked_days"`
	TotalWorkingDays int     `json:"total_working_days"`
	PaidWorkingDays  float64 `json:"paid_working_days"`
	DaysToDeduct     int     `json:"days_to_deduct"`
	EffectivePaid    float64 `json:"effective_paid_days"`
	DailyRate        float64 `json:"daily_rate"`
}

// PayrollData 工资单数据
type PayrollData struct {
	EmployeeID     int64            `json:"employee_id"`
	Year           int              `json:"year"`
	Month          int              `json:"month"`
	BaseSalary     float64          `json:"base_salary"`
	AttendanceDays float64          `json:"attendance_days"`
	WorkingDays    int              `json:"working_days"`
	EarnedSalary   float64          `json:"earned_salary"`
	Allowances     float64          `json:"allowances"`
	GrossPay       float64          `json:"gross_pay"`
	Deductions     float64          `json:"deductions"`
	NetPay         float64          `json:"net_pay"`
	Status         string           `json:"status"`
	Breakdown      PayrollBreakdown `json:"breakdown"`
}
