package model

// 年度额度固定配额
const (
	SickLeaveAllotment    = 3
	SpecialLeaveAllotment = 7
	MonthlyCasualCredit   = 1.0
)

// LeaveBalance 年度假期额度台账，(employee, year) 唯一
type LeaveBalance struct {
	BaseModel
	EmployeeID int64 `gorm:"not null;uniqueIndex:uniq_leave_balances_employee_year" json:"employee_id"`
	Year       int   `gorm:"not null;uniqueIndex:uniq_leave_balances_employee_year" json:"year"`

	CasualBalance float64 `gorm:"type:numeric(6,2);not null;default:0" json:"casual_balance"`
	CasualUsed    float64 `gorm:"type:numeric(6,2);not null;default:0" json:"casual_used"`

	SickBalance int `gorm:"not null;default:3" json:"sick_balance"`
	SickUsed    int `gorm:"not null;default:0" json:"sick_used"`

	SpecialBalance int `gorm:"not null;default:7" json:"special_balance"`
	SpecialUsed    int `gorm:"not null;default:0" json:"special_used"`

	UnpaidTaken int `gorm:"not null;default:0" json:"unpaid_taken"`

	// 月度事假发放的幂等哨兵，记录最近一次发放的月份
	LastCasualCreditMonth int `gorm:"not null;default:0" json:"last_casual_credit_month"`
}

// TableName 指定表名
func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// Remaining 按假别返回剩余额度
func (b *LeaveBalance) Remaining(category LeaveCategory) float64 {
	switch category {
	case LeaveCategoryCasual:
		return b.CasualBalance
	case LeaveCategorySick:
		return float64(b.SickBalance)
	case LeaveCategorySpecial:
		return float64(b.SpecialBalance)
	default:
		return 0
	}
}
