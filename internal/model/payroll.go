package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// PayrollStatus 工资单状态枚举
type PayrollStatus string

const (
	PayrollStatusDraft     PayrollStatus = "draft"     // 草稿
	PayrollStatusFinalized PayrollStatus = "finalized" // 已定稿
)

// JSONB 自定义 JSONB 类型
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value")
	}
	return json.Unmarshal(bytes, j)
}

// PayrollRecord 月度工资单模型，(employee, month, year) 唯一
type PayrollRecord struct {
	BaseModel
	EmployeeID int64 `gorm:"not null;uniqueIndex:uniq_payroll_records_employee_period" json:"employee_id"`
	Month      int   `gorm:"not null;uniqueIndex:uniq_payroll_records_employee_period" json:"month"`
	Year       int   `gorm:"not null;uniqueIndex:uniq_payroll_records_employee_period" json:"year"`

	BaseSalary     float64 `gorm:"type:numeric(12,2);not null" json:"base_salary"`
	AttendanceDays float64 `gorm:"type:numeric(6,2);not null;default:0" json:"attendance_days"` // 实际计薪天数
	WorkingDays    int     `gorm:"not null;default:0" json:"working_days"`                      // 应出勤天数

	EarnedSalary float64 `gorm:"type:numeric(12,2);not null;default:0" json:"earned_salary"`
	Allowances   float64 `gorm:"type:numeric(12,2);not null;default:0" json:"allowances"`
	GrossPay     float64 `gorm:"type:numeric(12,2);not null;default:0" json:"gross_pay"`
	Deductions   float64 `gorm:"type:numeric(12,2);not null;default:0" json:"deductions"`
	NetPay       float64 `gorm:"type:numeric(12,2);not null;default:0" json:"net_pay"`

	Status PayrollStatus `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`

	// 各状态天数与额度快照的审计明细
	Breakdown JSONB `gorm:"type:jsonb;default:'{}'" json:"breakdown"`
}

// TableName 指定表名
func (PayrollRecord) TableName() string {
	return "payroll_records"
}
