package model

// EmployeeStatus 员工状态枚举
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"   // 在职
	EmployeeStatusInactive EmployeeStatus = "inactive" // 离职或停用
)

// Employee 员工模型
type Employee struct {
	BaseModel
	PublicID   int64          `gorm:"uniqueIndex;not null" json:"public_id"`
	Name       string         `gorm:"type:varchar(64);not null" json:"name"`
	Phone      string         `gorm:"type:varchar(20);not null;default:''" json:"phone"`
	Status     EmployeeStatus `gorm:"type:varchar(16);not null;default:'active';index:idx_employees_status" json:"status"`
	BaseSalary float64        `gorm:"type:numeric(12,2);not null;default:0" json:"base_salary"`
	Timezone   string         `gorm:"type:varchar(64);not null;default:'Asia/Shanghai'" json:"timezone"`
}

// TableName 指定表名
func (Employee) TableName() string {
	return "employees"
}

// IsActive 是否在职
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}
