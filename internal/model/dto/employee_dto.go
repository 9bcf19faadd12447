package dto

// ========== Employee 相关 DTO ==========

// CreateEmployeeRequest 新建员工请求
type CreateEmployeeRequest struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	BaseSalary float64 `json:"base_salary"`
	Timezone   string  `json:"timezone"`
}

// EmployeeData 员工数据
type EmployeeData struct {
	EmployeeID int64   `json:"employee_id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Status     string  `json:"status"`
	BaseSalary float64 `json:"base_salary"`
	Timezone   string  `json:"timezone"`
}
