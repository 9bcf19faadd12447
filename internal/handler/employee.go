package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"OnDuty/internal/model/dto"
	"OnDuty/internal/service"
	"OnDuty/pkg/response"
)

// CreateEmployee 新建员工
// POST /v1/employees
func CreateEmployee(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Employee().CreateEmployee(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetEmployee 查询员工
// GET /v1/employees/:employee_id
func GetEmployee(ctx context.Context, c *app.RequestContext) {
	employeeID, ok := parseInt64Param(ctx, c, "employee_id")
	if !ok {
		return
	}

	result, err := service.Employee().GetEmployee(ctx, employeeID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListEmployees 列出在职员工
// GET /v1/employees
func ListEmployees(ctx context.Context, c *app.RequestContext) {
	result, err := service.Employee().ListEmployees(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// DeactivateEmployee 停用员工
// DELETE /v1/employees/:employee_id
func DeactivateEmployee(ctx context.Context, c *app.RequestContext) {
	employeeID, ok := parseInt64Param(ctx, c, "employee_id")
	if !ok {
		return
	}

	if err := service.Employee().DeactivateEmployee(ctx, employeeID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
