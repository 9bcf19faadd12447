package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"OnDuty/internal/model/dto"
	"OnDuty/internal/service"
	"OnDuty/pkg/response"
)

// CalculatePayroll 核算某员工某月工资
// POST /v1/payrolls/calculate
func CalculatePayroll(ctx context.Context, c *app.RequestContext) {
	var req dto.CalculatePayrollRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Payroll().CalculatePayroll(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetPayroll 查询某员工某月工资单
// GET /v1/payrolls/:employee_id/:year/:month
func GetPayroll(ctx context.Context, c *app.RequestContext) {
	employeeID, ok := parseInt64Param(ctx, c, "employee_id")
	if !ok {
		return
	}
	year, ok := parseIntParam(ctx, c, "year")
	if !ok {
		return
	}
	month, ok := parseIntParam(ctx, c, "month")
	if !ok {
		return
	}

	result, err := service.Payroll().GetPayroll(ctx, employeeID, year, month)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
