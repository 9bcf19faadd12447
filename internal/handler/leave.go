package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"OnDuty/internal/model/dto"
	"OnDuty/internal/service"
	"OnDuty/pkg/response"
)

// SubmitLeave 提交请假申请
// POST /v1/leaves
func SubmitLeave(ctx context.Context, c *app.RequestContext) {
	var req dto.SubmitLeaveRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Leave().SubmitLeaveRequest(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ReviewLeave 审批请假申请
// POST /v1/leaves/:leave_id/review
func ReviewLeave(ctx context.Context, c *app.RequestContext) {
	leaveID, ok := parseInt64Param(ctx, c, "leave_id")
	if !ok {
		return
	}

	var req dto.ReviewLeaveRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Leave().ReviewLeaveRequest(ctx, leaveID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListLeaves 查询某员工的请假单
// GET /v1/employees/:employee_id/leaves
func ListLeaves(ctx context.Context, c *app.RequestContext) {
	employeeID, ok := parseInt64Param(ctx, c, "employee_id")
	if !ok {
		return
	}

	result, err := service.Leave().ListLeaveRequests(ctx, employeeID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// CreditCasualLeave 发放某月的事假额度
// POST /v1/leave-balances/credit
func CreditCasualLeave(ctx context.Context, c *app.RequestContext) {
	var req dto.CreditRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Balance().CreditMonthlyCasualLeave(ctx, req.Year, req.Month)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ResetYearlyBalances 年度额度重置
// POST /v1/leave-balances/reset
func ResetYearlyBalances(ctx context.Context, c *app.RequestContext) {
	var req dto.ResetRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Balance().ResetYearlyBalances(ctx, req.Year)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetLeaveBalance 查询某员工某年的额度台账
// GET /v1/leave-balances/:employee_id/:year
func GetLeaveBalance(ctx context.Context, c *app.RequestContext) {
	employeeID, ok := parseInt64Param(ctx, c, "employee_id")
	if !ok {
		return
	}
	year, ok := parseIntParam(ctx, c, "year")
	if !ok {
		return
	}

	result, err := service.Balance().GetBalance(ctx, employeeID, year)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
