package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"OnDuty/internal/model/dto"
	"OnDuty/internal/service"
	"OnDuty/pkg/response"
)

// GetDailyStatus 查询某员工某日考勤状态
// GET /v1/attendance/:employee_id/:date
func GetDailyStatus(ctx context.Context, c *app.RequestContext) {
	employeeID, ok := parseInt64Param(ctx, c, "employee_id")
	if !ok {
		return
	}
	date := c.Param("date")

	result, err := service.Attendance().GetDailyStatus(ctx, employeeID, date)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// RunAutoMark 触发某日的自动标记批次
// POST /v1/attendance/auto-mark
func RunAutoMark(ctx context.Context, c *app.RequestContext) {
	var req dto.AutoMarkRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Attendance().RunDailyAutoMark(ctx, req.Date, req.DryRun)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// PinDay 管理员钉住某员工某日状态
// POST /v1/attendance/:employee_id/:date/pin
func PinDay(ctx context.Context, c *app.RequestContext) {
	employeeID, ok := parseInt64Param(ctx, c, "employee_id")
	if !ok {
		return
	}
	date := c.Param("date")

	var req dto.PinDayRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Attendance().PinDay(ctx, employeeID, date, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
