package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"OnDuty/internal/model/dto"
	"OnDuty/internal/service"
	"OnDuty/pkg/response"
)

// RecordPunch 记录一次打卡
// POST /v1/punches
func RecordPunch(ctx context.Context, c *app.RequestContext) {
	var req dto.RecordPunchRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Punch().RecordPunch(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListPunches 查询某员工某日的打卡序列
// GET /v1/punches/:employee_id/:date
func ListPunches(ctx context.Context, c *app.RequestContext) {
	employeeID, ok := parseInt64Param(ctx, c, "employee_id")
	if !ok {
		return
	}
	date := c.Param("date")

	result, err := service.Punch().ListPunches(ctx, employeeID, date)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
