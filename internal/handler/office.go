package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"OnDuty/internal/model/dto"
	"OnDuty/internal/service"
	"OnDuty/pkg/response"
)

// CreateOffice 新建办公地点
// POST /v1/offices
func CreateOffice(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateOfficeRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Office().CreateOffice(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ActivateOffice 激活办公地点，同时只允许一个处于激活态
// PUT /v1/offices/:office_id/activate
func ActivateOffice(ctx context.Context, c *app.RequestContext) {
	officeID, ok := parseInt64Param(ctx, c, "office_id")
	if !ok {
		return
	}

	result, err := service.Office().ActivateOffice(ctx, officeID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListOffices 列出全部办公地点
// GET /v1/offices
func ListOffices(ctx context.Context, c *app.RequestContext) {
	result, err := service.Office().ListOffices(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
