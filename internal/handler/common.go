package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	pkgerrors "OnDuty/pkg/errors"
	"OnDuty/pkg/response"
)

// parseInt64Param 解析路径里的整型参数，失败时直接写错误响应
func parseInt64Param(ctx context.Context, c *app.RequestContext, name string) (int64, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(ctx, c, pkgerrors.InvalidArgument.WithDetails(map[string]interface{}{
			"param": name,
			"value": raw,
		}))
		return 0, false
	}
	return value, true
}

// parseIntParam 解析路径里的 int 参数
func parseIntParam(ctx context.Context, c *app.RequestContext, name string) (int, bool) {
	value, ok := parseInt64Param(ctx, c, name)
	return int(value), ok
}
