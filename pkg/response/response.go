package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"OnDuty/pkg/errors"
)

// ErrorResponse 统一的错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse 统一的成功响应格式
type SuccessResponse struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

func errorToHTTPStatus(err error) int {
	var def errors.Definition
	switch e := err.(type) {
	case errors.Definition:
		def = e
	case errors.Detailed:
		def = e.Definition
	default:
		return http.StatusInternalServerError
	}

	// 根据错误码映射 HTTP 状态码
	switch def.Code {
	case "INVALID_COORDINATES", "INVALID_DATE", "INVALID_DATE_RANGE",
		"INVALID_PUNCH_TYPE", "INVALID_RADIUS", "INVALID_PAY_PERIOD",
		"ZERO_WORKING_DAYS", "INVALID_DAY_STATUS", "INVALID_DECISION",
		"VALIDATION_FAILED":
		return http.StatusBadRequest // 400
	case "TOO_MANY_REQUESTS":
		return http.StatusTooManyRequests // 429
	case "GEOFENCE_REJECTED":
		return http.StatusForbidden // 403，预期内的业务拒绝
	case "PUNCH_SEQUENCE_CONFLICT", "ATTENDANCE_DAY_CONFLICT",
		"LEAVE_ALREADY_REVIEWED":
		return http.StatusConflict // 409
	case "INSUFFICIENT_BALANCE":
		return http.StatusUnprocessableEntity // 422
	case "NO_ACTIVE_OFFICE", "NO_ACTIVE_LEAVE_TYPE":
		return http.StatusServiceUnavailable // 503，配置缺失
	case "EMPLOYEE_NOT_FOUND", "OFFICE_NOT_FOUND", "LEAVE_REQUEST_NOT_FOUND",
		"LEAVE_BALANCE_NOT_FOUND", "ATTENDANCE_DAY_NOT_FOUND", "PAYROLL_NOT_FOUND":
		return http.StatusNotFound // 404
	default:
		return http.StatusInternalServerError // 500
	}
}

func splitError(err error) (code, message string, details map[string]interface{}) {
	switch e := err.(type) {
	case errors.Definition:
		return e.Code, e.Message, nil
	case errors.Detailed:
		return e.Code, e.Message, e.Details
	default:
		return "INTERNAL_ERROR", err.Error(), nil
	}
}

// Error 返回错误响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	statusCode := errorToHTTPStatus(err)
	code, message, details := splitError(err)

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	statusCode := errorToHTTPStatus(err)
	code, message, _ := splitError(err)

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

func SuccessWithMeta(ctx context.Context, c *app.RequestContext, data interface{}, meta map[string]interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

// NoContent 返回 204 No Content（用于 DELETE 等操作）
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}
