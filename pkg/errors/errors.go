package errors

import (
	stderrors "errors"
	"fmt"
)

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// Detailed 在 Definition 的基础上附带结构化详情（如围栏拒绝的距离信息）。
type Detailed struct {
	Definition
	Details map[string]interface{}
}

// WithDetails 为业务错误附加详情。
func (d Definition) WithDetails(details map[string]interface{}) Detailed {
	return Detailed{Definition: d, Details: details}
}

// 校验相关错误。
var (
	InvalidCoordinates = Definition{Code: "INVALID_COORDINATES", Message: "Coordinates out of range"}
	InvalidDate        = Definition{Code: "INVALID_DATE", Message: "Invalid date format"}
	InvalidDateRange   = Definition{Code: "INVALID_DATE_RANGE", Message: "Date range end before start"}
	InvalidPunchType   = Definition{Code: "INVALID_PUNCH_TYPE", Message: "Punch type must be in or out"}
	InvalidDayStatus   = Definition{Code: "INVALID_DAY_STATUS", Message: "Unknown attendance day status"}
	InvalidDecision    = Definition{Code: "INVALID_DECISION", Message: "Review decision must be approve or reject"}
	InvalidArgument    = Definition{Code: "VALIDATION_FAILED", Message: "Request validation failed"}
	InvalidRadius      = Definition{Code: "INVALID_RADIUS", Message: "Office radius must be between 10 and 500 meters"}
	InvalidPayPeriod   = Definition{Code: "INVALID_PAY_PERIOD", Message: "Invalid payroll month or year"}
	ZeroWorkingDays    = Definition{Code: "ZERO_WORKING_DAYS", Message: "Month has no working days to pay against"}
)

// 围栏模块错误。
var (
	GeofenceRejected = Definition{Code: "GEOFENCE_REJECTED", Message: "Punch location outside office radius"}
)

// 限流错误。
var (
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
)

// 打卡模块错误。
var (
	PunchSequenceConflict = Definition{Code: "PUNCH_SEQUENCE_CONFLICT", Message: "Duplicate punch type in sequence"}
	AttendanceDayConflict = Definition{Code: "ATTENDANCE_DAY_CONFLICT", Message: "Attendance day already exists"}
)

// 请假模块错误。
var (
	LeaveAlreadyReviewed = Definition{Code: "LEAVE_ALREADY_REVIEWED", Message: "Leave request already reviewed"}
	InsufficientBalance  = Definition{Code: "INSUFFICIENT_BALANCE", Message: "Insufficient special leave balance"}
)

// 配置类错误：只中止受影响的单个操作/员工，不中止整个批处理。
var (
	NoActiveOffice    = Definition{Code: "NO_ACTIVE_OFFICE", Message: "No active office location configured"}
	NoActiveLeaveType = Definition{Code: "NO_ACTIVE_LEAVE_TYPE", Message: "No active leave category configured"}
)

// 资源不存在。
var (
	EmployeeNotFound      = Definition{Code: "EMPLOYEE_NOT_FOUND", Message: "Employee not found"}
	OfficeNotFound        = Definition{Code: "OFFICE_NOT_FOUND", Message: "Office location not found"}
	LeaveRequestNotFound  = Definition{Code: "LEAVE_REQUEST_NOT_FOUND", Message: "Leave request not found"}
	LeaveBalanceNotFound  = Definition{Code: "LEAVE_BALANCE_NOT_FOUND", Message: "Leave balance not found"}
	AttendanceDayNotFound = Definition{Code: "ATTENDANCE_DAY_NOT_FOUND", Message: "Attendance day not found"}
	PayrollNotFound       = Definition{Code: "PAYROLL_NOT_FOUND", Message: "Payroll record not found"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	InvalidCoordinates.Code:    InvalidCoordinates,
	InvalidDate.Code:           InvalidDate,
	InvalidDateRange.Code:      InvalidDateRange,
	InvalidPunchType.Code:      InvalidPunchType,
	InvalidDayStatus.Code:      InvalidDayStatus,
	InvalidDecision.Code:       InvalidDecision,
	InvalidArgument.Code:       InvalidArgument,
	InvalidRadius.Code:         InvalidRadius,
	InvalidPayPeriod.Code:      InvalidPayPeriod,
	ZeroWorkingDays.Code:       ZeroWorkingDays,
	GeofenceRejected.Code:      GeofenceRejected,
	TooManyRequests.Code:       TooManyRequests,
	PunchSequenceConflict.Code: PunchSequenceConflict,
	AttendanceDayConflict.Code: AttendanceDayConflict,
	LeaveAlreadyReviewed.Code:  LeaveAlreadyReviewed,
	InsufficientBalance.Code:   InsufficientBalance,
	NoActiveOffice.Code:        NoActiveOffice,
	NoActiveLeaveType.Code:     NoActiveLeaveType,
	EmployeeNotFound.Code:      EmployeeNotFound,
	OfficeNotFound.Code:        OfficeNotFound,
	LeaveRequestNotFound.Code:  LeaveRequestNotFound,
	LeaveBalanceNotFound.Code:  LeaveBalanceNotFound,
	AttendanceDayNotFound.Code: AttendanceDayNotFound,
	PayrollNotFound.Code:       PayrollNotFound,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// SkipMessageError 表示消费端应当确认并跳过该消息（幂等重复、过期等）。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return fmt.Sprintf("skip message: %s", e.Reason)
}

// IsSkipMessageError 判断是否为跳过消息错误
func IsSkipMessageError(err error) bool {
	var skip *SkipMessageError
	return stderrors.As(err, &skip)
}
