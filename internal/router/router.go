package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"OnDuty/internal/handler"
	"OnDuty/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	v1 := h.Group("/v1")

	// 员工路由
	employees := v1.Group("/employees")
	{
		employees.POST("", handler.CreateEmployee)
		employees.GET("", handler.ListEmployees)
		employees.GET("/:employee_id", handler.GetEmployee)
		employees.DELETE("/:employee_id", handler.DeactivateEmployee)
		employees.GET("/:employee_id/leaves", handler.ListLeaves)
	}

	// 办公地点路由
	offices := v1.Group("/offices")
	{
		offices.POST("", handler.CreateOffice)
		offices.GET("", handler.ListOffices)
		offices.PUT("/:office_id/activate", handler.ActivateOffice)
	}

	// 打卡路由
	punches := v1.Group("/punches")
	punches.Use(middleware.PunchRateLimitMiddleware()) // 打卡接口限流
	{
		punches.POST("", handler.RecordPunch)
		punches.GET("/:employee_id/:date", handler.ListPunches)
	}

	// 考勤路由
	attendance := v1.Group("/attendance")
	{
		attendance.POST("/auto-mark", handler.RunAutoMark)
		attendance.GET("/:employee_id/:date", handler.GetDailyStatus)
		attendance.POST("/:employee_id/:date/pin", handler.PinDay)
	}

	// 请假路由
	leaves := v1.Group("/leaves")
	{
		leaves.POST("", handler.SubmitLeave)
		leaves.POST("/:leave_id/review", handler.ReviewLeave)
	}

	// 假期额度路由
	balances := v1.Group("/leave-balances")
	{
		balances.POST("/credit", handler.CreditCasualLeave)
		balances.POST("/reset", handler.ResetYearlyBalances)
		balances.GET("/:employee_id/:year", handler.GetLeaveBalance)
	}

	// 工资路由
	payrolls := v1.Group("/payrolls")
	{
		payrolls.POST("/calculate", handler.CalculatePayroll)
		payrolls.GET("/:employee_id/:year/:month", handler.GetPayroll)
	}
}
