package repository

import (
	"fmt"
	"os"

	"gorm.io/gen"

	"OnDuty/internal/model"
	"OnDuty/storage/database"
)

// ========== Employee 相关查询接口 ==========

// EmployeeQuerier 员工查询接口
type EmployeeQuerier interface {
	// GetByPublicID 根据 PublicID 查询员工（API 中 employeeID 是 public_id）
	//
	// SELECT * FROM @@table WHERE public_id = @publicID LIMIT 1
	GetByPublicID(publicID int64) (*gen.T, error)

	// ListActive 查询全部在职员工（用于批量任务）
	//
	// SELECT * FROM @@table WHERE status = 'active'
	ListActive() ([]*gen.T, error)

	// CountByStatus 统计各状态的员工数量
	//
	// SELECT status, COUNT(*) as count
	// FROM @@table
	// GROUP BY status
	CountByStatus() ([]gen.M, error)
}

// ========== AttendanceDay 相关查询接口 ==========

// AttendanceDayQuerier 考勤日查询接口
type AttendanceDayQuerier interface {
	// GetByEmployeeAndDate 根据员工和日期查询考勤日
	//
	// SELECT * FROM @@table
	// WHERE employee_id = @employeeID AND date = @date::date
	// LIMIT 1
	GetByEmployeeAndDate(employeeID int64, date string) (*gen.T, error)

	// ListByEmployeeAndRange 按员工和日期范围查询考勤日
	//
	// SELECT * FROM @@table
	// WHERE employee_id = @employeeID
	//   AND date >= @fromDate::date
	//   AND date <= @toDate::date
	// ORDER BY date ASC
	ListByEmployeeAndRange(employeeID int64, fromDate, toDate string) ([]*gen.T, error)

	// CountByStatusInRange 统计区间内各状态的天数
	//
	// SELECT status, COUNT(*) as count
	// FROM @@table
	// WHERE employee_id = @employeeID
	//   AND date >= @fromDate::date
	//   AND date <= @toDate::date
	// GROUP BY status
	CountByStatusInRange(employeeID int64, fromDate, toDate string) ([]gen.M, error)
}

// ========== PunchEvent 相关查询接口 ==========

// PunchEventQuerier 打卡事件查询接口
type PunchEventQuerier interface {
	// ListByEmployeeAndDate 按员工和日期查询打卡事件（按时间升序）
	//
	// SELECT * FROM @@table
	// WHERE employee_id = @employeeID AND punch_date = @date::date
	// ORDER BY punched_at ASC
	ListByEmployeeAndDate(employeeID int64, date string) ([]*gen.T, error)

	// GetLastForDate 获取某员工某日最近一次打卡
	//
	// SELECT * FROM @@table
	// WHERE employee_id = @employeeID AND punch_date = @date::date
	// ORDER BY punched_at DESC
	// LIMIT 1
	GetLastForDate(employeeID int64, date string) (*gen.T, error)
}

// ========== LeaveRequest 相关查询接口 ==========

// LeaveRequestQuerier 请假单查询接口
type LeaveRequestQuerier interface {
	// ListApprovedCovering 查询覆盖指定日期的已批准请假单
	//
	// SELECT * FROM @@table
	// WHERE status = 'approved'
	//   AND from_date <= @date::date
	//   AND to_date >= @date::date
	ListApprovedCovering(date string) ([]*gen.T, error)

	// ListPendingCovering 查询覆盖指定日期的待审批请假单
	//
	// SELECT * FROM @@table
	// WHERE status = 'pending'
	//   AND from_date <= @date::date
	//   AND to_date >= @date::date
	ListPendingCovering(date string) ([]*gen.T, error)

	// ListByEmployee 按员工查询请假单（分页）
	//
	// SELECT * FROM @@table
	// WHERE employee_id = @employeeID
	// ORDER BY created_at DESC
	// LIMIT @limit OFFSET @offset
	ListByEmployee(employeeID int64, limit, offset int) ([]*gen.T, error)
}

// ========== LeaveBalance 相关查询接口 ==========

// LeaveBalanceQuerier 假期额度查询接口
type LeaveBalanceQuerier interface {
	// GetByEmployeeAndYear 根据员工和年份查询额度台账
	//
	// SELECT * FROM @@table
	// WHERE employee_id = @employeeID AND year = @year
	// LIMIT 1
	GetByEmployeeAndYear(employeeID int64, year int) (*gen.T, error)

	// ListByYear 查询某年全部台账（用于批量发放与重置）
	//
	// SELECT * FROM @@table WHERE year = @year
	ListByYear(year int) ([]*gen.T, error)
}

func Generate() error {
	if err := database.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	db := database.DB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./internal/repository/query", // 生成代码的输出路径
		ModelPkgPath:      "OnDuty/internal/model",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true, // 字段可以为 null
		FieldCoverable:    false,
		FieldSignable:     false,
		FieldWithIndexTag: false,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)

	// 注册现有的 model，GORM Gen 会使用这些 model 而不是生成新的
	g.ApplyBasic(
		&model.Employee{},
		&model.OfficeLocation{},
		&model.PunchEvent{},
		&model.AttendanceDay{},
		&model.LeaveType{},
		&model.LeaveRequest{},
		&model.LeaveBalance{},
		&model.Holiday{},
		&model.PayrollRecord{},
	)

	// 直接应用接口，GORM Gen 会根据接口中的类型自动匹配已注册的 model
	g.ApplyInterface(func(EmployeeQuerier) {}, &model.Employee{})
	g.ApplyInterface(func(AttendanceDayQuerier) {}, &model.AttendanceDay{})
	g.ApplyInterface(func(PunchEventQuerier) {}, &model.PunchEvent{})
	g.ApplyInterface(func(LeaveRequestQuerier) {}, &model.LeaveRequest{})
	g.ApplyInterface(func(LeaveBalanceQuerier) {}, &model.LeaveBalance{})

	g.Execute()

	return nil
}

func RunGenerate() {
	if err := Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate code: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Code generation completed successfully!")
}
