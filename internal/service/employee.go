package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"OnDuty/config"
	"OnDuty/internal/model"
	"OnDuty/internal/model/dto"
	pkgerrors "OnDuty/pkg/errors"
	"OnDuty/pkg/logger"
	"OnDuty/pkg/snowflake"
	"OnDuty/storage/database"
	"OnDuty/utils"
)

var (
	employeeService *EmployeeService
	employeeOnce    sync.Once
)

func Employee() *EmployeeService {
	employeeOnce.Do(func() {
		employeeService = &EmployeeService{}
	})
	return employeeService
}

type EmployeeService struct{}

// CreateEmployee 新建员工，对外 ID 由雪花算法生成
func (s *EmployeeService) CreateEmployee(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeData, error) {
	if req.Name == "" {
		return nil, pkgerrors.InvalidArgument.WithDetails(map[string]interface{}{
			"field": "name",
		})
	}
	if req.Phone != "" && !utils.ValidatePhone(req.Phone) {
		return nil, pkgerrors.InvalidArgument.WithDetails(map[string]interface{}{
			"field": "phone",
		})
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate employee ID: %w", err)
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = config.Cfg.PunchTimezone
	}

	employee := model.Employee{
		PublicID:   publicID,
		Name:       req.Name,
		Phone:      req.Phone,
		Status:     model.EmployeeStatusActive,
		BaseSalary: req.BaseSalary,
		Timezone:   timezone,
	}
	if err := database.DB().WithContext(ctx).Create(&employee).Error; err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	logger.Logger.Info("Employee created",
		zap.Int64("employee_id", publicID),
		zap.String("name", req.Name),
	)

	return toEmployeeData(&employee), nil
}

// GetEmployee 按对外 ID 查询员工
func (s *EmployeeService) GetEmployee(ctx context.Context, publicID int64) (*dto.EmployeeData, error) {
	var employee model.Employee
	err := database.DB().WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.EmployeeNotFound
		}
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}
	return toEmployeeData(&employee), nil
}

// ListEmployees 列出全部在职员工
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]*dto.EmployeeData, error) {
	var employees []model.Employee
	err := database.DB().WithContext(ctx).
		Where("status = ?", model.EmployeeStatusActive).
		Order("id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	result := make([]*dto.EmployeeData, 0, len(employees))
	for i := range employees {
		result = append(result, toEmployeeData(&employees[i]))
	}
	return result, nil
}

// DeactivateEmployee 停用员工，停用后打卡与批处理都不再覆盖
func (s *EmployeeService) DeactivateEmployee(ctx context.Context, publicID int64) error {
	result := database.DB().WithContext(ctx).
		Model(&model.Employee{}).
		Where("public_id = ?", publicID).
		Update("status", model.EmployeeStatusInactive)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.EmployeeNotFound
	}

	logger.Logger.Info("Employee deactivated", zap.Int64("employee_id", publicID))
	return nil
}

func toEmployeeData(e *model.Employee) *dto.EmployeeData {
	return &dto.EmployeeData{
		EmployeeID: e.PublicID,
		Name:       e.Name,
		Phone:      e.Phone,
		Status:     string(e.Status),
		BaseSalary: e.BaseSalary,
		Timezone:   e.Timezone,
	}
}
