package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"OnDuty/internal/model"
	"OnDuty/internal/model/dto"
	"OnDuty/internal/queue"
	pkgerrors "OnDuty/pkg/errors"
	"OnDuty/pkg/logger"
	"OnDuty/storage/database"
	"OnDuty/utils"
)

var (
	leaveService *LeaveService
	leaveOnce    sync.Once
)

func Leave() *LeaveService {
	leaveOnce.Do(func() {
		leaveService = &LeaveService{}
	})
	return leaveService
}

type LeaveService struct{}

var leaveCategories = map[model.LeaveCategory]bool{
	model.LeaveCategoryCasual:           true,
	model.LeaveCategorySick:             true,
	model.LeaveCategorySpecial:          true,
	model.LeaveCategoryEmergency:        true,
	model.LeaveCategoryUnpaid:           true,
	model.LeaveCategoryMandatoryHoliday: true,
}

// SubmitLeaveRequest 提交请假申请，落库为 pending
func (s *LeaveService) SubmitLeaveRequest(ctx context.Context, req *dto.SubmitLeaveRequest) (*dto.LeaveRequestData, error) {
	category := model.LeaveCategory(req.Category)
	if !leaveCategories[category] {
		return nil, pkgerrors.NoActiveLeaveType.WithDetails(map[string]interface{}{
			"category": req.Category,
		})
	}

	loc := punchLocation()
	fromDate, err := utils.ParseDate(req.FromDate, loc)
	if err != nil {
		return nil, pkgerrors.InvalidDate
	}
	toDate, err := utils.ParseDate(req.ToDate, loc)
	if err != nil {
		return nil, pkgerrors.InvalidDate
	}
	if toDate.Before(fromDate) {
		return nil, pkgerrors.InvalidDateRange
	}

	employee, err := Punch().getActiveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	isPaid := category != model.LeaveCategoryUnpaid
	if req.LeaveTypeID != nil {
		var leaveType model.LeaveType
		err := database.DB().WithContext(ctx).
			Where("id = ? AND is_active = ?", *req.LeaveTypeID, true).
			First(&leaveType).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.NoActiveLeaveType
			}
			return nil, fmt.Errorf("failed to query leave type: %w", err)
		}
		isPaid = leaveType.IsPaid
	}

	request := model.LeaveRequest{
		EmployeeID:  employee.ID,
		LeaveTypeID: req.LeaveTypeID,
		Category:    category,
		FromDate:    fromDate,
		ToDate:      toDate,
		Reason:      req.Reason,
		Status:      model.LeaveRequestStatusPending,
		IsPaid:      isPaid,
	}
	if err := database.DB().WithContext(ctx).Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	logger.Logger.Info("Leave request submitted",
		zap.Int64("employee_id", req.EmployeeID),
		zap.String("category", req.Category),
		zap.String("from", req.FromDate),
		zap.String("to", req.ToDate),
		zap.Int("total_days", request.TotalDays()),
	)

	return toLeaveRequestData(&request, employee.PublicID), nil
}

// ReviewLeaveRequest 审批请假申请
// 批准时与额度扣减在同一事务内完成；特别假额度不足时整单失败并保持 pending
func (s *LeaveService) ReviewLeaveRequest(ctx context.Context, requestID int64, req *dto.ReviewLeaveRequest) (*dto.LeaveRequestData, error) {
	if req.Decision != "approve" && req.Decision != "reject" {
		return nil, pkgerrors.InvalidDecision.WithDetails(map[string]interface{}{
			"decision": req.Decision,
		})
	}

	var request model.LeaveRequest
	var employeePublicID int64
	err := database.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", requestID).
			First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.LeaveRequestNotFound
			}
			return fmt.Errorf("failed to query leave request: %w", err)
		}
		if request.Status != model.LeaveRequestStatusPending {
			return pkgerrors.LeaveAlreadyReviewed
		}

		var employee model.Employee
		if err := tx.Where("id = ?", request.EmployeeID).First(&employee).Error; err != nil {
			return fmt.Errorf("failed to query employee: %w", err)
		}
		employeePublicID = employee.PublicID

		now := time.Now()
		request.ReviewedBy = &req.ReviewerID
		request.ReviewedAt = &now

		if req.Decision == "reject" {
			request.Status = model.LeaveRequestStatusRejected
			return tx.Save(&request).Error
		}

		balance, err := loadOrCreateBalanceTx(
			tx.Clauses(clause.Locking{Strength: "UPDATE"}),
			request.EmployeeID,
			request.FromDate.Year(),
		)
		if err != nil {
			return err
		}

		days := request.TotalDays()
		deducted, converted, err := applyDeduction(balance, request.Category, days)
		if err != nil {
			return err
		}
		if converted {
			request.Category = model.LeaveCategoryUnpaid
			request.IsPaid = false
		}
		request.DeductedFromBalance = deducted
		request.Status = model.LeaveRequestStatusApproved

		if err := tx.Save(balance).Error; err != nil {
			return fmt.Errorf("failed to save leave balance: %w", err)
		}
		if err := tx.Save(&request).Error; err != nil {
			return fmt.Errorf("failed to save leave request: %w", err)
		}

		// 区间内已存在的考勤日改写为请假状态并钉住；未生成的日子留给自动标记批次
		return s.pinDaysInRangeTx(tx, &request)
	})
	if err != nil {
		return nil, err
	}

	logger.Logger.Info("Leave request reviewed",
		zap.Int64("request_id", requestID),
		zap.String("decision", req.Decision),
		zap.String("category", string(request.Category)),
		zap.Bool("deducted", request.DeductedFromBalance),
	)

	go func() {
		if err := queue.PublishLeaveReviewedEvent(requestID, employeePublicID, req.Decision); err != nil {
			logger.Logger.Warn("Failed to publish leave reviewed event",
				zap.Int64("request_id", requestID),
				zap.Error(err),
			)
		}
	}()

	return toLeaveRequestData(&request, employeePublicID), nil
}

// pinDaysInRangeTx 把请假区间内已存在且未钉住的考勤日改写为请假状态
func (s *LeaveService) pinDaysInRangeTx(tx *gorm.DB, request *model.LeaveRequest) error {
	var days []model.AttendanceDay
	err := tx.Where("employee_id = ? AND date >= ? AND date <= ? AND pinned = ?",
		request.EmployeeID, request.FromDate, request.ToDate, false).
		Find(&days).Error
	if err != nil {
		return fmt.Errorf("failed to list attendance days in range: %w", err)
	}

	status := leaveStatusForCategory(request.Category)
	if !request.IsPaid {
		status = model.DayStatusUnpaidLeave
	}

	for i := range days {
		day := &days[i]
		day.Status = status
		day.VerificationStatus = model.VerificationStatusVerified
		day.IsPaidDay = model.IsPaidStatus(status)
		day.Pinned = true
		day.LeaveRequestID = &request.ID
		day.LeaveTypeID = request.LeaveTypeID
		if err := tx.Save(day).Error; err != nil {
			return fmt.Errorf("failed to pin attendance day: %w", err)
		}
	}
	return nil
}

// ListLeaveRequests 查询某员工的请假单
func (s *LeaveService) ListLeaveRequests(ctx context.Context, employeePublicID int64) ([]*dto.LeaveRequestData, error) {
	employee, err := Punch().getActiveEmployee(ctx, employeePublicID)
	if err != nil {
		return nil, err
	}

	var requests []model.LeaveRequest
	err = database.DB().WithContext(ctx).
		Where("employee_id = ?", employee.ID).
		Order("from_date DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	result := make([]*dto.LeaveRequestData, 0, len(requests))
	for i := range requests {
		result = append(result, toLeaveRequestData(&requests[i], employeePublicID))
	}
	return result, nil
}

func toLeaveRequestData(r *model.LeaveRequest, employeePublicID int64) *dto.LeaveRequestData {
	return &dto.LeaveRequestData{
		ID:                  r.ID,
		EmployeeID:          employeePublicID,
		Category:            string(r.Category),
		FromDate:            utils.FormatDate(r.FromDate),
		ToDate:              utils.FormatDate(r.ToDate),
		TotalDays:           r.TotalDays(),
		Status:              string(r.Status),
		IsPaid:              r.IsPaid,
		DeductedFromBalance: r.DeductedFromBalance,
		ReviewedBy:          r.ReviewedBy,
		ReviewedAt:          r.ReviewedAt,
	}
}
