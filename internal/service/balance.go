package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"OnDuty/internal/cache"
	"OnDuty/internal/model"
	"OnDuty/internal/model/dto"
	pkgerrors "OnDuty/pkg/errors"
	"OnDuty/pkg/logger"
	"OnDuty/storage/database"
)

var (
	balanceService *BalanceService
	balanceOnce    sync.Once
)

func Balance() *BalanceService {
	balanceOnce.Do(func() {
		balanceService = &BalanceService{}
	})
	return balanceService
}

type BalanceService struct{}

// loadOrCreateBalanceTx 取出某员工某年的额度台账，不存在则按年度配额初始化
func loadOrCreateBalanceTx(tx *gorm.DB, employeeID int64, year int) (*model.LeaveBalance, error) {
	var balance model.LeaveBalance
	err := tx.Where("employee_id = ? AND year = ?", employeeID, year).
		First(&balance).Error
	if err == nil {
		return &balance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query leave balance: %w", err)
	}

	balance = model.LeaveBalance{
		EmployeeID:     employeeID,
		Year:           year,
		SickBalance:    model.SickLeaveAllotment,
		SpecialBalance: model.SpecialLeaveAllotment,
	}
	if err := tx.Create(&balance).Error; err != nil {
		return nil, fmt.Errorf("failed to create leave balance: %w", err)
	}
	return &balance, nil
}

// applyMonthlyCredit 发放当月事假额度
// LastCasualCreditMonth 是幂等哨兵，同一月份重复调用不会重复发放
func applyMonthlyCredit(balance *model.LeaveBalance, month int) bool {
	if balance.LastCasualCreditMonth >= month {
		return false
	}
	balance.CasualBalance += model.MonthlyCasualCredit
	balance.LastCasualCreditMonth = month
	return true
}

// applyYearlyReset 开新一年的台账：事假余额结转，病假/特别假重置为年度配额
func applyYearlyReset(balance *model.LeaveBalance, carryover float64) {
	balance.CasualBalance = carryover
	balance.CasualUsed = 0
	balance.SickBalance = model.SickLeaveAllotment
	balance.SickUsed = 0
	balance.SpecialBalance = model.SpecialLeaveAllotment
	balance.SpecialUsed = 0
	balance.UnpaidTaken = 0
	balance.LastCasualCreditMonth = 0
}

// creditMonthlyCasual 给单个员工发放当月事假额度
func creditMonthlyCasual(tx *gorm.DB, employeeID int64, year, month int) (bool, error) {
	balance, err := loadOrCreateBalanceTx(tx, employeeID, year)
	if err != nil {
		return false, err
	}
	if !applyMonthlyCredit(balance, month) {
		return false, nil
	}
	if err := tx.Save(balance).Error; err != nil {
		return false, fmt.Errorf("failed to credit casual leave: %w", err)
	}
	return true, nil
}

// hasSufficientBalance 按假别判断剩余额度是否够扣；无薪假永远足够
func hasSufficientBalance(balance *model.LeaveBalance, category model.LeaveCategory, days int) bool {
	switch category {
	case model.LeaveCategoryCasual, model.LeaveCategorySick, model.LeaveCategorySpecial:
		return balance.Remaining(category) >= float64(days)
	default:
		return true
	}
}

// applyDeduction 扣减额度并返回 (是否扣减, 是否转为无薪)
// 事假/病假额度不足时静默转无薪；特别假额度不足直接失败
func applyDeduction(balance *model.LeaveBalance, category model.LeaveCategory, days int) (bool, bool, error) {
	switch category {
	case model.LeaveCategoryCasual:
		if balance.CasualBalance >= float64(days) {
			balance.CasualBalance -= float64(days)
			balance.CasualUsed += float64(days)
			return true, false, nil
		}
		balance.UnpaidTaken += days
		return false, true, nil
	case model.LeaveCategorySick:
		if balance.SickBalance >= days {
			balance.SickBalance -= days
			balance.SickUsed += days
			return true, false, nil
		}
		balance.UnpaidTaken += days
		return false, true, nil
	case model.LeaveCategorySpecial:
		if balance.SpecialBalance < days {
			return false, false, pkgerrors.InsufficientBalance.WithDetails(map[string]interface{}{
				"requested_days": days,
				"remaining":      balance.SpecialBalance,
			})
		}
		balance.SpecialBalance -= days
		balance.SpecialUsed += days
		return true, false, nil
	case model.LeaveCategoryUnpaid:
		balance.UnpaidTaken += days
		return false, false, nil
	default:
		return false, false, nil
	}
}

// CreditMonthlyCasualLeave 给全部在职员工发放指定月份的事假额度
func (s *BalanceService) CreditMonthlyCasualLeave(ctx context.Context, year, month int) (*dto.BalanceReport, error) {
	if year < 2000 || month < 1 || month > 12 {
		return nil, pkgerrors.InvalidDate
	}

	report := &dto.BalanceReport{Year: year, Month: month}

	done, err := cache.IsCasualCreditDone(ctx, year, month)
	if err != nil {
		logger.Logger.Warn("Failed to check casual credit marker", zap.Error(err))
	} else if done {
		logger.Logger.Info("Casual credit already done for month",
			zap.Int("year", year),
			zap.Int("month", month),
		)
		return report, nil
	}

	var employees []model.Employee
	err = database.DB().WithContext(ctx).
		Where("status = ?", model.EmployeeStatusActive).
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	for _, employee := range employees {
		report.Processed++
		err := database.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			credited, err := creditMonthlyCasual(tx, employee.ID, year, month)
			if err != nil {
				return err
			}
			if credited {
				report.Credited++
			} else {
				report.Skipped++
			}
			return nil
		})
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("employee %d: %v", employee.PublicID, err))
		}
	}

	if err := cache.MarkCasualCreditDone(ctx, year, month); err != nil {
		logger.Logger.Warn("Failed to set casual credit marker", zap.Error(err))
	}

	logger.Logger.Info("Monthly casual leave credited",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("processed", report.Processed),
		zap.Int("credited", report.Credited),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", len(report.Errors)),
	)

	return report, nil
}

// resetYearly 给单个员工开新一年的台账，事假结转额取自上一年的剩余余额
func resetYearly(tx *gorm.DB, employeeID int64, newYear int) error {
	var previous model.LeaveBalance
	carryover := 0.0
	err := tx.Where("employee_id = ? AND year = ?", employeeID, newYear-1).
		First(&previous).Error
	if err == nil {
		carryover = previous.CasualBalance
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to query previous year balance: %w", err)
	}

	var current model.LeaveBalance
	err = tx.Where("employee_id = ? AND year = ?", employeeID, newYear).
		First(&current).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to query balance: %w", err)
		}
		current = model.LeaveBalance{
			EmployeeID: employeeID,
			Year:       newYear,
		}
	}

	applyYearlyReset(&current, carryover)
	return tx.Save(&current).Error
}

// ResetYearlyBalances 给全部在职员工开新一年的额度台账
func (s *BalanceService) ResetYearlyBalances(ctx context.Context, year int) (*dto.BalanceReport, error) {
	if year < 2000 {
		return nil, pkgerrors.InvalidDate
	}

	report := &dto.BalanceReport{Year: year}

	var employees []model.Employee
	err := database.DB().WithContext(ctx).
		Where("status = ?", model.EmployeeStatusActive).
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	for _, employee := range employees {
		report.Processed++
		err := database.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return resetYearly(tx, employee.ID, year)
		})
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("employee %d: %v", employee.PublicID, err))
			continue
		}
		report.Credited++
	}

	logger.Logger.Info("Yearly leave balances reset",
		zap.Int("year", year),
		zap.Int("processed", report.Processed),
		zap.Int("errors", len(report.Errors)),
	)

	return report, nil
}

// GetBalance 查询某员工某年的额度台账
func (s *BalanceService) GetBalance(ctx context.Context, employeePublicID int64, year int) (*dto.LeaveBalanceData, error) {
	employee, err := Punch().getActiveEmployee(ctx, employeePublicID)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = time.Now().In(punchLocation()).Year()
	}

	var balance model.LeaveBalance
	err = database.DB().WithContext(ctx).
		Where("employee_id = ? AND year = ?", employee.ID, year).
		First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.LeaveBalanceNotFound
		}
		return nil, fmt.Errorf("failed to query leave balance: %w", err)
	}

	return &dto.LeaveBalanceData{
		EmployeeID:            employeePublicID,
		Year:                  balance.Year,
		CasualBalance:         balance.CasualBalance,
		CasualUsed:            balance.CasualUsed,
		SickBalance:           balance.SickBalance,
		SickUsed:              balance.SickUsed,
		SpecialBalance:        balance.SpecialBalance,
		SpecialUsed:           balance.SpecialUsed,
		UnpaidTaken:           balance.UnpaidTaken,
		LastCasualCreditMonth: balance.LastCasualCreditMonth,
	}, nil
}
