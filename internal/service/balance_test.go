package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"OnDuty/internal/model"
	pkgerrors "OnDuty/pkg/errors"
)

func freshBalance() *model.LeaveBalance {
	return &model.LeaveBalance{
		EmployeeID:     1,
		Year:           2025,
		CasualBalance:  2,
		SickBalance:    model.SickLeaveAllotment,
		SpecialBalance: model.SpecialLeaveAllotment,
	}
}

func TestApplyMonthlyCredit(t *testing.T) {
	balance := freshBalance()

	credited := applyMonthlyCredit(balance, 3)
	assert.True(t, credited)
	assert.Equal(t, 3.0, balance.CasualBalance)
	assert.Equal(t, 3, balance.LastCasualCreditMonth)

	// 同一月份重复发放必须是空操作
	credited = applyMonthlyCredit(balance, 3)
	assert.False(t, credited)
	assert.Equal(t, 3.0, balance.CasualBalance)
	assert.Equal(t, 3, balance.LastCasualCreditMonth)

	// 更早的月份同样不补发
	credited = applyMonthlyCredit(balance, 2)
	assert.False(t, credited)
	assert.Equal(t, 3.0, balance.CasualBalance)

	credited = applyMonthlyCredit(balance, 4)
	assert.True(t, credited)
	assert.Equal(t, 4.0, balance.CasualBalance)
	assert.Equal(t, 4, balance.LastCasualCreditMonth)
}

func TestApplyYearlyReset(t *testing.T) {
	balance := &model.LeaveBalance{
		EmployeeID:            1,
		Year:                  2026,
		CasualBalance:         0.5,
		CasualUsed:            6,
		SickBalance:           0,
		SickUsed:              3,
		SpecialBalance:        2,
		SpecialUsed:           5,
		UnpaidTaken:           4,
		LastCasualCreditMonth: 12,
	}

	applyYearlyReset(balance, 1.5)

	assert.Equal(t, 1.5, balance.CasualBalance)
	assert.Equal(t, 0.0, balance.CasualUsed)
	assert.Equal(t, model.SickLeaveAllotment, balance.SickBalance)
	assert.Equal(t, 0, balance.SickUsed)
	assert.Equal(t, model.SpecialLeaveAllotment, balance.SpecialBalance)
	assert.Equal(t, 0, balance.SpecialUsed)
	assert.Equal(t, 0, balance.UnpaidTaken)
	assert.Equal(t, 0, balance.LastCasualCreditMonth)
}

func TestHasSufficientBalance(t *testing.T) {
	balance := freshBalance()

	tests := []struct {
		name     string
		category model.LeaveCategory
		days     int
		expected bool
	}{
		{"Casual within balance", model.LeaveCategoryCasual, 2, true},
		{"Casual over balance", model.LeaveCategoryCasual, 3, false},
		{"Sick within balance", model.LeaveCategorySick, 3, true},
		{"Sick over balance", model.LeaveCategorySick, 4, false},
		{"Special within balance", model.LeaveCategorySpecial, 7, true},
		{"Special over balance", model.LeaveCategorySpecial, 8, false},
		{"Unpaid is always sufficient", model.LeaveCategoryUnpaid, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, hasSufficientBalance(balance, tt.category, tt.days))
		})
	}
}

func TestApplyDeductionCasual(t *testing.T) {
	balance := freshBalance()

	deducted, converted, err := applyDeduction(balance, model.LeaveCategoryCasual, 2)
	assert.NoError(t, err)
	assert.True(t, deducted)
	assert.False(t, converted)
	assert.Equal(t, 0.0, balance.CasualBalance)
	assert.Equal(t, 2.0, balance.CasualUsed)
	assert.Equal(t, 0, balance.UnpaidTaken)
}

func TestApplyDeductionCasualConvertsToUnpaid(t *testing.T) {
	// 余额 2 天、申请 3 天：整单静默转无薪，余额保持不动
	balance := freshBalance()

	deducted, converted, err := applyDeduction(balance, model.LeaveCategoryCasual, 3)
	assert.NoError(t, err)
	assert.False(t, deducted)
	assert.True(t, converted)
	assert.Equal(t, 2.0, balance.CasualBalance)
	assert.Equal(t, 0.0, balance.CasualUsed)
	assert.Equal(t, 3, balance.UnpaidTaken)
}

func TestApplyDeductionSickConvertsToUnpaid(t *testing.T) {
	balance := freshBalance()

	deducted, converted, err := applyDeduction(balance, model.LeaveCategorySick, 4)
	assert.NoError(t, err)
	assert.False(t, deducted)
	assert.True(t, converted)
	assert.Equal(t, model.SickLeaveAllotment, balance.SickBalance)
	assert.Equal(t, 4, balance.UnpaidTaken)
}

func TestApplyDeductionSpecialFailsHard(t *testing.T) {
	balance := freshBalance()

	deducted, converted, err := applyDeduction(balance, model.LeaveCategorySpecial, 8)
	assert.Error(t, err)
	assert.False(t, deducted)
	assert.False(t, converted)
	assert.Equal(t, model.SpecialLeaveAllotment, balance.SpecialBalance)
	assert.Equal(t, 0, balance.UnpaidTaken)

	detailed, ok := err.(pkgerrors.Detailed)
	assert.True(t, ok)
	assert.Equal(t, pkgerrors.InsufficientBalance.Code, detailed.Code)
}

func TestApplyDeductionSpecialWithinBalance(t *testing.T) {
	balance := freshBalance()

	deducted, converted, err := applyDeduction(balance, model.LeaveCategorySpecial, 7)
	assert.NoError(t, err)
	assert.True(t, deducted)
	assert.False(t, converted)
	assert.Equal(t, 0, balance.SpecialBalance)
	assert.Equal(t, 7, balance.SpecialUsed)
}

func TestApplyDeductionUnpaid(t *testing.T) {
	balance := freshBalance()

	deducted, converted, err := applyDeduction(balance, model.LeaveCategoryUnpaid, 5)
	assert.NoError(t, err)
	assert.False(t, deducted)
	assert.False(t, converted)
	assert.Equal(t, 5, balance.UnpaidTaken)
}
