package schedule

// 额度调度器：每月 1 日发放事假额度，每年 1 月 1 日重置年度台账

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"OnDuty/config"
	"OnDuty/internal/service"
	"OnDuty/pkg/logger"
)

var (
	balanceSchedOnce sync.Once
	balanceSchedInst *BalanceScheduler
)

type BalanceScheduler struct {
	logger *zap.Logger
	jobMu  sync.Mutex
}

func GetBalanceScheduler() *BalanceScheduler {
	balanceSchedOnce.Do(func() {
		balanceSchedInst = &BalanceScheduler{
			logger: logger.Logger,
		}
	})
	return balanceSchedInst
}

func (s *BalanceScheduler) now() time.Time {
	loc, err := time.LoadLocation(config.Cfg.PunchTimezone)
	if err != nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// RunMonthlyCredit 发放当月事假额度
// 服务层的 LastCasualCreditMonth 哨兵保证重复触发不会重复发放
func (s *BalanceScheduler) RunMonthlyCredit(ctx context.Context) error {
	s.jobMu.Lock()
	defer s.jobMu.Unlock()

	now := s.now()
	report, err := service.Balance().CreditMonthlyCasualLeave(ctx, now.Year(), int(now.Month()))
	if err != nil {
		s.logger.Error("Monthly casual credit run failed", zap.Error(err))
		return err
	}

	s.logger.Info("Monthly casual credit run completed",
		zap.Int("year", report.Year),
		zap.Int("month", report.Month),
		zap.Int("credited", report.Credited),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", len(report.Errors)),
	)
	return nil
}

// RunYearlyReset 在新年第一天重置年度额度台账
func (s *BalanceScheduler) RunYearlyReset(ctx context.Context) error {
	s.jobMu.Lock()
	defer s.jobMu.Unlock()

	now := s.now()
	if now.Month() != time.January || now.Day() != 1 {
		s.logger.Debug("Not the first day of the year, skipping yearly reset")
		return nil
	}

	report, err := service.Balance().ResetYearlyBalances(ctx, now.Year())
	if err != nil {
		s.logger.Error("Yearly balance reset run failed", zap.Error(err))
		return err
	}

	s.logger.Info("Yearly balance reset run completed",
		zap.Int("year", report.Year),
		zap.Int("processed", report.Processed),
		zap.Int("errors", len(report.Errors)),
	)
	return nil
}
