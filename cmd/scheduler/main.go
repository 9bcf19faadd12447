package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"OnDuty/config"
	"OnDuty/internal/schedule"
	"OnDuty/pkg/logger"
	"OnDuty/pkg/snowflake"
	"OnDuty/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	// 考虑与 worker 和 server 作区分
	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", "onduty-scheduler"),
		zap.String("environment", config.Cfg.Environment),
	)

	go runDailyAutoMarkLoop(ctx)
	go runMonthlyCreditLoop(ctx)
	go runYearlyResetLoop(ctx)

	<-ctx.Done()

	logger.Logger.Info("Scheduler service shutting down gracefully")
}

// runDailyAutoMarkLoop 每天固定时间对前一天执行自动标记
// 运行时间由 AUTO_MARK_RUN_AT 配置，默认 00:30
func runDailyAutoMarkLoop(ctx context.Context) {
	s := schedule.GetAttendanceScheduler()
	timeout := time.Duration(config.Cfg.AutoMarkTimeoutMinutes) * time.Minute

	// 在 development 环境下，为了方便本地调试，将每日调度改为每 1 分钟执行一次
	if config.Cfg.Environment == "development" {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		logger.Logger.Info("Daily auto-mark scheduler running in development mode with 1m interval")

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(ctx, timeout)
				if err := s.RunDailyAutoMark(runCtx); err != nil {
					logger.Logger.Error("Daily auto-mark run failed (development interval)", zap.Error(err))
				}
				cancel()
			}
		}
	}

	runAt, err := time.Parse("15:04:05", config.Cfg.AutoMarkRunAt)
	if err != nil {
		logger.Logger.Warn("Invalid AUTO_MARK_RUN_AT, falling back to 00:30:00",
			zap.String("value", config.Cfg.AutoMarkRunAt),
		)
		runAt, _ = time.Parse("15:04:05", "00:30:00")
	}

	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(),
			runAt.Hour(), runAt.Minute(), runAt.Second(), 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		delay := time.Until(next)
		logger.Logger.Info("Scheduled next daily auto-mark run",
			zap.Time("now", now),
			zap.Time("next_run", next),
			zap.Duration("delay", delay),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			runCtx, cancel := context.WithTimeout(ctx, timeout)
			if err := s.RunDailyAutoMark(runCtx); err != nil {
				logger.Logger.Error("Daily auto-mark run failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// runMonthlyCreditLoop 每月 1 日发放事假额度
// 当前实现：每小时检查一次日期，哨兵保证幂等
func runMonthlyCreditLoop(ctx context.Context) {
	s := schedule.GetBalanceScheduler()

	interval := 1 * time.Hour
	if config.Cfg.Environment == "development" {
		interval = 1 * time.Minute
		logger.Logger.Info("Monthly credit loop running in development mode with 1m interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if time.Now().Day() != 1 && config.Cfg.Environment != "development" {
				continue
			}
			runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			if err := s.RunMonthlyCredit(runCtx); err != nil {
				logger.Logger.Error("Monthly credit run failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// runYearlyResetLoop 每年 1 月 1 日重置年度额度台账
func runYearlyResetLoop(ctx context.Context) {
	s := schedule.GetBalanceScheduler()

	interval := 1 * time.Hour
	if config.Cfg.Environment == "development" {
		interval = 1 * time.Minute
		logger.Logger.Info("Yearly reset loop running in development mode with 1m interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			if err := s.RunYearlyReset(runCtx); err != nil {
				logger.Logger.Error("Yearly reset run failed", zap.Error(err))
			}
			cancel()
		}
	}
}
