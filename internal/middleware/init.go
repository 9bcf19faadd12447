package middleware

import (
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"OnDuty/pkg/logger"
)

// Init 初始化所有中间件
func Init() error {
	if err := InitMetrics(otel.Meter("onduty.http")); err != nil {
		logger.Logger.Error("Failed to initialize http metrics", zap.Error(err))
		return err
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
