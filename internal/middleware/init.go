package middleware

import (
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"GongKe/pkg/logger"
	"GongKe/pkg/metrics"
)

// Init 初始化所有中间件依赖的全局状态。
// 未启用 tracing 时 otel 返回 noop meter，指标调用零开销
func Init() error {
	if err := InitMetrics(otel.Meter("gongke")); err != nil {
		logger.Logger.Error("Failed to initialize HTTP metrics", zap.Error(err))
		return err
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Error("Failed to initialize domain metrics", zap.Error(err))
		return err
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
