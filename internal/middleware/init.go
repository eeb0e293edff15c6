package middleware

import (
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"SignMeUp/pkg/logger"
	"SignMeUp/pkg/metrics"
)

// Init 初始化所有中间件
func Init() error {
	meter := otel.Meter("signmeup-server")

	if err := initHTTPMetrics(meter); err != nil {
		logger.Logger.Error("Failed to initialize http metrics", zap.Error(err))
		return err
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Error("Failed to initialize business metrics", zap.Error(err))
		return err
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
