package handler

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"SignMeUp/config"
	"SignMeUp/storage/database"
	"SignMeUp/storage/redis"
)

// Healthz 健康检查，探活数据库和 Redis
// GET /healthz
func Healthz(ctx context.Context, c *app.RequestContext) {
	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	healthy := true

	if sqlDB, err := database.DB().DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unavailable"
		healthy = false
	}

	if err := redis.Client().Ping(ctx).Err(); err != nil {
		checks["redis"] = "unavailable"
		healthy = false
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, map[string]interface{}{
		"service": config.Cfg.ServiceName,
		"checks":  checks,
	})
}
