package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"SignMeUp/config"
	"SignMeUp/pkg/errors"
	"SignMeUp/pkg/logger"
	"SignMeUp/pkg/response"
	"SignMeUp/storage/redis"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// 时间窗口（秒）
	Window int
	// 时间窗口内最大请求数
	MaxRequests int
	// 限流键前缀
	KeyPrefix string
}

// SubmissionRateLimitConfig 引导提交限流配置
var SubmissionRateLimitConfig = RateLimitConfig{
	Window:      60,
	MaxRequests: 30,
	KeyPrefix:   "onboarding:rate",
}

// ConfigWriteRateLimitConfig 管理端布局替换限流配置
var ConfigWriteRateLimitConfig = RateLimitConfig{
	Window:      60,
	MaxRequests: 10,
	KeyPrefix:   "config:rate",
}

// RateLimiter 限流器，redis zset 滑动窗口
type RateLimiter struct {
	config RateLimitConfig
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	return &RateLimiter{config: config}
}

func (rl *RateLimiter) getKey(c *app.RequestContext) string {
	return redis.Key(rl.config.KeyPrefix, fmt.Sprintf("ip:%s", c.ClientIP()))
}

// Allow 检查是否允许请求
func (rl *RateLimiter) Allow(ctx context.Context, c *app.RequestContext) (bool, int, error) {
	key := rl.getKey(c)
	now := time.Now()
	windowStart := now.Add(-time.Duration(rl.config.Window) * time.Second)

	client := redis.Client()
	pipe := client.Pipeline()

	// 窗口外的请求记录先移除，再记录本次请求
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	pipe.ZAdd(ctx, key, redislib.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	zcardCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, time.Duration(rl.config.Window+10)*time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := int(zcardCmd.Val())
	return count <= rl.config.MaxRequests, count, nil
}

// RateLimitMiddleware 创建限流中间件，总开关关闭时直接放行
func RateLimitMiddleware(cfg RateLimitConfig) app.HandlerFunc {
	limiter := NewRateLimiter(cfg)

	return func(ctx context.Context, c *app.RequestContext) {
		if !config.Cfg.RateLimitEnabled {
			c.Next(ctx)
			return
		}

		allowed, count, err := limiter.Allow(ctx, c)
		if err != nil {
			// 限流器故障不挡业务请求
			logger.Logger.Error("Failed to check rate limit", zap.Error(err))
			c.Next(ctx)
			return
		}

		remaining := cfg.MaxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Response.Header.Set("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Response.Header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			response.Error(ctx, c, errors.RateLimited)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}

// SubmissionRateLimitMiddleware 引导提交限流中间件
func SubmissionRateLimitMiddleware() app.HandlerFunc {
	return RateLimitMiddleware(SubmissionRateLimitConfig)
}

// ConfigWriteRateLimitMiddleware 布局替换限流中间件
func ConfigWriteRateLimitMiddleware() app.HandlerFunc {
	return RateLimitMiddleware(ConfigWriteRateLimitConfig)
}
