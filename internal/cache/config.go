package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"SignMeUp/config"
	"SignMeUp/internal/steps"
	"SignMeUp/pkg/logger"
	"SignMeUp/storage/redis"
)

// 布局读多写少，规范布局整体缓存一份，替换成功后失效

const configKeySuffix = "wizard:config"

func configKey() string {
	return redis.Key(configKeySuffix)
}

func configTTL() time.Duration {
	return time.Duration(config.Cfg.ConfigCacheTTLSeconds) * time.Second
}

// GetConfig 读取缓存的规范布局，未命中返回 (nil, nil)。
func GetConfig(ctx context.Context) (*steps.Configuration, error) {
	data, err := redis.Client().Get(ctx, configKey()).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var cfg steps.Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		// 缓存内容损坏时当作未命中，顺手清掉
		logger.Logger.Warn("Corrupted wizard config cache, dropping",
			zap.Error(err),
		)
		_ = redis.Client().Del(ctx, configKey()).Err()
		return nil, nil
	}

	return &cfg, nil
}

// SetConfig 写入规范布局缓存。
func SetConfig(ctx context.Context, cfg *steps.Configuration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return redis.Client().Set(ctx, configKey(), data, configTTL()).Err()
}

// InvalidateConfig 替换落库后失效缓存。
func InvalidateConfig(ctx context.Context) error {
	return redis.Client().Del(ctx, configKey()).Err()
}
