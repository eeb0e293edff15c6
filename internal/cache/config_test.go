package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignMeUp/internal/steps"
	"SignMeUp/pkg/logger"
	"SignMeUp/storage/redis"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	logger.Init()

	mr := miniredis.RunT(t)
	redis.SetClient(redislib.NewClient(&redislib.Options{Addr: mr.Addr()}))
	return mr
}

func TestConfigCacheRoundTrip(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	// 冷缓存未命中不报错
	cached, err := GetConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)

	cfg := steps.Default()
	require.NoError(t, SetConfig(ctx, &cfg))

	cached, err = GetConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, cfg, *cached)
}

func TestConfigCacheInvalidate(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	cfg := steps.Default()
	require.NoError(t, SetConfig(ctx, &cfg))
	require.NoError(t, InvalidateConfig(ctx))

	cached, err := GetConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestConfigCacheDropsCorruptedEntry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(configKey(), "{not json"))

	// 损坏内容当作未命中，并且键被清掉
	cached, err := GetConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)
	assert.False(t, mr.Exists(configKey()))
}
