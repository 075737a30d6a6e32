package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"ayurveda-nutrition/internal/infrastructure/config"
	"ayurveda-nutrition/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 以 Redis 保存報告，多個實例可共用
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisStore 創建 Redis 快取並測試連接
func NewRedisStore(ctx context.Context, cfg config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("快取管理員已初始化",
		zap.String("backend", "redis"),
		zap.String("addr", cfg.Redis.Addr),
		zap.Duration("存活時間", cfg.TTL),
	)
	return &RedisStore{client: client, prefix: cfg.Redis.Prefix, ttl: cfg.TTL}, nil
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.misses.Add(1)
			common.LogCacheMiss("redis")
			return nil, common.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}
	s.hits.Add(1)
	common.LogCacheHit("redis")
	return data, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats Redis 不回報容量，只統計命中
func (s *RedisStore) Stats() Stats {
	hits, misses := s.hits.Load(), s.misses.Load()
	return Stats{
		Backend:  "redis",
		Hits:     hits,
		Misses:   misses,
		HitRatio: hitRatio(hits, misses),
	}
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
