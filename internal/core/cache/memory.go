package cache

import (
	"context"
	"sync/atomic"
	"time"

	"ayurveda-nutrition/internal/pkg/common"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// MemoryStore 行程內的 LRU 快取，容量與存活時間固定
type MemoryStore struct {
	lru       *expirable.LRU[string, []byte]
	maxSize   int
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewMemoryStore 創建記憶體快取
func NewMemoryStore(maxSize int, ttl time.Duration) *MemoryStore {
	m := &MemoryStore{maxSize: maxSize}
	m.lru = expirable.NewLRU[string, []byte](maxSize, func(string, []byte) {
		m.evictions.Add(1)
	}, ttl)

	common.LogInfo("快取管理員已初始化",
		zap.String("backend", "memory"),
		zap.Int("最大容量", maxSize),
		zap.Duration("存活時間", ttl),
	)
	return m
}

// Get 獲取緩存值
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.lru.Get(key)
	if !ok {
		m.misses.Add(1)
		common.LogCacheMiss("memory")
		return nil, common.ErrCacheMiss
	}
	m.hits.Add(1)
	common.LogCacheHit("memory")
	return append([]byte(nil), value...), nil
}

// Set 設置緩存值
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.lru.Add(key, append([]byte(nil), value...))
	return nil
}

// Stats 獲取緩存統計信息
func (m *MemoryStore) Stats() Stats {
	hits, misses := m.hits.Load(), m.misses.Load()
	return Stats{
		Backend:  "memory",
		Size:     m.lru.Len(),
		MaxSize:  m.maxSize,
		Hits:     hits,
		Misses:   misses,
		HitRatio: hitRatio(hits, misses),
	}
}

// Close 清空快取
func (m *MemoryStore) Close() error {
	m.lru.Purge()
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.hits.Load()),
		zap.Int64("未命中次數", m.misses.Load()),
		zap.Int64("淘汰次數", m.evictions.Load()),
	)
	return nil
}
