package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"ayurveda-nutrition/internal/infrastructure/config"
	"ayurveda-nutrition/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 報告快取；Get 未命中時回傳 common.ErrCacheMiss
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Stats() Stats
	Close() error
}

// Stats 快取統計
type Stats struct {
	Backend  string  `json:"backend"`
	Size     int     `json:"size"`
	MaxSize  int     `json:"max_size,omitempty"`
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
}

func hitRatio(hits, misses int64) float64 {
	if hits+misses == 0 {
		return 0
	}
	return common.Round(float64(hits)/float64(hits+misses), 4)
}

// Key 生成緩存鍵：namespace + 內容的 SHA-256
func Key(namespace string, payload []byte) string {
	hash := sha256.Sum256(payload)
	return fmt.Sprintf("%s:%s", namespace, hex.EncodeToString(hash[:]))
}

// NewStore 依設定建立快取；停用時回傳 nil
func NewStore(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}
	switch cfg.Backend {
	case config.BackendRedis:
		s, err := NewRedisStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendMemory, "":
		return NewMemoryStore(cfg.MaxSize, cfg.TTL), nil
	}
	common.LogWarn("未知的快取後端", zap.String("backend", cfg.Backend))
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
