package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ayurveda-nutrition/internal/core/cache"
	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/matcher"
	"ayurveda-nutrition/internal/core/profile"
	"ayurveda-nutrition/internal/core/report"
	"ayurveda-nutrition/internal/pkg/common"

	"go.uber.org/zap"
)

const reportNamespace = "report"

// RecommendationService 依使用者檔案產生分類建議與報告
type RecommendationService struct {
	catalog *catalog.Store
	matcher *matcher.Matcher
	builder *report.Builder
	cache   cache.Store // nil 表示停用
}

// NewRecommendationService 創建建議服務；store 可為 nil
func NewRecommendationService(cat *catalog.Store, m *matcher.Matcher, b *report.Builder, store cache.Store) *RecommendationService {
	return &RecommendationService{catalog: cat, matcher: m, builder: b, cache: store}
}

// Match 只回傳排序後的建議清單
func (s *RecommendationService) Match(ctx context.Context, p profile.Profile) ([]matcher.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.matcher.Match(p.Normalize(), s.catalog.Records())
}

// Recommend 產生完整報告；相同檔案在快取有效期間沿用快取內容，但每次回傳新的 ID 與時間。
// 快取錯誤只記錄，不影響結果。
func (s *RecommendationService) Recommend(ctx context.Context, p profile.Profile) (*report.Report, bool, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid profile: %w", err)
	}

	key, err := s.cacheKey(p)
	if err != nil {
		common.LogWarn("無法生成快取鍵", zap.Error(err))
	}
	if cached, ok := s.lookup(ctx, key); ok {
		rep := s.builder.Restamp(*cached)
		return &rep, true, nil
	}

	start := time.Now()
	recs, err := s.Match(ctx, p)
	if err != nil {
		return nil, false, err
	}
	rep, err := s.builder.Build(p, recs)
	if err != nil {
		return nil, false, err
	}

	common.LogInfo("報告已生成",
		zap.String("report_id", rep.ID),
		zap.Int("recommendations", rep.Summary.TotalCategories),
		zap.Int("high_priority", rep.Summary.HighPriority),
		zap.Duration("elapsed", time.Since(start)),
	)

	s.store(ctx, key, &rep)
	return &rep, false, nil
}

// CacheStats 快取統計；停用時回傳 nil
func (s *RecommendationService) CacheStats() *cache.Stats {
	if s.cache == nil {
		return nil
	}
	stats := s.cache.Stats()
	return &stats
}

func (s *RecommendationService) cacheKey(p profile.Profile) (string, error) {
	if s.cache == nil {
		return "", nil
	}
	payload, err := common.ToJSON(p)
	if err != nil {
		return "", err
	}
	return cache.Key(reportNamespace, []byte(payload)), nil
}

func (s *RecommendationService) lookup(ctx context.Context, key string) (*report.Report, bool) {
	if s.cache == nil || key == "" {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("快取讀取失敗", zap.Error(err))
		}
		return nil, false
	}
	var rep report.Report
	if err := common.ParseJSONBytes(data, &rep); err != nil {
		common.LogWarn("快取內容無法解析", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &rep, true
}

func (s *RecommendationService) store(ctx context.Context, key string, rep *report.Report) {
	if s.cache == nil || key == "" {
		return
	}
	payload, err := common.ToJSON(rep)
	if err != nil {
		common.LogWarn("報告序列化失敗", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, []byte(payload)); err != nil {
		common.LogWarn("快取寫入失敗", zap.String("key", key), zap.Error(err))
	}
}
