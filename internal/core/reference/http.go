package reference

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/food"
	"ayurveda-nutrition/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// HTTPSource 從遠端 JSON 端點讀取
type HTTPSource struct {
	client        *resty.Client
	categoriesURL string
	foodsURL      string
}

// NewHTTPSource 建立 HTTP 資料來源；逾時與重試次數套用在每個請求
func NewHTTPSource(categoriesURL, foodsURL string, timeout time.Duration, retries int) *HTTPSource {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "ayurveda-nutrition")

	return &HTTPSource{client: client, categoriesURL: categoriesURL, foodsURL: foodsURL}
}

// Name 來源名稱
func (s *HTTPSource) Name() string { return "http" }

// Categories 下載分類
func (s *HTTPSource) Categories(ctx context.Context) ([]catalog.Record, error) {
	var records []catalog.Record
	if err := s.fetch(ctx, s.categoriesURL, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Foods 下載食材
func (s *HTTPSource) Foods(ctx context.Context) ([]food.Item, error) {
	var items []food.Item
	if err := s.fetch(ctx, s.foodsURL, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *HTTPSource) fetch(ctx context.Context, url string, v interface{}) error {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("參考資料端點回應異常",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode()),
		)
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode())
	}
	if err := common.ParseJSONBytesStrict(resp.Body(), v); err != nil {
		return fmt.Errorf("parse %s: %w", url, err)
	}
	return nil
}
