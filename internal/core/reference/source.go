package reference

import (
	"context"
	"fmt"

	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/food"
	"ayurveda-nutrition/internal/infrastructure/config"
	"ayurveda-nutrition/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source 參考資料來源：分類目錄與食材資料
type Source interface {
	Name() string
	Categories(ctx context.Context) ([]catalog.Record, error)
	Foods(ctx context.Context) ([]food.Item, error)
}

// Data 載入完成、已驗證的唯讀資料
type Data struct {
	Catalog *catalog.Store
	Foods   *food.Store
	Source  string
}

// Load 並行讀取分類與食材並建立資料庫；任一邊失敗即中止
func Load(ctx context.Context, src Source) (*Data, error) {
	var (
		records []catalog.Record
		items   []food.Item
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rs, err := src.Categories(gctx)
		if err != nil {
			return fmt.Errorf("load categories from %s: %w", src.Name(), err)
		}
		records = rs
		return nil
	})
	g.Go(func() error {
		is, err := src.Foods(gctx)
		if err != nil {
			return fmt.Errorf("load foods from %s: %w", src.Name(), err)
		}
		items = is
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	normalized, err := normalizeAxes(records)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.NewStore(normalized)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	foods, err := food.NewStore(items)
	if err != nil {
		return nil, fmt.Errorf("build food store: %w", err)
	}

	common.LogInfo("參考資料已載入",
		zap.String("source", src.Name()),
		zap.Int("categories", cat.Len()),
		zap.Int("foods", foods.Len()),
	)
	return &Data{Catalog: cat, Foods: foods, Source: src.Name()}, nil
}

// normalizeAxes 把 "gender-specific" 等寫法轉成標準分類軸
func normalizeAxes(records []catalog.Record) ([]catalog.Record, error) {
	out := make([]catalog.Record, len(records))
	for i, r := range records {
		if !r.Axis.Valid() {
			axis, err := catalog.ParseAxis(string(r.Axis))
			if err != nil {
				return nil, fmt.Errorf("category record %d (%q): %w", i, r.SubLabel, err)
			}
			r.Axis = axis
		}
		out[i] = r
	}
	return out, nil
}

// NewSource 依設定建立資料來源；回傳的 closer 需在結束時呼叫
func NewSource(cfg config.ReferenceConfig) (Source, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Source {
	case config.SourceEmbedded, "":
		return NewEmbeddedSource(), noop, nil
	case config.SourceFile:
		return NewFileSource(cfg.CategoriesPath, cfg.FoodsPath), noop, nil
	case config.SourceHTTP:
		return NewHTTPSource(cfg.CategoriesURL, cfg.FoodsURL, cfg.Timeout, cfg.Retries), noop, nil
	case config.SourceSQLite:
		s, err := OpenSQLiteSource(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown reference source %q", cfg.Source)
}
