package reference

import (
	"context"
	"embed"
	"fmt"

	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/food"
	"ayurveda-nutrition/internal/pkg/common"
)

//go:embed seed/categories.json seed/foods.json
var seedFS embed.FS

// EmbeddedSource 隨執行檔附帶的預設資料
type EmbeddedSource struct{}

// NewEmbeddedSource 建立內嵌資料來源
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Name 來源名稱
func (s *EmbeddedSource) Name() string { return "embedded" }

// Categories 讀取內嵌分類
func (s *EmbeddedSource) Categories(_ context.Context) ([]catalog.Record, error) {
	var records []catalog.Record
	if err := readSeed("seed/categories.json", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Foods 讀取內嵌食材
func (s *EmbeddedSource) Foods(_ context.Context) ([]food.Item, error) {
	var items []food.Item
	if err := readSeed("seed/foods.json", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func readSeed(name string, v interface{}) error {
	data, err := seedFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := common.ParseJSONBytesStrict(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
