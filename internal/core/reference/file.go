package reference

import (
	"context"
	"fmt"
	"os"

	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/food"
	"ayurveda-nutrition/internal/pkg/common"
)

// FileSource 從磁碟上的 JSON 檔讀取，欄位必須完全符合
type FileSource struct {
	categoriesPath string
	foodsPath      string
}

// NewFileSource 建立檔案資料來源
func NewFileSource(categoriesPath, foodsPath string) *FileSource {
	return &FileSource{categoriesPath: categoriesPath, foodsPath: foodsPath}
}

// Name 來源名稱
func (s *FileSource) Name() string { return "file" }

// Categories 讀取分類檔
func (s *FileSource) Categories(_ context.Context) ([]catalog.Record, error) {
	var records []catalog.Record
	if err := decodeFile(s.categoriesPath, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Foods 讀取食材檔
func (s *FileSource) Foods(_ context.Context) ([]food.Item, error) {
	var items []food.Item
	if err := decodeFile(s.foodsPath, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeFile(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := common.DecodeJSONStrict(f, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
