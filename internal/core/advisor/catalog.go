package advisor

import (
	"fmt"
	"strings"

	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/food"
	"ayurveda-nutrition/internal/pkg/common"
)

// CatalogService 分類目錄與食材查詢
type CatalogService struct {
	catalog *catalog.Store
	foods   *food.Store
}

// NewCatalogService 創建查詢服務
func NewCatalogService(cat *catalog.Store, foods *food.Store) *CatalogService {
	return &CatalogService{catalog: cat, foods: foods}
}

// Categories 列出分類；axis 為空時回傳全部
func (s *CatalogService) Categories(axis string) ([]catalog.Record, error) {
	if strings.TrimSpace(axis) == "" {
		return s.catalog.All(), nil
	}
	a, err := catalog.ParseAxis(axis)
	if err != nil {
		return nil, err
	}
	return s.catalog.ByAxis(a), nil
}

// CountByAxis 各分類軸的數量
func (s *CatalogService) CountByAxis() map[catalog.Axis]int {
	return s.catalog.CountByAxis()
}

// CategoryCount 分類數量
func (s *CatalogService) CategoryCount() int {
	return s.catalog.Len()
}

// FoodCount 食材數量
func (s *CatalogService) FoodCount() int {
	return s.foods.Len()
}

// Food 以 ID 查詢食材
func (s *CatalogService) Food(id string) (food.Item, error) {
	it, ok := s.foods.Get(id)
	if !ok {
		return food.Item{}, common.ErrFoodNotFound.Wrap(fmt.Errorf("food %q", id))
	}
	return it, nil
}

// ResolveFood 以與菜餚分析相同的規則解析自由文字
func (s *CatalogService) ResolveFood(query string) (food.Item, food.MatchKind, error) {
	if strings.TrimSpace(query) == "" {
		return food.Item{}, food.MatchNone, common.NewFieldError("q", "is required")
	}
	it, kind := s.foods.Resolve(food.Ingredient{Name: query})
	if it == nil {
		return food.Item{}, food.MatchNone, common.ErrFoodNotFound.Wrap(fmt.Errorf("no food matches %q", query))
	}
	return it.Clone(), kind, nil
}
