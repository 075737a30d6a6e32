package advisor

import (
	"context"
	"fmt"

	"ayurveda-nutrition/internal/core/food"
	"ayurveda-nutrition/internal/core/nutrition"
	"ayurveda-nutrition/internal/pkg/common"

	"go.uber.org/zap"
)

// MaxIngredients 單次分析的食材上限
const MaxIngredients = 100

// DishService 菜餚營養分析
type DishService struct {
	aggregator *nutrition.Aggregator
}

// NewDishService 創建菜餚分析服務
func NewDishService(agg *nutrition.Aggregator) *DishService {
	return &DishService{aggregator: agg}
}

// Analyze 計算營養總和與阿育吠陀屬性
func (s *DishService) Analyze(ctx context.Context, ingredients []food.Ingredient) (nutrition.Dish, error) {
	if err := ctx.Err(); err != nil {
		return nutrition.Dish{}, err
	}
	if len(ingredients) == 0 {
		return nutrition.Dish{}, common.NewFieldError("ingredients", "at least one ingredient is required")
	}
	if len(ingredients) > MaxIngredients {
		return nutrition.Dish{}, common.NewFieldError("ingredients", fmt.Sprintf("at most %d ingredients are allowed", MaxIngredients))
	}

	dish, err := s.aggregator.Compose(ingredients)
	if err != nil {
		return nutrition.Dish{}, err
	}
	if len(dish.Unresolved) > 0 {
		common.LogDebug("部分食材無法解析",
			zap.Strings("unresolved", dish.Unresolved),
			zap.Int("resolved", len(dish.Resolved)),
		)
	}
	return dish, nil
}
