package catalog

import (
	"net/http"

	"ayurveda-nutrition/internal/api/handlers"
	"ayurveda-nutrition/internal/core/advisor"
	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/food"

	"github.com/gin-gonic/gin"
)

// CategoriesResponse 分類清單
type CategoriesResponse struct {
	Axis       string           `json:"axis,omitempty"`
	Count      int              `json:"count"`
	Categories []catalog.Record `json:"categories"`
}

// FoodMatchResponse 自由文字查詢的解析結果
type FoodMatchResponse struct {
	Query string         `json:"query"`
	Match food.MatchKind `json:"match"`
	Food  food.Item      `json:"food"`
}

// Handler 分類目錄與食材查詢處理程序
type Handler struct {
	service *advisor.CatalogService
	debug   bool
}

// NewHandler 創建查詢處理程序
func NewHandler(service *advisor.CatalogService, debug bool) *Handler {
	return &Handler{service: service, debug: debug}
}

// HandleCategories 列出分類，可用 ?axis= 篩選
func (h *Handler) HandleCategories(c *gin.Context) {
	axis := c.Query("axis")
	records, err := h.service.Categories(axis)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, CategoriesResponse{Axis: axis, Count: len(records), Categories: records})
}

// HandleFood 以 ID 查詢食材
func (h *Handler) HandleFood(c *gin.Context) {
	item, err := h.service.Food(c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, item)
}

// HandleSearchFoods 以 ?q= 解析食材名稱
func (h *Handler) HandleSearchFoods(c *gin.Context) {
	q := c.Query("q")
	item, kind, err := h.service.ResolveFood(q)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, FoodMatchResponse{Query: q, Match: kind, Food: item})
}
