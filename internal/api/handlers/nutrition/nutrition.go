package nutrition

import (
	"net/http"

	"ayurveda-nutrition/internal/api/handlers"
	"ayurveda-nutrition/internal/core/advisor"
	"ayurveda-nutrition/internal/core/food"

	"github.com/gin-gonic/gin"
)

// AggregateRequest 菜餚的食材清單
type AggregateRequest struct {
	Ingredients []food.Ingredient `json:"ingredients"`
}

// Handler 菜餚營養分析處理程序
type Handler struct {
	service *advisor.DishService
	debug   bool
}

// NewHandler 創建營養分析處理程序
func NewHandler(service *advisor.DishService, debug bool) *Handler {
	return &Handler{service: service, debug: debug}
}

// HandleAggregate 計算菜餚營養總和與阿育吠陀屬性
func (h *Handler) HandleAggregate(c *gin.Context) {
	var req AggregateRequest
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	dish, err := h.service.Analyze(c.Request.Context(), req.Ingredients)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, dish)
}
