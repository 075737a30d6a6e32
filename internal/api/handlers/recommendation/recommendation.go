package recommendation

import (
	"net/http"

	"ayurveda-nutrition/internal/api/handlers"
	"ayurveda-nutrition/internal/core/advisor"
	"ayurveda-nutrition/internal/core/matcher"
	"ayurveda-nutrition/internal/core/profile"
	"ayurveda-nutrition/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CacheHeader 標示報告是否來自快取（HIT / MISS）
const CacheHeader = "X-Cache"

// MatchResponse 排序後的分類建議
type MatchResponse struct {
	Count           int                      `json:"count"`
	Recommendations []matcher.Recommendation `json:"recommendations"`
}

// Handler 飲食建議處理程序
type Handler struct {
	service *advisor.RecommendationService
	debug   bool
}

// NewHandler 創建新的建議處理程序
func NewHandler(service *advisor.RecommendationService, debug bool) *Handler {
	return &Handler{service: service, debug: debug}
}

// HandleReport 依使用者檔案產生完整報告
func (h *Handler) HandleReport(c *gin.Context) {
	var p profile.Profile
	if err := handlers.BindJSON(c, &p); err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	rep, cached, err := h.service.Recommend(c.Request.Context(), p)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	if cached {
		c.Header(CacheHeader, "HIT")
	} else {
		c.Header(CacheHeader, "MISS")
	}
	common.LogDebug("報告已回傳",
		zap.String("request_id", requestid.Get(c)),
		zap.String("report_id", rep.ID),
		zap.Bool("cached", cached),
	)
	c.JSON(http.StatusOK, rep)
}

// HandleMatch 只回傳排序後的分類建議
func (h *Handler) HandleMatch(c *gin.Context) {
	var p profile.Profile
	if err := handlers.BindJSON(c, &p); err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	recs, err := h.service.Match(c.Request.Context(), p)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, MatchResponse{Count: len(recs), Recommendations: recs})
}
