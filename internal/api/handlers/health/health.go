package health

import (
	"net/http"
	"runtime"
	"time"

	"ayurveda-nutrition/internal/core/advisor"
	"ayurveda-nutrition/internal/core/cache"
	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Env       string                 `json:"env"`
	Uptime    string                 `json:"uptime"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// ReadyResponse 就緒檢查響應
type ReadyResponse struct {
	Status     string               `json:"status"`
	Categories int                  `json:"categories"`
	Foods      int                  `json:"foods"`
	Axes       map[catalog.Axis]int `json:"axes"`
	Cache      *cache.Stats         `json:"cache,omitempty"`
}

// Handler 健康檢查處理程序
type Handler struct {
	version         string
	env             string
	started         time.Time
	catalog         *advisor.CatalogService
	recommendations *advisor.RecommendationService
}

// NewHandler 創建健康檢查處理程序
func NewHandler(version, env string, cat *advisor.CatalogService, recs *advisor.RecommendationService) *Handler {
	return &Handler{
		version:         version,
		env:             env,
		started:         time.Now(),
		catalog:         cat,
		recommendations: recs,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Env:       h.env,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	})
}

// ReadinessCheck 參考資料已載入才算就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	resp := ReadyResponse{
		Status:     "ready",
		Categories: h.catalog.CategoryCount(),
		Foods:      h.catalog.FoodCount(),
		Axes:       h.catalog.CountByAxis(),
		Cache:      h.recommendations.CacheStats(),
	}
	if resp.Categories == 0 || resp.Foods == 0 {
		resp.Status = "not_ready"
		common.LogWarn("參考資料為空",
			zap.Int("categories", resp.Categories),
			zap.Int("foods", resp.Foods),
		)
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "alive",
		"goroutines": runtime.NumGoroutine(),
	})
}
