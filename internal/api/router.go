package api

import (
	"errors"
	"fmt"
	"time"

	"ayurveda-nutrition/internal/api/handlers"
	catalogHandler "ayurveda-nutrition/internal/api/handlers/catalog"
	"ayurveda-nutrition/internal/api/handlers/health"
	nutritionHandler "ayurveda-nutrition/internal/api/handlers/nutrition"
	recommendationHandler "ayurveda-nutrition/internal/api/handlers/recommendation"
	"ayurveda-nutrition/internal/api/middleware"
	"ayurveda-nutrition/internal/core/advisor"
	"ayurveda-nutrition/internal/infrastructure/config"
	"ayurveda-nutrition/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services 路由所需的服務
type Services struct {
	Recommendations *advisor.RecommendationService
	Dishes          *advisor.DishService
	Catalog         *advisor.CatalogService
}

func (s Services) validate() error {
	switch {
	case s.Recommendations == nil:
		return errors.New("recommendation service is required")
	case s.Dishes == nil:
		return errors.New("dish service is required")
	case s.Catalog == nil:
		return errors.New("catalog service is required")
	}
	return nil
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc Services) (*gin.Engine, error) {
	if err := svc.validate(); err != nil {
		return nil, err
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg.App.Version, cfg.App.Env, svc.Catalog, svc.Recommendations)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	{
		recs := recommendationHandler.NewHandler(svc.Recommendations, cfg.App.Debug)
		api.POST("/recommendations", recs.HandleReport)
		api.POST("/recommendations/match", recs.HandleMatch)

		dishes := nutritionHandler.NewHandler(svc.Dishes, cfg.App.Debug)
		api.POST("/nutrition/aggregate", dishes.HandleAggregate)

		cat := catalogHandler.NewHandler(svc.Catalog, cfg.App.Debug)
		api.GET("/catalog/categories", cat.HandleCategories)
		api.GET("/foods", cat.HandleSearchFoods)
		api.GET("/foods/:id", cat.HandleFood)
	}

	router.NoRoute(func(c *gin.Context) {
		handlers.RespondError(c, common.ErrNotFound.Wrap(fmt.Errorf("%s %s", c.Request.Method, c.Request.URL.Path)), cfg.App.Debug)
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
		zap.Int("routes", len(router.Routes())),
	)

	return router, nil
}

// corsConfig 含 "*" 時允許所有來源，此時不送出 credentials
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID", recommendationHandler.CacheHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
