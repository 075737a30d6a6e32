package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ayurveda-nutrition/internal/api"
	"ayurveda-nutrition/internal/core/advisor"
	"ayurveda-nutrition/internal/core/cache"
	"ayurveda-nutrition/internal/core/matcher"
	"ayurveda-nutrition/internal/core/nutrition"
	"ayurveda-nutrition/internal/core/reference"
	"ayurveda-nutrition/internal/core/report"
	"ayurveda-nutrition/internal/infrastructure/config"
	"ayurveda-nutrition/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("env", cfg.App.Env),
		zap.String("reference_source", cfg.Reference.Source),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	// 載入參考資料
	src, closeSource, err := reference.NewSource(cfg.Reference)
	if err != nil {
		common.LogFatal("Failed to create reference source", zap.Error(err))
	}
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	data, err := reference.Load(loadCtx, src)
	cancelLoad()
	if err != nil {
		common.LogFatal("Failed to load reference data", zap.String("source", src.Name()), zap.Error(err))
	}
	if err := closeSource(); err != nil {
		common.LogWarn("Failed to close reference source", zap.Error(err))
	}

	// 初始化快取；停用時為 nil
	store, err := cache.NewStore(context.Background(), cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	m := matcher.New()
	services := api.Services{
		Recommendations: advisor.NewRecommendationService(data.Catalog, m, report.NewBuilder(m), store),
		Dishes:          advisor.NewDishService(nutrition.NewAggregator(data.Foods)),
		Catalog:         advisor.NewCatalogService(data.Catalog, data.Foods),
	}

	router, err := api.SetupRouter(cfg, services)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
