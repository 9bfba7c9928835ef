package main

// @title Infrastructure Map API
// @version 1.0
// @description Infrastructure points of interest for Jigawa State grouped into category layers.
// @description
// @description Основные возможности:
// @description - HTML карта с фильтром по категориям
// @description - Слои и маркеры для активного фильтра
// @description - GeoJSON выгрузка объектов
// @description - Статистика по загруженным данным

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/infrastructure-map/docs"
	"github.com/infrastructure-map/internal/bootstrap"
	"github.com/infrastructure-map/internal/config"
	httpDelivery "github.com/infrastructure-map/internal/delivery/http"
	"github.com/infrastructure-map/internal/delivery/http/handler"
	"github.com/infrastructure-map/internal/mapview"
	"github.com/infrastructure-map/internal/pkg/logger"
	"github.com/infrastructure-map/internal/repository/memory"
	"github.com/infrastructure-map/internal/usecase"
	"github.com/infrastructure-map/internal/worker"
	"github.com/infrastructure-map/internal/worker/warmup"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Infrastructure Map")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("dataset_source", cfg.Dataset.Source),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 3. Load dataset
	ds, err := bootstrap.LoadDataset(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to load dataset", zap.Error(err))
	}
	log.Info("Dataset loaded",
		zap.String("source", ds.Source()),
		zap.Int("features", ds.Count()),
	)

	// 4. Cache
	cacheRepo, closeCache, err := bootstrap.NewCache(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer closeCache()

	// 5. Repositories
	featureRepo := memory.NewFeatureRepository(ds, log)

	log.Info("Repositories initialized")

	// 6. Use cases
	mapUC := usecase.NewMapUseCase(
		featureRepo,
		cacheRepo,
		cfg.Map,
		log,
		cfg.Cache.LayersCacheTTL,
	)

	statsUC := usecase.NewStatsUseCase(
		featureRepo,
		cacheRepo,
		ds,
		log,
		cfg.Cache.StatsCacheTTL,
	)

	log.Info("Use cases initialized")

	// 6b. Cache warmer, only useful with a shared cache
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var workers *worker.WorkerManager
	if cfg.Redis.Enabled {
		workers = worker.NewWorkerManager(log)
		workers.Register(warmup.NewCacheWarmer(mapUC, statsUC, cfg.Cache.WarmupInterval, log))
		if err := workers.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 7. HTTP handlers
	renderer, err := mapview.NewRenderer()
	if err != nil {
		log.Fatal("Failed to parse map templates", zap.Error(err))
	}

	mapHandler := handler.NewMapHandler(mapUC, renderer, log)
	featureHandler := handler.NewFeatureHandler(mapUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 8. HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		mapHandler,
		featureHandler,
		statsHandler,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workers != nil {
		if err := workers.Stop(); err != nil {
			log.Error("Workers shutdown error", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
