// Package bootstrap wires the dataset and cache layers from configuration.
// Both the HTTP service and the CLI start from here.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/infrastructure-map/internal/config"
	"github.com/infrastructure-map/internal/dataset"
	"github.com/infrastructure-map/internal/domain/repository"
	"github.com/infrastructure-map/internal/repository/cache"
	"github.com/infrastructure-map/internal/repository/postgres"
	"go.uber.org/zap"
)

// LoadDataset loads the features from the configured source.
// The dataset is read once and stays immutable for the life of the process.
func LoadDataset(ctx context.Context, cfg *config.Config, log *zap.Logger) (*dataset.Dataset, error) {
	switch cfg.Dataset.Source {
	case config.DatasetSourceEmbedded:
		return dataset.LoadEmbedded()

	case config.DatasetSourceDir:
		ds, err := dataset.Load(os.DirFS(cfg.Dataset.Dir), dataset.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("load dataset from %s: %w", cfg.Dataset.Dir, err)
		}
		return ds, nil

	case config.DatasetSourcePostgres:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()

		ds, err := postgres.NewFeatureStore(db).LoadDataset(ctx)
		if err != nil {
			return nil, fmt.Errorf("load dataset from postgres: %w", err)
		}
		return ds, nil

	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}

// NewCache connects to Redis when enabled, otherwise returns a no-op cache.
// The returned closer is never nil.
func NewCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.CacheRepository, func(), error) {
	if !cfg.Redis.Enabled {
		log.Info("Redis disabled, caching turned off")
		return cache.NewNoopCacheRepository(), func() {}, nil
	}

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		return nil, func() {}, err
	}
	if err := redisClient.Health(ctx); err != nil {
		_ = redisClient.Close()
		return nil, func() {}, fmt.Errorf("redis health check: %w", err)
	}

	closer := func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}
	return cache.NewCacheRepository(redisClient), closer, nil
}
