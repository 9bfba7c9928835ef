package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/infrastructure-map/internal/domain"
	"github.com/infrastructure-map/internal/domain/repository"
	"go.uber.org/zap"
)

// DatasetInfo описывает происхождение загруженного набора данных
type DatasetInfo interface {
	Source() string
	LoadedAt() time.Time
}

// StatsUseCase обрабатывает бизнес-логику для статистики
type StatsUseCase struct {
	featureRepo repository.FeatureRepository
	cacheRepo   repository.CacheRepository
	info        DatasetInfo
	logger      *zap.Logger
	cacheTTL    time.Duration
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	featureRepo repository.FeatureRepository,
	cacheRepo repository.CacheRepository,
	info DatasetInfo,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		featureRepo: featureRepo,
		cacheRepo:   cacheRepo,
		info:        info,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

// GetStatistics возвращает статистику, используя кеш когда возможно
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	cached, err := uc.cacheRepo.GetStats(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Statistics fetched from cache")
		return cached, nil
	}

	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
	}

	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}

	// ошибка кеша не мешает вернуть данные
	if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
	}

	return stats, nil
}

// RefreshStatistics принудительно пересчитывает статистику
func (uc *StatsUseCase) RefreshStatistics(ctx context.Context) (*domain.Statistics, error) {
	uc.logger.Info("Refreshing statistics")

	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache refreshed stats", zap.Error(err))
	}

	return stats, nil
}

func (uc *StatsUseCase) compute(ctx context.Context) (*domain.Statistics, error) {
	features, err := uc.featureRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}

	byCategory := make(map[string]int, len(domain.Categories()))
	for _, c := range domain.Categories() {
		byCategory[string(c)] = 0
	}
	for _, f := range features {
		byCategory[string(f.Category)]++
	}

	stats := &domain.Statistics{
		TotalFeatures: len(features),
		ByCategory:    byCategory,
		Coverage:      domain.CoverageOf(features),
	}
	if uc.info != nil {
		stats.DataSource = uc.info.Source()
		stats.LoadedAt = uc.info.LoadedAt()
	}
	return stats, nil
}
