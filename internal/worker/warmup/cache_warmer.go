package warmup

import (
	"context"
	"time"

	"github.com/infrastructure-map/internal/domain"
	"github.com/infrastructure-map/internal/worker"
	"go.uber.org/zap"
)

// LayerWarmer пересчитывает слои одного фильтра
type LayerWarmer interface {
	Warm(ctx context.Context, filter domain.ActiveFilter) (int, error)
}

// StatsRefresher пересчитывает статистику
type StatsRefresher interface {
	RefreshStatistics(ctx context.Context) (*domain.Statistics, error)
}

// CacheWarmer заполняет кеш слоями всех фильтров и статистикой,
// затем обновляет его с заданным интервалом
type CacheWarmer struct {
	*worker.BaseWorker
	layers   LayerWarmer
	stats    StatsRefresher
	interval time.Duration
}

// NewCacheWarmer создает новый CacheWarmer
func NewCacheWarmer(
	layers LayerWarmer,
	stats StatsRefresher,
	interval time.Duration,
	logger *zap.Logger,
) *CacheWarmer {
	return &CacheWarmer{
		BaseWorker: worker.NewBaseWorker("cache-warmer", logger),
		layers:     layers,
		stats:      stats,
		interval:   interval,
	}
}

// Start прогревает кеш сразу и затем по таймеру
func (w *CacheWarmer) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting cache warmer", zap.Duration("interval", w.interval))

	w.WarmOnce(ctx)

	if w.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.WarmOnce(ctx)
		}
	}
}

// WarmOnce пересчитывает все фильтры; ошибки логируются и не прерывают проход
func (w *CacheWarmer) WarmOnce(ctx context.Context) {
	logger := w.Logger()
	start := time.Now()

	warmed := 0
	for _, filter := range domain.FilterOptions() {
		markers, err := w.layers.Warm(ctx, filter)
		if err != nil {
			logger.Warn("Failed to warm layers",
				zap.String("filter", filter.String()),
				zap.Error(err))
			continue
		}
		warmed++
		logger.Debug("Layers warmed",
			zap.String("filter", filter.String()),
			zap.Int("markers", markers))
	}

	if w.stats != nil {
		if _, err := w.stats.RefreshStatistics(ctx); err != nil {
			logger.Warn("Failed to refresh statistics", zap.Error(err))
		}
	}

	logger.Info("Cache warmed",
		zap.Int("filters", warmed),
		zap.Duration("took", time.Since(start)))
}
