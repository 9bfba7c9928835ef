package cache

import (
	"context"
	"time"

	"github.com/infrastructure-map/internal/domain"
	"github.com/infrastructure-map/internal/domain/repository"
)

// noopCache is used when Redis is disabled: every read is a miss
type noopCache struct{}

func NewNoopCacheRepository() repository.CacheRepository {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) ([]byte, error)                       { return nil, nil }
func (noopCache) Set(context.Context, string, []byte, time.Duration) error          { return nil }
func (noopCache) Delete(context.Context, string) error                              { return nil }
func (noopCache) Exists(context.Context, string) (bool, error)                      { return false, nil }
func (noopCache) GetStats(context.Context) (*domain.Statistics, error)              { return nil, nil }
func (noopCache) SetStats(context.Context, *domain.Statistics, time.Duration) error { return nil }
