package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/infrastructure-map/internal/config"
	"github.com/infrastructure-map/internal/dataset"
	"github.com/infrastructure-map/internal/domain"
	"github.com/infrastructure-map/internal/domain/repository"
	"github.com/infrastructure-map/internal/mapview"
	"github.com/infrastructure-map/internal/metrics"
	"github.com/infrastructure-map/internal/pkg/errors"
	"github.com/infrastructure-map/internal/usecase/dto"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// MapUseCase - выборка слоёв карты по активному фильтру
type MapUseCase struct {
	featureRepo repository.FeatureRepository
	cacheRepo   repository.CacheRepository
	mapCfg      config.MapConfig
	logger      *zap.Logger
	cacheTTL    time.Duration
}

func NewMapUseCase(
	featureRepo repository.FeatureRepository,
	cacheRepo repository.CacheRepository,
	mapCfg config.MapConfig,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *MapUseCase {
	return &MapUseCase{
		featureRepo: featureRepo,
		cacheRepo:   cacheRepo,
		mapCfg:      mapCfg,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

// ParseFilter converts request input into a filter, mapping failures to INVALID_FILTER
func ParseFilter(raw string) (domain.ActiveFilter, error) {
	filter, err := domain.ParseFilter(raw)
	if err != nil {
		return domain.ActiveFilter{}, errors.ErrInvalidFilter.WithDetails(map[string]interface{}{
			"filter":  raw,
			"allowed": filterValues(),
		})
	}
	return filter, nil
}

// ParseBBox converts an optional bbox parameter, empty input means no restriction
func ParseBBox(raw string) (*domain.BoundingBox, error) {
	if raw == "" {
		return nil, nil
	}
	bbox, err := domain.ParseBBox(raw)
	if err != nil {
		return nil, errors.ErrInvalidBBox.WithDetails(map[string]interface{}{"bbox": raw})
	}
	return bbox, nil
}

// Categories возвращает категории в порядке отображения с количеством объектов
func (uc *MapUseCase) Categories(ctx context.Context) ([]dto.CategoryInfo, error) {
	counts, err := uc.featureRepo.CountByCategory(ctx)
	if err != nil {
		uc.logger.Error("Failed to count features", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CategoryInfo, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		style := c.Style()
		result = append(result, dto.CategoryInfo{
			Code:        string(c),
			Slug:        style.Slug,
			Label:       style.Label,
			Color:       style.Color,
			ButtonClass: style.ButtonClass,
			Count:       counts[c],
		})
	}
	return result, nil
}

// FilterOptions возвращает кнопки фильтра, активная кнопка отмечена
func (uc *MapUseCase) FilterOptions(active domain.ActiveFilter, link mapview.LinkFunc) []dto.FilterOption {
	options := domain.FilterOptions()
	result := make([]dto.FilterOption, 0, len(options))
	for _, f := range options {
		option := dto.FilterOption{
			Value:       f.String(),
			Label:       f.Label(),
			ButtonClass: f.ButtonClass(),
			Active:      f == active,
		}
		if link != nil {
			option.Href = link(f)
		}
		result = append(result, option)
	}
	return result
}

// Layers возвращает видимые слои: по одному на каждую категорию, прошедшую фильтр
func (uc *MapUseCase) Layers(
	ctx context.Context,
	filter domain.ActiveFilter,
	bbox *domain.BoundingBox,
) (*dto.LayersResponse, error) {
	key := layersCacheKey(filter, bbox)

	cached, err := uc.cacheRepo.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("Failed to get layers from cache", zap.String("key", key), zap.Error(err))
	}
	if cached != nil {
		var resp dto.LayersResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			metrics.LayersCacheHitsTotal.Inc()
			metrics.RenderedMarkersTotal.WithLabelValues(filter.String()).Add(float64(resp.Total))
			return &resp, nil
		}
		uc.logger.Warn("Discarding malformed cached layers", zap.String("key", key))
	}
	metrics.LayersCacheMissesTotal.Inc()

	features, err := uc.selectFeatures(ctx, filter, bbox)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[domain.Category][]*domain.Feature)
	for _, f := range features {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	resp := &dto.LayersResponse{
		Filter: filter.String(),
		BBox:   bbox,
		Layers: make([]dto.Layer, 0, len(domain.Categories())),
	}
	for _, c := range visibleCategories(filter) {
		markers := make([]dto.Marker, 0, len(byCategory[c]))
		for _, f := range byCategory[c] {
			markers = append(markers, dto.NewMarker(f))
		}
		resp.Layers = append(resp.Layers, dto.Layer{
			Category: string(c),
			Label:    c.Label(),
			Color:    c.Color(),
			Checked:  true,
			Markers:  markers,
		})
		resp.Total += len(markers)
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache layers", zap.String("key", key), zap.Error(err))
		}
	}

	metrics.RenderedMarkersTotal.WithLabelValues(filter.String()).Add(float64(resp.Total))
	uc.logger.Debug("Layers built",
		zap.String("filter", filter.String()),
		zap.Int("layers", len(resp.Layers)),
		zap.Int("markers", resp.Total),
	)

	return resp, nil
}

// Warm пересчитывает слои фильтра и перезаписывает их в кеше
func (uc *MapUseCase) Warm(ctx context.Context, filter domain.ActiveFilter) (int, error) {
	key := layersCacheKey(filter, nil)
	if err := uc.cacheRepo.Delete(ctx, key); err != nil {
		return 0, fmt.Errorf("evict %s: %w", key, err)
	}

	resp, err := uc.Layers(ctx, filter, nil)
	if err != nil {
		return 0, err
	}
	return resp.Total, nil
}

// FeatureCollection возвращает ту же выборку в виде GeoJSON
func (uc *MapUseCase) FeatureCollection(
	ctx context.Context,
	filter domain.ActiveFilter,
	bbox *domain.BoundingBox,
) (*geojson.FeatureCollection, error) {
	features, err := uc.selectFeatures(ctx, filter, bbox)
	if err != nil {
		return nil, err
	}
	return dataset.FeatureCollection(features), nil
}

// GetFeature возвращает объект по идентификатору
func (uc *MapUseCase) GetFeature(ctx context.Context, rawID string) (*dto.FeatureResponse, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.ErrFeatureNotFound.WithDetails(map[string]interface{}{"id": rawID})
	}

	f, err := uc.featureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewFeatureResponse(f), nil
}

// Page собирает данные страницы карты для активного фильтра
func (uc *MapUseCase) Page(
	ctx context.Context,
	filter domain.ActiveFilter,
	link mapview.LinkFunc,
) (*mapview.PageData, error) {
	layers, err := uc.Layers(ctx, filter, nil)
	if err != nil {
		return nil, fmt.Errorf("build layers: %w", err)
	}

	return &mapview.PageData{
		Title:        uc.mapCfg.Title,
		Intro:        uc.mapCfg.Intro,
		ActiveFilter: filter.String(),
		Filters:      uc.FilterOptions(filter, link),
		Map: mapview.MapSettings{
			CenterLat:       uc.mapCfg.CenterLat,
			CenterLon:       uc.mapCfg.CenterLon,
			Zoom:            uc.mapCfg.Zoom,
			Height:          uc.mapCfg.Height,
			TileURL:         uc.mapCfg.TileURL,
			TileAttribution: uc.mapCfg.TileAttribution,
		},
		Layers: layers.Layers,
		Total:  layers.Total,
	}, nil
}

func (uc *MapUseCase) selectFeatures(
	ctx context.Context,
	filter domain.ActiveFilter,
	bbox *domain.BoundingBox,
) ([]*domain.Feature, error) {
	categories := visibleCategories(filter)

	var (
		features []*domain.Feature
		err      error
	)
	if bbox != nil {
		features, err = uc.featureRepo.InBBox(ctx, *bbox, categories)
	} else {
		features, err = uc.featureRepo.List(ctx, categories)
	}
	if err != nil {
		uc.logger.Error("Failed to select features",
			zap.String("filter", filter.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return features, nil
}

// visibleCategories applies ShouldShow to every category, keeping display order
func visibleCategories(filter domain.ActiveFilter) []domain.Category {
	var result []domain.Category
	for _, c := range domain.Categories() {
		if domain.ShouldShow(c, filter) {
			result = append(result, c)
		}
	}
	return result
}

func layersCacheKey(filter domain.ActiveFilter, bbox *domain.BoundingBox) string {
	if bbox == nil {
		return "layers:" + filter.String()
	}
	return "layers:" + filter.String() + ":" + bbox.String()
}

func filterValues() []string {
	options := domain.FilterOptions()
	values := make([]string, len(options))
	for i, f := range options {
		values[i] = f.String()
	}
	return values
}
