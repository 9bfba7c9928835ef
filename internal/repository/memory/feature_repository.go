package memory

import (
	"context"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
	"github.com/infrastructure-map/internal/dataset"
	"github.com/infrastructure-map/internal/domain"
	"github.com/infrastructure-map/internal/domain/repository"
	"github.com/infrastructure-map/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	tolerance   = 1e-9
	minChildren = 2
	maxChildren = 8
	dimensions  = 2
)

// spatialFeature wraps a feature for R-Tree indexing, axes are (lon, lat)
type spatialFeature struct {
	feature *domain.Feature
	rect    *rtreego.Rect
}

var _ rtreego.Spatial = (*spatialFeature)(nil)

func (s *spatialFeature) Bounds() *rtreego.Rect {
	return s.rect
}

type featureRepository struct {
	ds     *dataset.Dataset
	tree   *rtreego.Rtree
	logger *zap.Logger
}

// NewFeatureRepository indexes the dataset once; the index is read-only afterwards
func NewFeatureRepository(ds *dataset.Dataset, logger *zap.Logger) repository.FeatureRepository {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for _, f := range ds.All() {
		tree.Insert(&spatialFeature{
			feature: f,
			rect:    rtreego.Point{f.Lon, f.Lat}.ToRect(tolerance),
		})
	}

	logger.Debug("Spatial index built", zap.Int("features", tree.Size()))

	return &featureRepository{
		ds:     ds,
		tree:   tree,
		logger: logger,
	}
}

func (r *featureRepository) List(ctx context.Context, categories []domain.Category) ([]*domain.Feature, error) {
	if len(categories) == 0 {
		return r.ds.All(), nil
	}

	var result []*domain.Feature
	for _, c := range domain.Categories() {
		if containsCategory(categories, c) {
			result = append(result, r.ds.Features(c)...)
		}
	}
	return result, nil
}

func (r *featureRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feature, error) {
	f, ok := r.ds.ByID(id)
	if !ok {
		return nil, errors.ErrFeatureNotFound
	}
	return f, nil
}

func (r *featureRepository) InBBox(
	ctx context.Context,
	bbox domain.BoundingBox,
	categories []domain.Category,
) ([]*domain.Feature, error) {
	width := bbox.MaxLon - bbox.MinLon
	height := bbox.MaxLat - bbox.MinLat
	if width < tolerance {
		width = tolerance
	}
	if height < tolerance {
		height = tolerance
	}

	bounds, err := rtreego.NewRect(rtreego.Point{bbox.MinLon, bbox.MinLat}, []float64{width, height})
	if err != nil {
		return nil, errors.ErrInvalidBBox
	}

	matched := make(map[uuid.UUID]struct{})
	for _, item := range r.tree.SearchIntersect(bounds) {
		sf, ok := item.(*spatialFeature)
		if !ok {
			continue
		}
		// R-Tree rects are padded by the tolerance, re-check the exact point
		if bbox.Contains(sf.feature.Lon, sf.feature.Lat) {
			matched[sf.feature.ID] = struct{}{}
		}
	}

	// Walk the dataset so results keep display order regardless of tree layout
	candidates, err := r.List(ctx, categories)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Feature, 0, len(matched))
	for _, f := range candidates {
		if _, ok := matched[f.ID]; ok {
			result = append(result, f)
		}
	}
	return result, nil
}

func (r *featureRepository) CountByCategory(ctx context.Context) (map[domain.Category]int, error) {
	return r.ds.CountByCategory(), nil
}

func containsCategory(categories []domain.Category, c domain.Category) bool {
	for _, candidate := range categories {
		if candidate == c {
			return true
		}
	}
	return false
}
