package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/infrastructure-map/internal/domain"
)

// FeatureRepository определяет методы для чтения объектов инфраструктуры
type FeatureRepository interface {
	// List возвращает объекты указанных категорий в порядке отображения.
	// Пустой список категорий означает все категории.
	List(ctx context.Context, categories []domain.Category) ([]*domain.Feature, error)

	// GetByID возвращает объект по идентификатору
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Feature, error)

	// InBBox возвращает объекты внутри ограничивающего прямоугольника
	InBBox(ctx context.Context, bbox domain.BoundingBox, categories []domain.Category) ([]*domain.Feature, error)

	// CountByCategory возвращает количество объектов по категориям
	CountByCategory(ctx context.Context) (map[domain.Category]int, error)
}
