package postgres

import (
	"context"
	"fmt"

	"github.com/infrastructure-map/internal/dataset"
	"github.com/infrastructure-map/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS infrastructure_features (
	id          UUID PRIMARY KEY,
	category    TEXT NOT NULL,
	name        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	lon         DOUBLE PRECISION NOT NULL,
	lat         DOUBLE PRECISION NOT NULL,
	sort_order  INTEGER NOT NULL DEFAULT 0
)`

// FeatureStore reads and writes the dataset in PostgreSQL.
// The service reads it once at startup; requests are served from memory.
type FeatureStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewFeatureStore(db *DB) *FeatureStore {
	return &FeatureStore{
		db:     db.DB,
		logger: db.logger,
	}
}

// EnsureSchema creates the features table when missing
func (s *FeatureStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create infrastructure_features: %w", err)
	}
	return nil
}

// List returns features of the given categories ordered by category display
// order and insertion order. An empty list means all categories.
func (s *FeatureStore) List(ctx context.Context, categories []domain.Category) ([]*domain.Feature, error) {
	if len(categories) == 0 {
		categories = domain.Categories()
	}
	codes := make([]string, len(categories))
	for i, c := range categories {
		codes[i] = string(c)
	}

	query := `
		SELECT id, category, name, description, lon, lat
		FROM infrastructure_features
		WHERE category = ANY($1)
		ORDER BY array_position($2::text[], category), sort_order, name
	`

	var features []*domain.Feature
	if err := s.db.SelectContext(ctx, &features, query, pq.Array(codes), pq.Array(categoryOrder())); err != nil {
		s.logger.Error("Failed to list features", zap.Strings("categories", codes), zap.Error(err))
		return nil, fmt.Errorf("select features: %w", err)
	}
	return features, nil
}

// LoadDataset reads every row and validates it into a Dataset
func (s *FeatureStore) LoadDataset(ctx context.Context) (*dataset.Dataset, error) {
	features, err := s.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	ds, err := dataset.New(features, dataset.SourcePostgres)
	if err != nil {
		return nil, fmt.Errorf("validate features from postgres: %w", err)
	}

	s.logger.Info("Dataset loaded from PostgreSQL", zap.Int("features", ds.Count()))
	return ds, nil
}

// Seed upserts every feature of the dataset in one transaction
func (s *FeatureStore) Seed(ctx context.Context, ds *dataset.Dataset) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO infrastructure_features (id, category, name, description, lon, lat, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			lon = EXCLUDED.lon,
			lat = EXCLUDED.lat,
			sort_order = EXCLUDED.sort_order
	`

	count := 0
	for _, c := range domain.Categories() {
		for i, f := range ds.Features(c) {
			if _, err := tx.ExecContext(ctx, query, f.ID, string(f.Category), f.Name, f.Description, f.Lon, f.Lat, i); err != nil {
				return 0, fmt.Errorf("upsert feature %q: %w", f.Name, err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}

	s.logger.Info("Dataset seeded", zap.Int("features", count))
	return count, nil
}

func categoryOrder() []string {
	categories := domain.Categories()
	order := make([]string, len(categories))
	for i, c := range categories {
		order[i] = string(c)
	}
	return order
}
