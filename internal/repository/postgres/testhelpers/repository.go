package testhelpers

import (
	"github.com/infrastructure-map/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewFeatureStoreForTest creates a feature store with test database and logger
func NewFeatureStoreForTest(db *sqlx.DB, logger *zap.Logger) *postgres.FeatureStore {
	return postgres.NewFeatureStore(NewDBForTest(db, logger))
}
