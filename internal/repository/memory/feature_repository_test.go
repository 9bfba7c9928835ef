package memory

import (
	"context"
	"testing"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
	"github.com/infrastructure-map/internal/dataset"
	"github.com/infrastructure-map/internal/domain"
	"github.com/infrastructure-map/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type FeatureRepositorySuite struct {
	suite.Suite
	ds  *dataset.Dataset
	ctx context.Context
}

func (s *FeatureRepositorySuite) SetupSuite() {
	ds, err := dataset.LoadEmbedded()
	s.Require().NoError(err)
	s.ds = ds
	s.ctx = context.Background()
}

func (s *FeatureRepositorySuite) repo() *featureRepository {
	return NewFeatureRepository(s.ds, zap.NewNop()).(*featureRepository)
}

func (s *FeatureRepositorySuite) TestList_AllCategories() {
	features, err := s.repo().List(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(features, 9)
}

func (s *FeatureRepositorySuite) TestList_SelectedCategoriesKeepDisplayOrder() {
	features, err := s.repo().List(s.ctx, []domain.Category{domain.CategoryUtilities, domain.CategoryHealthcare})
	s.Require().NoError(err)
	s.Require().Len(features, 3)

	s.Equal("General Hospital Dutse", features[0].Name)
	s.Equal("Dutse Health Centre", features[1].Name)
	s.Equal("Dutse Water Supply", features[2].Name)
}

func (s *FeatureRepositorySuite) TestGetByID() {
	id := domain.FeatureID(domain.CategoryTransportation, "Dutse Railway Station")

	f, err := s.repo().GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Railway station for train services.", f.Description)

	_, err = s.repo().GetByID(s.ctx, uuid.New())
	s.ErrorIs(err, errors.ErrFeatureNotFound)
}

func (s *FeatureRepositorySuite) TestInBBox() {
	tests := []struct {
		name       string
		bbox       domain.BoundingBox
		categories []domain.Category
		expected   []string
	}{
		{
			name:     "whole region",
			bbox:     domain.BoundingBox{MinLon: 9.0, MinLat: 11.9, MaxLon: 9.3, MaxLat: 12.1},
			expected: []string{"General Hospital Dutse", "Dutse Health Centre", "Dutse Model School", "Dutse Secondary School", "Dutse Bus Terminal", "Dutse Railway Station", "Dutse Water Supply", "Dutse Police Station", "Dutse Fire Station"},
		},
		{
			name:     "western cluster",
			bbox:     domain.BoundingBox{MinLon: 9.15, MinLat: 12.0, MaxLon: 9.161, MaxLat: 12.003},
			expected: []string{"General Hospital Dutse", "Dutse Bus Terminal", "Dutse Water Supply", "Dutse Fire Station"},
		},
		{
			name:       "western cluster restricted to healthcare",
			bbox:       domain.BoundingBox{MinLon: 9.15, MinLat: 12.0, MaxLon: 9.161, MaxLat: 12.003},
			categories: []domain.Category{domain.CategoryHealthcare},
			expected:   []string{"General Hospital Dutse"},
		},
		{
			name:     "degenerate box on a point",
			bbox:     domain.BoundingBox{MinLon: 9.1896, MinLat: 12.0057, MaxLon: 9.1896, MaxLat: 12.0057},
			expected: []string{"Dutse Health Centre"},
		},
		{
			name:     "empty area",
			bbox:     domain.BoundingBox{MinLon: 0, MinLat: 0, MaxLon: 1, MaxLat: 1},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			features, err := s.repo().InBBox(s.ctx, tt.bbox, tt.categories)
			s.Require().NoError(err)

			names := make([]string, 0, len(features))
			for _, f := range features {
				names = append(names, f.Name)
			}
			s.Equal(tt.expected, names)
		})
	}
}

func (s *FeatureRepositorySuite) TestSpatialIndex() {
	repo := s.repo()
	s.Equal(len(s.ds.All()), repo.tree.Size())

	f := s.ds.All()[0]
	point := rtreego.Point{f.Lon, f.Lat}.ToRect(tolerance)
	var found bool
	for _, item := range repo.tree.SearchIntersect(point) {
		sf, ok := item.(*spatialFeature)
		s.Require().True(ok)
		s.Require().NotNil(sf.Bounds())
		if sf.feature.ID == f.ID {
			found = true
		}
	}
	s.True(found)
}

func (s *FeatureRepositorySuite) TestCountByCategory() {
	counts, err := s.repo().CountByCategory(s.ctx)
	s.Require().NoError(err)

	total := 0
	for _, n := range counts {
		total += n
	}
	s.Equal(9, total)
	s.Equal(2, counts[domain.CategoryPublicServices])
}

func TestFeatureRepositorySuite(t *testing.T) {
	suite.Run(t, new(FeatureRepositorySuite))
}

func TestNewFeatureRepository_EmptyDataset(t *testing.T) {
	ds, err := dataset.New(nil, dataset.SourceDir)
	require.NoError(t, err)

	repo := NewFeatureRepository(ds, zap.NewNop())
	features, err := repo.InBBox(context.Background(), domain.BoundingBox{MinLon: -180, MinLat: -90, MaxLon: 180, MaxLat: 90}, nil)
	require.NoError(t, err)
	assert.Empty(t, features)
}
