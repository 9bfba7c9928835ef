package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/infrastructure-map/internal/config"
	"github.com/infrastructure-map/internal/dataset"
	"github.com/infrastructure-map/internal/domain"
	"github.com/infrastructure-map/internal/mapview"
	apperrors "github.com/infrastructure-map/internal/pkg/errors"
	"github.com/infrastructure-map/internal/repository/cache"
	"github.com/infrastructure-map/internal/repository/memory"
	"github.com/infrastructure-map/internal/usecase"
	"github.com/infrastructure-map/internal/usecase/dto"
)

func newMapUseCase(t *testing.T) *usecase.MapUseCase {
	t.Helper()

	ds, err := dataset.LoadEmbedded()
	require.NoError(t, err)

	logger := zap.NewNop()
	return usecase.NewMapUseCase(
		memory.NewFeatureRepository(ds, logger),
		cache.NewNoopCacheRepository(),
		config.Default().Map,
		logger,
		time.Hour,
	)
}

func markerNames(layer dto.Layer) []string {
	names := make([]string, len(layer.Markers))
	for i, m := range layer.Markers {
		names[i] = m.Name
	}
	return names
}

func TestMapUseCase_Layers_PerFilter(t *testing.T) {
	uc := newMapUseCase(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  domain.ActiveFilter
		layer   string
		markers []string
	}{
		{
			name:    "healthcare",
			filter:  domain.FilterFor(domain.CategoryHealthcare),
			layer:   "Healthcare",
			markers: []string{"General Hospital Dutse", "Dutse Health Centre"},
		},
		{
			name:    "education",
			filter:  domain.FilterFor(domain.CategoryEducation),
			layer:   "Education",
			markers: []string{"Dutse Model School", "Dutse Secondary School"},
		},
		{
			name:    "transportation",
			filter:  domain.FilterFor(domain.CategoryTransportation),
			layer:   "Transportation",
			markers: []string{"Dutse Bus Terminal", "Dutse Railway Station"},
		},
		{
			name:    "utilities",
			filter:  domain.FilterFor(domain.CategoryUtilities),
			layer:   "Utilities",
			markers: []string{"Dutse Water Supply"},
		},
		{
			name:    "public services",
			filter:  domain.FilterFor(domain.CategoryPublicServices),
			layer:   "Public Services",
			markers: []string{"Dutse Police Station", "Dutse Fire Station"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Layers(ctx, tt.filter, nil)
			require.NoError(t, err)

			require.Len(t, resp.Layers, 1)
			assert.Equal(t, tt.layer, resp.Layers[0].Label)
			assert.Equal(t, tt.markers, markerNames(resp.Layers[0]))
			assert.Equal(t, len(tt.markers), resp.Total)
			assert.Equal(t, tt.filter.String(), resp.Filter)
		})
	}
}

func TestMapUseCase_Layers_All(t *testing.T) {
	uc := newMapUseCase(t)

	resp, err := uc.Layers(context.Background(), domain.AllFilter(), nil)
	require.NoError(t, err)

	assert.Equal(t, "All", resp.Filter)
	assert.Equal(t, 9, resp.Total)

	labels := make([]string, len(resp.Layers))
	for i, l := range resp.Layers {
		labels[i] = l.Label
		assert.True(t, l.Checked)
		assert.NotEmpty(t, l.Color)
	}
	assert.Equal(t, []string{"Healthcare", "Education", "Transportation", "Utilities", "Public Services"}, labels)
}

func TestMapUseCase_Layers_PopupText(t *testing.T) {
	uc := newMapUseCase(t)

	resp, err := uc.Layers(context.Background(), domain.FilterFor(domain.CategoryUtilities), nil)
	require.NoError(t, err)
	require.Len(t, resp.Layers, 1)
	require.Len(t, resp.Layers[0].Markers, 1)

	m := resp.Layers[0].Markers[0]
	assert.Equal(t, "Dutse Water Supply", m.Name)
	assert.Equal(t, "Main water supply facility for Dutse.", m.Description)
	assert.InDelta(t, 12.0022, m.Lat, 1e-9)
	assert.InDelta(t, 9.1605, m.Lon, 1e-9)
}

func TestMapUseCase_Layers_Idempotent(t *testing.T) {
	uc := newMapUseCase(t)
	ctx := context.Background()

	first, err := uc.Layers(ctx, domain.FilterFor(domain.CategoryEducation), nil)
	require.NoError(t, err)
	second, err := uc.Layers(ctx, domain.FilterFor(domain.CategoryEducation), nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMapUseCase_Layers_BBox(t *testing.T) {
	uc := newMapUseCase(t)

	bbox := &domain.BoundingBox{MinLon: 9.15, MinLat: 12.0, MaxLon: 9.17, MaxLat: 12.01}
	resp, err := uc.Layers(context.Background(), domain.AllFilter(), bbox)
	require.NoError(t, err)

	assert.Equal(t, bbox, resp.BBox)
	for _, l := range resp.Layers {
		for _, m := range l.Markers {
			assert.True(t, bbox.Contains(m.Lon, m.Lat), m.Name)
		}
	}
}

func TestMapUseCase_Layers_Cache(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	filter := domain.FilterFor(domain.CategoryHealthcare)

	t.Run("cache hit skips repository", func(t *testing.T) {
		mockRepo := &MockFeatureRepository{}
		mockCache := &MockCacheRepository{}
		uc := usecase.NewMapUseCase(mockRepo, mockCache, config.Default().Map, logger, time.Hour)

		cached := dto.LayersResponse{
			Filter: "Healthcare",
			Layers: []dto.Layer{{Category: "Healthcare", Label: "Healthcare", Color: "red", Checked: true}},
		}
		data, err := json.Marshal(cached)
		require.NoError(t, err)

		mockCache.On("Get", ctx, "layers:Healthcare").Return(data, nil)

		resp, err := uc.Layers(ctx, filter, nil)
		require.NoError(t, err)
		assert.Equal(t, "Healthcare", resp.Filter)
		require.Len(t, resp.Layers, 1)

		mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		mockCache.AssertExpectations(t)
	})

	t.Run("cache miss stores result", func(t *testing.T) {
		mockRepo := &MockFeatureRepository{}
		mockCache := &MockCacheRepository{}
		uc := usecase.NewMapUseCase(mockRepo, mockCache, config.Default().Map, logger, time.Hour)

		features := []*domain.Feature{
			domain.NewFeature(domain.CategoryHealthcare, "General Hospital Dutse", "Hospital", 9.1605, 12.0022),
		}
		mockCache.On("Get", ctx, "layers:Healthcare").Return(nil, nil)
		mockRepo.On("List", ctx, []domain.Category{domain.CategoryHealthcare}).Return(features, nil)
		mockCache.On("Set", ctx, "layers:Healthcare", mock.Anything, time.Hour).Return(nil)

		resp, err := uc.Layers(ctx, filter, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)

		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("cache failures do not change output", func(t *testing.T) {
		mockRepo := &MockFeatureRepository{}
		mockCache := &MockCacheRepository{}
		uc := usecase.NewMapUseCase(mockRepo, mockCache, config.Default().Map, logger, time.Hour)

		features := []*domain.Feature{
			domain.NewFeature(domain.CategoryHealthcare, "Dutse Health Centre", "Clinic", 9.1896, 12.0057),
		}
		mockCache.On("Get", ctx, "layers:Healthcare").Return(nil, errors.New("connection refused"))
		mockRepo.On("List", ctx, []domain.Category{domain.CategoryHealthcare}).Return(features, nil)
		mockCache.On("Set", ctx, "layers:Healthcare", mock.Anything, time.Hour).Return(errors.New("connection refused"))

		resp, err := uc.Layers(ctx, filter, nil)
		require.NoError(t, err)
		require.Len(t, resp.Layers, 1)
		assert.Equal(t, []string{"Dutse Health Centre"}, markerNames(resp.Layers[0]))
	})

	t.Run("repository error is returned", func(t *testing.T) {
		mockRepo := &MockFeatureRepository{}
		mockCache := &MockCacheRepository{}
		uc := usecase.NewMapUseCase(mockRepo, mockCache, config.Default().Map, logger, time.Hour)

		mockCache.On("Get", ctx, "layers:Healthcare").Return(nil, nil)
		mockRepo.On("List", ctx, []domain.Category{domain.CategoryHealthcare}).Return(nil, apperrors.ErrDatasetError)

		resp, err := uc.Layers(ctx, filter, nil)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrDatasetError)
		mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMapUseCase_Categories(t *testing.T) {
	uc := newMapUseCase(t)

	categories, err := uc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 5)

	counts := map[string]int{}
	for _, c := range categories {
		counts[c.Code] = c.Count
	}
	assert.Equal(t, map[string]int{
		"Healthcare":     2,
		"Education":      2,
		"Transportation": 2,
		"Utilities":      1,
		"PublicServices": 2,
	}, counts)
	assert.Equal(t, "public_services", categories[4].Slug)
	assert.Equal(t, "purple", categories[4].Color)
}

func TestMapUseCase_FilterOptions(t *testing.T) {
	uc := newMapUseCase(t)

	options := uc.FilterOptions(domain.FilterFor(domain.CategoryEducation), mapview.ServerLinks)
	require.Len(t, options, 6)

	assert.Equal(t, "All", options[0].Value)
	assert.Equal(t, "/", options[0].Href)
	assert.Equal(t, "btn-primary", options[0].ButtonClass)

	var active []string
	for _, o := range options {
		if o.Active {
			active = append(active, o.Value)
		}
	}
	assert.Equal(t, []string{"Education"}, active)
	assert.Equal(t, "/?filter=Education", options[2].Href)
}

func TestMapUseCase_FeatureCollection(t *testing.T) {
	uc := newMapUseCase(t)
	ctx := context.Background()

	all, err := uc.FeatureCollection(ctx, domain.AllFilter(), nil)
	require.NoError(t, err)
	assert.Len(t, all.Features, 9)

	transport, err := uc.FeatureCollection(ctx, domain.FilterFor(domain.CategoryTransportation), nil)
	require.NoError(t, err)
	require.Len(t, transport.Features, 2)
	for _, f := range transport.Features {
		assert.Equal(t, "Transportation", f.Properties.MustString("category"))
	}
}

func TestMapUseCase_GetFeature(t *testing.T) {
	uc := newMapUseCase(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		id := domain.FeatureID(domain.CategoryPublicServices, "Dutse Fire Station")

		f, err := uc.GetFeature(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, "Dutse Fire Station", f.Name)
		assert.Equal(t, "PublicServices", f.Category)
		assert.Equal(t, "Public Services", f.Label)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := uc.GetFeature(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, apperrors.ErrFeatureNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		id := domain.FeatureID(domain.CategoryHealthcare, "Nowhere Clinic")

		_, err := uc.GetFeature(ctx, id.String())
		assert.ErrorIs(t, err, apperrors.ErrFeatureNotFound)
	})
}

func TestMapUseCase_Page(t *testing.T) {
	uc := newMapUseCase(t)

	page, err := uc.Page(context.Background(), domain.FilterFor(domain.CategoryHealthcare), mapview.StaticLinks)
	require.NoError(t, err)

	assert.Equal(t, "Jigawa State Infrastructure Map", page.Title)
	assert.Equal(t, "Healthcare", page.ActiveFilter)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 7, page.Map.Zoom)
	assert.InDelta(t, 12.0022, page.Map.CenterLat, 1e-9)
	assert.InDelta(t, 9.1605, page.Map.CenterLon, 1e-9)
	assert.Equal(t, "600px", page.Map.Height)
	assert.Equal(t, "index.html", page.Filters[0].Href)
	assert.Equal(t, "healthcare.html", page.Filters[1].Href)
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.ActiveFilter
		wantErr bool
	}{
		{input: "", want: domain.AllFilter()},
		{input: "All", want: domain.AllFilter()},
		{input: "Healthcare", want: domain.FilterFor(domain.CategoryHealthcare)},
		{input: "public_services", want: domain.FilterFor(domain.CategoryPublicServices)},
		{input: "Hospitals", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := usecase.ParseFilter(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidFilter)
				appErr, ok := apperrors.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.input, appErr.Details["filter"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBBox(t *testing.T) {
	bbox, err := usecase.ParseBBox("")
	require.NoError(t, err)
	assert.Nil(t, bbox)

	bbox, err = usecase.ParseBBox("9.0,11.9,9.3,12.1")
	require.NoError(t, err)
	require.NotNil(t, bbox)
	assert.InDelta(t, 9.0, bbox.MinLon, 1e-9)
	assert.InDelta(t, 12.1, bbox.MaxLat, 1e-9)

	_, err = usecase.ParseBBox("9.3,11.9,9.0")
	assert.ErrorIs(t, err, apperrors.ErrInvalidBBox)
}

func TestMapUseCase_Warm(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockFeatureRepository{}
	mockCache := &MockCacheRepository{}
	uc := usecase.NewMapUseCase(mockRepo, mockCache, config.Default().Map, zap.NewNop(), time.Minute)

	features := []*domain.Feature{
		domain.NewFeature(domain.CategoryUtilities, "Dutse Water Supply", "Water", 9.1605, 12.0022),
	}
	mockCache.On("Delete", ctx, "layers:Utilities").Return(nil)
	mockCache.On("Get", ctx, "layers:Utilities").Return(nil, nil)
	mockRepo.On("List", ctx, []domain.Category{domain.CategoryUtilities}).Return(features, nil)
	mockCache.On("Set", ctx, "layers:Utilities", mock.Anything, time.Minute).Return(nil)

	markers, err := uc.Warm(ctx, domain.FilterFor(domain.CategoryUtilities))
	require.NoError(t, err)
	assert.Equal(t, 1, markers)
	mockCache.AssertExpectations(t)

	t.Run("eviction failure", func(t *testing.T) {
		failing := &MockCacheRepository{}
		uc := usecase.NewMapUseCase(mockRepo, failing, config.Default().Map, zap.NewNop(), time.Minute)
		failing.On("Delete", ctx, "layers:All").Return(errors.New("redis down"))

		_, err := uc.Warm(ctx, domain.AllFilter())
		assert.Error(t, err)
	})
}
