package dataset

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/infrastructure-map/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, 9, ds.Count())
	assert.Equal(t, SourceEmbedded, ds.Source())

	expected := map[domain.Category][]string{
		domain.CategoryHealthcare:     {"General Hospital Dutse", "Dutse Health Centre"},
		domain.CategoryEducation:      {"Dutse Model School", "Dutse Secondary School"},
		domain.CategoryTransportation: {"Dutse Bus Terminal", "Dutse Railway Station"},
		domain.CategoryUtilities:      {"Dutse Water Supply"},
		domain.CategoryPublicServices: {"Dutse Police Station", "Dutse Fire Station"},
	}
	for category, names := range expected {
		features := ds.Features(category)
		require.Len(t, features, len(names), category)
		for i, f := range features {
			assert.Equal(t, names[i], f.Name)
			assert.Equal(t, category, f.Category)
		}
	}

	counts := ds.CountByCategory()
	assert.Equal(t, 2, counts[domain.CategoryHealthcare])
	assert.Equal(t, 1, counts[domain.CategoryUtilities])
}

func TestLoadEmbedded_CoordinatesAndDescriptions(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)

	hospital := ds.Features(domain.CategoryHealthcare)[0]
	assert.Equal(t, 9.1605, hospital.Lon)
	assert.Equal(t, 12.0022, hospital.Lat)
	assert.Equal(t, "A general hospital providing healthcare services in Dutse.", hospital.Description)

	found, ok := ds.ByID(hospital.ID)
	require.True(t, ok)
	assert.Same(t, hospital, found)
}

func TestDataset_AllKeepsDisplayOrder(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)

	all := ds.All()
	require.Len(t, all, 9)
	assert.Equal(t, domain.CategoryHealthcare, all[0].Category)
	assert.Equal(t, domain.CategoryPublicServices, all[8].Category)
}

func TestLoad_Errors(t *testing.T) {
	valid := `{"type":"FeatureCollection","features":[]}`
	base := func() fstest.MapFS {
		fsys := fstest.MapFS{}
		for _, c := range domain.Categories() {
			fsys[c.Slug()+".geojson"] = &fstest.MapFile{Data: []byte(valid)}
		}
		return fsys
	}

	t.Run("missing file", func(t *testing.T) {
		fsys := base()
		delete(fsys, "utilities.geojson")

		_, err := Load(fsys, SourceDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "utilities.geojson")
	})

	t.Run("non point geometry", func(t *testing.T) {
		fsys := base()
		fsys["healthcare.geojson"] = &fstest.MapFile{Data: []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","geometry":{"type":"LineString","coordinates":[[9.1,12.0],[9.2,12.1]]},"properties":{"name":"Road"}}
		]}`)}

		_, err := Load(fsys, SourceDir)
		assert.ErrorIs(t, err, ErrNotAPoint)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		fsys := base()
		fsys["education.geojson"] = &fstest.MapFile{Data: []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","geometry":{"type":"Point","coordinates":[9.1,120.0]},"properties":{"name":"School"}}
		]}`)}

		_, err := Load(fsys, SourceDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "School")
	})

	t.Run("missing name", func(t *testing.T) {
		fsys := base()
		fsys["education.geojson"] = &fstest.MapFile{Data: []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","geometry":{"type":"Point","coordinates":[9.1,12.0]},"properties":{}}
		]}`)}

		_, err := Load(fsys, SourceDir)
		assert.Error(t, err)
	})

	t.Run("cross listed feature", func(t *testing.T) {
		point := `{"type":"FeatureCollection","features":[
			{"type":"Feature","geometry":{"type":"Point","coordinates":[9.1,12.0]},"properties":{"name":"Town Hall"}}
		]}`
		fsys := base()
		fsys["utilities.geojson"] = &fstest.MapFile{Data: []byte(point)}
		fsys["public_services.geojson"] = &fstest.MapFile{Data: []byte(point)}

		_, err := Load(fsys, SourceDir)
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("malformed json", func(t *testing.T) {
		fsys := base()
		fsys["healthcare.geojson"] = &fstest.MapFile{Data: []byte(`{"type":`)}

		_, err := Load(fsys, SourceDir)
		assert.Error(t, err)
	})
}

func TestFeatureCollection(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)

	fc := FeatureCollection(ds.Features(domain.CategoryHealthcare))
	require.Len(t, fc.Features, 2)

	data, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]string `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "FeatureCollection", decoded.Type)
	first := decoded.Features[0]
	assert.Equal(t, "Point", first.Geometry.Type)
	assert.Equal(t, []float64{9.1605, 12.0022}, first.Geometry.Coordinates)
	assert.Equal(t, "General Hospital Dutse", first.Properties["name"])
	assert.Equal(t, "red", first.Properties["color"])
	assert.Equal(t, "Healthcare", first.Properties["category"])
}

func TestCategoryCollection_RoundTrip(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)

	original := ds.Features(domain.CategoryPublicServices)
	data, err := json.Marshal(CategoryCollection(original))
	require.NoError(t, err)

	decoded, err := Decode(domain.CategoryPublicServices, data)
	require.NoError(t, err)
	require.Len(t, decoded, len(original))
	for i := range original {
		assert.Equal(t, original[i].ID, decoded[i].ID)
		assert.Equal(t, original[i].Description, decoded[i].Description)
	}
}
