package dataset

import (
	"github.com/infrastructure-map/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection encodes features as a GeoJSON FeatureCollection.
// Properties carry the popup content and the layer color.
func FeatureCollection(features []*domain.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		gf := geojson.NewFeature(orb.Point{f.Lon, f.Lat})
		gf.ID = f.ID.String()
		gf.Properties["id"] = f.ID.String()
		gf.Properties["name"] = f.Name
		gf.Properties["description"] = f.Description
		gf.Properties["category"] = string(f.Category)
		gf.Properties["color"] = f.Category.Color()
		fc.Append(gf)
	}
	return fc
}

// CategoryCollection encodes the features of one category in the on-disk
// dataset format (name and description only)
func CategoryCollection(features []*domain.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		gf := geojson.NewFeature(orb.Point{f.Lon, f.Lat})
		gf.Properties["name"] = f.Name
		gf.Properties["description"] = f.Description
		fc.Append(gf)
	}
	return fc
}
