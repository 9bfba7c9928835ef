package domain

import (
	"github.com/google/uuid"
)

// featureNamespace is the namespace of deterministic feature IDs
var featureNamespace = uuid.MustParse("6f1d0f7e-5a0b-4c52-9a53-2f1f0c6b7d11")

// Feature - точка инфраструктуры на карте
type Feature struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Category    Category  `json:"category" db:"category" validate:"infra_category"`
	Name        string    `json:"name" db:"name" validate:"required,max=200"`
	Description string    `json:"description" db:"description" validate:"max=2000"`
	Lon         float64   `json:"lon" db:"lon" validate:"min=-180,max=180"`
	Lat         float64   `json:"lat" db:"lat" validate:"min=-90,max=90"`
}

// NewFeature creates a feature with an ID derived from its category and name
func NewFeature(category Category, name, description string, lon, lat float64) *Feature {
	return &Feature{
		ID:          FeatureID(category, name),
		Category:    category,
		Name:        name,
		Description: description,
		Lon:         lon,
		Lat:         lat,
	}
}

// FeatureID returns the stable identifier of a feature
func FeatureID(category Category, name string) uuid.UUID {
	return uuid.NewSHA1(featureNamespace, []byte(category.Slug()+"/"+name))
}

func (f *Feature) Point() Point {
	return Point{Lat: f.Lat, Lon: f.Lon}
}
