package dto

import "github.com/infrastructure-map/internal/domain"

// CategoryInfo - категория с цветом слоя и количеством объектов
type CategoryInfo struct {
	Code        string `json:"code"`
	Slug        string `json:"slug"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	ButtonClass string `json:"button_class"`
	Count       int    `json:"count"`
}

// FilterOption - кнопка фильтра
type FilterOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	ButtonClass string `json:"button_class"`
	Href        string `json:"href,omitempty"`
	Active      bool   `json:"active"`
}

// Marker - маркер объекта; name и description показываются во всплывающем окне
type Marker struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Layer - слой одной категории
type Layer struct {
	Category string   `json:"category"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
	Checked  bool     `json:"checked"`
	Markers  []Marker `json:"markers"`
}

// LayersResponse - видимые слои для активного фильтра
type LayersResponse struct {
	Filter string              `json:"filter"`
	BBox   *domain.BoundingBox `json:"bbox,omitempty"`
	Layers []Layer             `json:"layers"`
	Total  int                 `json:"total"`
}

// FeatureResponse - один объект инфраструктуры
type FeatureResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Label       string  `json:"label"`
	Color       string  `json:"color"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// NewMarker converts a feature into its marker representation
func NewMarker(f *domain.Feature) Marker {
	return Marker{
		ID:          f.ID.String(),
		Name:        f.Name,
		Description: f.Description,
		Lat:         f.Lat,
		Lon:         f.Lon,
	}
}

// NewFeatureResponse converts a feature into the API representation
func NewFeatureResponse(f *domain.Feature) *FeatureResponse {
	return &FeatureResponse{
		ID:          f.ID.String(),
		Name:        f.Name,
		Description: f.Description,
		Category:    string(f.Category),
		Label:       f.Category.Label(),
		Color:       f.Category.Color(),
		Lat:         f.Lat,
		Lon:         f.Lon,
	}
}
