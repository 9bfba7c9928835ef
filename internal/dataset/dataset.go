// Package dataset loads the fixed set of infrastructure features shown on the
// map. Features are stored as one GeoJSON FeatureCollection per category,
// named after the category slug (healthcare.geojson, public_services.geojson...).
package dataset

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/infrastructure-map/internal/domain"
	"github.com/infrastructure-map/internal/pkg/validator"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

//go:embed data/*.geojson
var embedded embed.FS

// Source names reported in statistics
const (
	SourceEmbedded = "embedded"
	SourceDir      = "dir"
	SourcePostgres = "postgres"
)

var (
	ErrDuplicateName = errors.New("duplicate feature name")
	ErrNotAPoint     = errors.New("geometry is not a point")
)

// Dataset is an immutable category -> features collection
type Dataset struct {
	byCategory map[domain.Category][]*domain.Feature
	byID       map[uuid.UUID]*domain.Feature
	source     string
	loadedAt   time.Time
}

// Embedded returns the filesystem holding the compiled-in dataset
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadEmbedded loads the compiled-in dataset
func LoadEmbedded() (*Dataset, error) {
	return Load(Embedded(), SourceEmbedded)
}

// Load reads <slug>.geojson for every category from fsys
func Load(fsys fs.FS, source string) (*Dataset, error) {
	var features []*domain.Feature

	for _, category := range domain.Categories() {
		name := category.Slug() + ".geojson"
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		parsed, err := Decode(category, data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		features = append(features, parsed...)
	}

	return New(features, source)
}

// Decode converts a GeoJSON FeatureCollection into features of one category
func Decode(category domain.Category, data []byte) ([]*domain.Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	features := make([]*domain.Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("feature %d: %w", i, ErrNotAPoint)
		}

		name, _ := f.Properties["name"].(string)
		description, _ := f.Properties["description"].(string)

		features = append(features, domain.NewFeature(category, name, description, pt.Lon(), pt.Lat()))
	}
	return features, nil
}

// New validates features and builds a dataset from them.
// Input order is kept within each category.
func New(features []*domain.Feature, source string) (*Dataset, error) {
	ds := &Dataset{
		byCategory: make(map[domain.Category][]*domain.Feature, len(domain.Categories())),
		byID:       make(map[uuid.UUID]*domain.Feature, len(features)),
		source:     source,
		loadedAt:   time.Now().UTC(),
	}

	names := make(map[string]domain.Category, len(features))
	for _, f := range features {
		if err := validator.Validate(f); err != nil {
			return nil, fmt.Errorf("invalid feature %q: %w", f.Name, err)
		}
		if owner, exists := names[f.Name]; exists {
			return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateName, f.Name, owner, f.Category)
		}
		names[f.Name] = f.Category

		ds.byCategory[f.Category] = append(ds.byCategory[f.Category], f)
		ds.byID[f.ID] = f
	}

	return ds, nil
}

// Features returns the features of one category
func (d *Dataset) Features(category domain.Category) []*domain.Feature {
	return d.byCategory[category]
}

// All returns every feature, categories in display order
func (d *Dataset) All() []*domain.Feature {
	all := make([]*domain.Feature, 0, len(d.byID))
	for _, c := range domain.Categories() {
		all = append(all, d.byCategory[c]...)
	}
	return all
}

func (d *Dataset) ByID(id uuid.UUID) (*domain.Feature, bool) {
	f, ok := d.byID[id]
	return f, ok
}

func (d *Dataset) Count() int {
	return len(d.byID)
}

func (d *Dataset) CountByCategory() map[domain.Category]int {
	counts := make(map[domain.Category]int, len(domain.Categories()))
	for _, c := range domain.Categories() {
		counts[c] = len(d.byCategory[c])
	}
	return counts
}

func (d *Dataset) Source() string { return d.source }

func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }
