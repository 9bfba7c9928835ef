package domain

import (
	"errors"
	"strings"
)

// Category - тип инфраструктуры, к которому относится объект на карте
type Category string

// Infrastructure category constants
const (
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryTransportation Category = "Transportation"
	CategoryUtilities      Category = "Utilities"
	CategoryPublicServices Category = "PublicServices"
)

// ErrUnknownCategory is returned when a string does not name a category
var ErrUnknownCategory = errors.New("unknown category")

// CategoryStyle describes how a category is presented on the map page
type CategoryStyle struct {
	Slug        string
	Label       string
	Color       string
	ButtonClass string
}

var categoryStyles = map[Category]CategoryStyle{
	CategoryHealthcare:     {Slug: "healthcare", Label: "Healthcare", Color: "red", ButtonClass: "btn-danger"},
	CategoryEducation:      {Slug: "education", Label: "Education", Color: "blue", ButtonClass: "btn-info"},
	CategoryTransportation: {Slug: "transportation", Label: "Transportation", Color: "orange", ButtonClass: "btn-warning"},
	CategoryUtilities:      {Slug: "utilities", Label: "Utilities", Color: "green", ButtonClass: "btn-success"},
	CategoryPublicServices: {Slug: "public_services", Label: "Public Services", Color: "purple", ButtonClass: "btn-secondary"},
}

// Categories returns the closed set of categories in display order
func Categories() []Category {
	return []Category{
		CategoryHealthcare,
		CategoryEducation,
		CategoryTransportation,
		CategoryUtilities,
		CategoryPublicServices,
	}
}

// IsValid checks if category belongs to the closed set
func (c Category) IsValid() bool {
	_, ok := categoryStyles[c]
	return ok
}

// Style returns presentation attributes of the category
func (c Category) Style() CategoryStyle {
	return categoryStyles[c]
}

func (c Category) Slug() string  { return categoryStyles[c].Slug }
func (c Category) Label() string { return categoryStyles[c].Label }
func (c Category) Color() string { return categoryStyles[c].Color }

func (c Category) String() string { return string(c) }

// ParseCategory accepts a category code, slug or label, case-insensitive.
// Spaces and underscores are ignored, so "public services", "public_services"
// and "PublicServices" all resolve to CategoryPublicServices.
func ParseCategory(s string) (Category, error) {
	key := normalizeName(s)
	if key == "" {
		return "", ErrUnknownCategory
	}
	for _, c := range Categories() {
		if key == normalizeName(string(c)) || key == normalizeName(c.Slug()) || key == normalizeName(c.Label()) {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "_", "")
}
