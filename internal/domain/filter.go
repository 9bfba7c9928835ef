package domain

import (
	"errors"
	"strings"
)

// FilterAll - sentinel value of the filter that shows every category
const FilterAll = "All"

// ErrUnknownFilter is returned by ParseFilter for values outside the option set
var ErrUnknownFilter = errors.New("unknown filter")

// ActiveFilter is either "All" or exactly one category.
// The zero value is "All".
type ActiveFilter struct {
	category Category
}

// AllFilter returns the "All" filter
func AllFilter() ActiveFilter {
	return ActiveFilter{}
}

// FilterFor returns the filter restricted to a single category
func FilterFor(c Category) ActiveFilter {
	return ActiveFilter{category: c}
}

// ParseFilter converts user input into an ActiveFilter.
// Empty input means "All".
func ParseFilter(s string) (ActiveFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, FilterAll) {
		return AllFilter(), nil
	}

	c, err := ParseCategory(s)
	if err != nil {
		return ActiveFilter{}, ErrUnknownFilter
	}
	return FilterFor(c), nil
}

// FilterOptions returns every selectable filter: "All" followed by each category
func FilterOptions() []ActiveFilter {
	categories := Categories()
	options := make([]ActiveFilter, 0, len(categories)+1)
	options = append(options, AllFilter())
	for _, c := range categories {
		options = append(options, FilterFor(c))
	}
	return options
}

func (f ActiveFilter) IsAll() bool {
	return f.category == ""
}

// Category returns the selected category, empty for "All"
func (f ActiveFilter) Category() Category {
	return f.category
}

// String returns the value used in URLs: "All" or the category code
func (f ActiveFilter) String() string {
	if f.IsAll() {
		return FilterAll
	}
	return string(f.category)
}

// Label returns the button caption
func (f ActiveFilter) Label() string {
	if f.IsAll() {
		return FilterAll
	}
	return f.category.Label()
}

// ButtonClass returns the bootstrap class of the filter button
func (f ActiveFilter) ButtonClass() string {
	if f.IsAll() {
		return "btn-primary"
	}
	return f.category.Style().ButtonClass
}

// ShouldShow reports whether features of the category are visible under the filter
func ShouldShow(category Category, filter ActiveFilter) bool {
	return filter.IsAll() || filter.Category() == category
}
