// Package mapview renders the map page. Each visible category becomes one
// Leaflet overlay; the same markers are listed inside <noscript>.
package mapview

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/infrastructure-map/internal/domain"
	"github.com/infrastructure-map/internal/usecase/dto"
)

//go:embed templates/*.html
var templatesFS embed.FS

// MapSettings - параметры базовой карты
type MapSettings struct {
	CenterLat       float64
	CenterLon       float64
	Zoom            int
	Height          string
	TileURL         string
	TileAttribution string
}

// PageData - данные для шаблона страницы карты
type PageData struct {
	Title        string
	Intro        string
	ActiveFilter string
	Filters      []dto.FilterOption
	Map          MapSettings
	Layers       []dto.Layer
	Total        int
}

// LinkFunc builds the href of a filter button
type LinkFunc func(f domain.ActiveFilter) string

// ServerLinks points filter buttons at the map page of the running service
func ServerLinks(f domain.ActiveFilter) string {
	if f.IsAll() {
		return "/"
	}
	return "/?filter=" + url.QueryEscape(f.String())
}

// StaticLinks points filter buttons at sibling files written by the exporter
func StaticLinks(f domain.ActiveFilter) string {
	return FileName(f)
}

// FileName returns the file the exporter writes for a filter
func FileName(f domain.ActiveFilter) string {
	if f.IsAll() {
		return "index.html"
	}
	return f.Category().Slug() + ".html"
}

// Renderer - рендеринг страницы карты из встроенных шаблонов
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse map templates: %w", err)
	}

	return &Renderer{
		templates: tmpl,
	}, nil
}

// Render writes the complete HTML page
func (r *Renderer) Render(w io.Writer, data *PageData) error {
	return r.templates.ExecuteTemplate(w, "base.html", data)
}
