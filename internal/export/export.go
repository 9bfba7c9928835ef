// Package export writes the map page and the feature data to files, producing
// a static site that can be served without the HTTP service.
package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/infrastructure-map/internal/domain"
	"github.com/infrastructure-map/internal/mapview"
	"github.com/infrastructure-map/internal/pkg/errors"
	"github.com/infrastructure-map/internal/pkg/validator"
	"github.com/infrastructure-map/internal/usecase"
	"github.com/infrastructure-map/internal/usecase/dto"
	"go.uber.org/zap"
)

// Exporter - выгрузка карты и данных в файлы
type Exporter struct {
	mapUC    *usecase.MapUseCase
	renderer *mapview.Renderer
	logger   *zap.Logger
}

func NewExporter(mapUC *usecase.MapUseCase, renderer *mapview.Renderer, logger *zap.Logger) *Exporter {
	return &Exporter{
		mapUC:    mapUC,
		renderer: renderer,
		logger:   logger,
	}
}

// WriteHTML renders the page for the filter
func (e *Exporter) WriteHTML(ctx context.Context, w io.Writer, filter domain.ActiveFilter, link mapview.LinkFunc) error {
	page, err := e.mapUC.Page(ctx, filter, link)
	if err != nil {
		return err
	}
	return e.renderer.Render(w, page)
}

// HTMLFile writes a single page. Filter buttons point at sibling files.
func (e *Exporter) HTMLFile(ctx context.Context, req dto.ExportRequest) error {
	filter, err := parseRequest(req)
	if err != nil {
		return err
	}

	return writeFile(req.Out, func(w io.Writer) error {
		return e.WriteHTML(ctx, w, filter, mapview.StaticLinks)
	})
}

// Site writes one page per filter option into dir and returns the written paths
func (e *Exporter) Site(ctx context.Context, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var written []string
	for _, filter := range domain.FilterOptions() {
		path := filepath.Join(dir, mapview.FileName(filter))
		err := writeFile(path, func(w io.Writer) error {
			return e.WriteHTML(ctx, w, filter, mapview.StaticLinks)
		})
		if err != nil {
			return written, err
		}

		e.logger.Debug("Page written", zap.String("filter", filter.String()), zap.String("path", path))
		written = append(written, path)
	}
	return written, nil
}

// WriteGeoJSON writes the visible features as a FeatureCollection
func (e *Exporter) WriteGeoJSON(ctx context.Context, w io.Writer, filter domain.ActiveFilter) error {
	fc, err := e.mapUC.FeatureCollection(ctx, filter, nil)
	if err != nil {
		return err
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode feature collection: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// GeoJSONFile writes the visible features to req.Out
func (e *Exporter) GeoJSONFile(ctx context.Context, req dto.ExportRequest) error {
	filter, err := parseRequest(req)
	if err != nil {
		return err
	}

	return writeFile(req.Out, func(w io.Writer) error {
		return e.WriteGeoJSON(ctx, w, filter)
	})
}

func parseRequest(req dto.ExportRequest) (domain.ActiveFilter, error) {
	if err := validator.Validate(&req); err != nil {
		return domain.ActiveFilter{}, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	return usecase.ParseFilter(req.Filter)
}

// writeFile writes through a temp file so a failed render never leaves a partial page
func writeFile(path string, fn func(w io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	bw := bufio.NewWriter(tmp)
	if err := fn(bw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}
