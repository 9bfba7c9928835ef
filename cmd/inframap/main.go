package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/infrastructure-map/internal/bootstrap"
	"github.com/infrastructure-map/internal/config"
	"github.com/infrastructure-map/internal/dataset"
	"github.com/infrastructure-map/internal/export"
	"github.com/infrastructure-map/internal/mapview"
	"github.com/infrastructure-map/internal/pkg/logger"
	"github.com/infrastructure-map/internal/repository/cache"
	"github.com/infrastructure-map/internal/repository/memory"
	"github.com/infrastructure-map/internal/repository/postgres"
	"github.com/infrastructure-map/internal/usecase"
	"github.com/infrastructure-map/internal/usecase/dto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	filterFlag string
	htmlOut    string
	geojsonOut string
	dirFlag    string
	allFlag    bool
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "inframap",
	Short:         "Jigawa State infrastructure map tools",
	Long:          `Export the infrastructure map as static HTML or GeoJSON and manage the feature dataset.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the map or its data to files",
}

var exportHTMLCmd = &cobra.Command{
	Use:   "html",
	Short: "Render the map page to a static HTML file",
	Long:  `Render the map page for one filter, or with --all write one page per filter into --dir.`,
	RunE:  runExportHTML,
}

var exportGeoJSONCmd = &cobra.Command{
	Use:   "geojson",
	Short: "Write the visible features as a GeoJSON FeatureCollection",
	RunE:  runExportGeoJSON,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with their colors and feature counts",
	RunE:  runCategories,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the embedded dataset into PostgreSQL",
	Long:  `Create the features table if needed and upsert every embedded feature, so DATASET_SOURCE=postgres serves the same map.`,
	RunE:  runSeed,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall command timeout")

	exportHTMLCmd.Flags().StringVarP(&filterFlag, "filter", "f", "All", "Active filter")
	exportHTMLCmd.Flags().StringVarP(&htmlOut, "out", "o", "index.html", "Output file")
	exportHTMLCmd.Flags().BoolVar(&allFlag, "all", false, "Write one page per filter")
	exportHTMLCmd.Flags().StringVarP(&dirFlag, "dir", "d", "site", "Output directory for --all")

	exportGeoJSONCmd.Flags().StringVarP(&filterFlag, "filter", "f", "All", "Active filter")
	exportGeoJSONCmd.Flags().StringVarP(&geojsonOut, "out", "o", "features.geojson", "Output file")

	exportCmd.AddCommand(exportHTMLCmd, exportGeoJSONCmd)
	rootCmd.AddCommand(exportCmd, categoriesCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what every subcommand needs
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	ds    *dataset.Dataset
	mapUC *usecase.MapUseCase
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	ds, err := bootstrap.LoadDataset(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	mapUC := usecase.NewMapUseCase(
		memory.NewFeatureRepository(ds, log),
		cache.NewNoopCacheRepository(),
		cfg.Map,
		log,
		cfg.Cache.LayersCacheTTL,
	)

	return &app{cfg: cfg, log: log, ds: ds, mapUC: mapUC}, nil
}

func (a *app) exporter() (*export.Exporter, error) {
	renderer, err := mapview.NewRenderer()
	if err != nil {
		return nil, err
	}
	return export.NewExporter(a.mapUC, renderer, a.log), nil
}

func runExportHTML(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	e, err := a.exporter()
	if err != nil {
		return err
	}

	if allFlag {
		written, err := e.Site(ctx, dirFlag)
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	}

	if err := e.HTMLFile(ctx, dto.ExportRequest{Filter: filterFlag, Out: htmlOut}); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), htmlOut)
	return nil
}

func runExportGeoJSON(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	e, err := a.exporter()
	if err != nil {
		return err
	}

	if err := e.GeoJSONFile(ctx, dto.ExportRequest{Filter: filterFlag, Out: geojsonOut}); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), geojsonOut)
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	categories, err := a.mapUC.Categories(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tLABEL\tCOLOR\tCOUNT")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.Code, c.Label, c.Color, c.Count)
	}
	return w.Flush()
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ds, err := dataset.LoadEmbedded()
	if err != nil {
		return err
	}

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	store := postgres.NewFeatureStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	count, err := store.Seed(ctx, ds)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d features\n", count)
	return nil
}
