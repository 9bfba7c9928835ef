package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inframap_http_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"route", "status"})
	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inframap_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	RenderedMarkersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inframap_rendered_markers_total",
		Help: "Total number of markers returned, by active filter",
	}, []string{"filter"})
	LayersCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inframap_layers_cache_hits_total",
		Help: "Total layer cache hits",
	})
	LayersCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inframap_layers_cache_misses_total",
		Help: "Total layer cache misses",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDurationMs)
	prometheus.MustRegister(RenderedMarkersTotal)
	prometheus.MustRegister(LayersCacheHitsTotal)
	prometheus.MustRegister(LayersCacheMissesTotal)
}

// Handler exposes the registered metrics for scraping
func Handler() http.Handler { return promhttp.Handler() }
