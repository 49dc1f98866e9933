package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shelf_web_requests_total",
		Help: "Total number of HTTP requests to the web adapter",
	}, []string{"method", "path", "status"})

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shelf_web_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	PanelRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shelf_panel_renders_total",
		Help: "Results panel renders by selected view",
	}, []string{"view"})

	CatalogSearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shelf_catalog_search_duration_seconds",
		Help:    "Duration of catalog backend searches in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "outcome"})

	WishlistTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shelf_wishlist_toggles_total",
		Help: "Wishlist toggles by operation and outcome",
	}, []string{"op", "outcome"})

	ImportedBooksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shelf_importer_documents_total",
		Help: "Documents seen by the importer by status",
	}, []string{"status"})
)
