package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	searchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time spent evaluating a search query",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	searchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results_total",
			Help:      "Number of items matching a search before pagination",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		},
	)

	catalogItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_items",
			Help:      "Number of items in the current catalog snapshot",
		},
	)

	catalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog reload attempts",
		},
		[]string{"result"}, // "success" / "error"
	)
)

func init() {
	prometheus.MustRegister(searchDuration)
	prometheus.MustRegister(searchResults)
	prometheus.MustRegister(catalogItems)
	prometheus.MustRegister(catalogReloadsTotal)
}

// ObserveSearch records one evaluated search.
func ObserveSearch(total int, elapsed time.Duration) {
	searchDuration.Observe(elapsed.Seconds())
	searchResults.Observe(float64(total))
}

// SetCatalogItems sets the size of the snapshot being served.
func SetCatalogItems(n int) {
	catalogItems.Set(float64(n))
}

// IncReload counts a reload attempt; err nil means success.
func IncReload(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	catalogReloadsTotal.WithLabelValues(result).Inc()
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
