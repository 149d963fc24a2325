package metrics

import "github.com/prometheus/client_golang/prometheus"

// CatalogMetrics holds Prometheus metrics for catalog queries served over HTTP.
type CatalogMetrics struct {
	Queries     *prometheus.CounterVec
	ResultSizes *prometheus.HistogramVec
}

// NewCatalogMetrics creates and registers catalog query metrics on the given registry.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	m := &CatalogMetrics{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "queries_total",
			Help:      "Total number of catalog queries, by kind and result.",
		}, []string{"kind", "result"}),
		ResultSizes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "query_result_size",
			Help:      "Number of suppliers returned per catalog query.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 150, 250, 500},
		}, []string{"kind"}),
	}

	reg.MustRegister(m.Queries, m.ResultSizes)
	return m
}

// Observe records one query of the given kind returning n results.
func (m *CatalogMetrics) Observe(kind string, n int) {
	if m == nil {
		return
	}
	result := "hit"
	if n == 0 {
		result = "empty"
	}
	m.Queries.WithLabelValues(kind, result).Inc()
	m.ResultSizes.WithLabelValues(kind).Observe(float64(n))
}
