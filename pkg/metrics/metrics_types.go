package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine.
//
// All Record methods are safe to call on a nil *Registry, which lets the
// solver run without metrics wiring.
type Registry struct {
	// Solver Metrics
	SolvesTotal   *prometheus.CounterVec
	SolveDuration *prometheus.HistogramVec
	NodesVisited  *prometheus.HistogramVec
	EdgesRelaxed  *prometheus.HistogramVec

	// Preprocessing Metrics
	PreprocessTotal    *prometheus.CounterVec
	PreprocessDuration prometheus.Histogram
	Clusters           prometheus.Gauge
	BoundaryNodes      prometheus.Gauge

	// Benchmark Metrics
	BenchmarkMeanMs  *prometheus.GaugeVec
	BenchmarkSpeedup prometheus.Gauge

	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initSolverMetrics()
	r.initHTTPMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
