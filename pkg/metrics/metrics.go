package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RecordSolve records a completed or rejected solve.
func (r *Registry) RecordSolve(algorithm, status string, duration time.Duration, nodesVisited, edgesRelaxed uint32) {
	if r == nil {
		return
	}
	r.SolvesTotal.WithLabelValues(algorithm, status).Inc()
	if status != StatusOK {
		return
	}
	r.SolveDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	r.NodesVisited.WithLabelValues(algorithm).Observe(float64(nodesVisited))
	r.EdgesRelaxed.WithLabelValues(algorithm).Observe(float64(edgesRelaxed))
}

// RecordPreprocess records a preprocess call. clusters and boundary are
// ignored when ok is false.
func (r *Registry) RecordPreprocess(ok bool, duration time.Duration, clusters, boundary int) {
	if r == nil {
		return
	}
	if !ok {
		r.PreprocessTotal.WithLabelValues(StatusError).Inc()
		return
	}
	r.PreprocessTotal.WithLabelValues(StatusOK).Inc()
	r.PreprocessDuration.Observe(duration.Seconds())
	r.Clusters.Set(float64(clusters))
	r.BoundaryNodes.Set(float64(boundary))
}

// RecordBenchmark records the outcome of a benchmark run.
func (r *Registry) RecordBenchmark(enhancedMs, dijkstraMs, speedup float64) {
	if r == nil {
		return
	}
	r.BenchmarkMeanMs.WithLabelValues("enhanced-sssp").Set(enhancedMs)
	r.BenchmarkMeanMs.WithLabelValues("dijkstra-optimized").Set(dijkstraMs)
	r.BenchmarkSpeedup.Set(speedup)
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
