package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var countBuckets = []float64{1, 10, 100, 1000, 10000, 100000, 1000000}

func (r *Registry) initSolverMetrics() {
	r.SolvesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sssp_solves_total",
			Help: "Total number of single-source solves",
		},
		[]string{"algorithm", "status"},
	)

	r.SolveDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sssp_solve_duration_seconds",
			Help:    "Solve wall time in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"algorithm"},
	)

	r.NodesVisited = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sssp_nodes_visited",
			Help:    "Nodes settled per solve",
			Buckets: countBuckets,
		},
		[]string{"algorithm"},
	)

	r.EdgesRelaxed = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sssp_edges_relaxed",
			Help:    "Edge relaxation attempts per solve",
			Buckets: countBuckets,
		},
		[]string{"algorithm"},
	)

	r.PreprocessTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sssp_preprocess_total",
			Help: "Total number of preprocess calls",
		},
		[]string{"status"},
	)

	r.PreprocessDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sssp_preprocess_duration_seconds",
			Help:    "Preprocess wall time in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
	)

	r.Clusters = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sssp_decomposition_clusters",
			Help: "Number of clusters in the latest decomposition",
		},
	)

	r.BoundaryNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sssp_decomposition_boundary_nodes",
			Help: "Number of boundary nodes in the latest decomposition",
		},
	)

	r.BenchmarkMeanMs = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sssp_benchmark_mean_milliseconds",
			Help: "Mean solve time of the latest benchmark run",
		},
		[]string{"algorithm"},
	)

	r.BenchmarkSpeedup = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sssp_benchmark_speedup_factor",
			Help: "Baseline mean divided by preprocessed mean of the latest benchmark run",
		},
	)
}
