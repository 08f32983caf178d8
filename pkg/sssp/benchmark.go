package sssp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gnc_sssp/pkg/graph"
)

// BenchmarkReport compares mean solve times of a preprocessed and an
// unpreprocessed solver over the same graph and source.
//
// Both solvers run the same relaxation, so SpeedupFactor is expected to stay
// close to 1.
type BenchmarkReport struct {
	RunID          string  `json:"runId" yaml:"run_id"`
	EnhancedTimeMs float64 `json:"enhancedTimeMs" yaml:"enhanced_time_ms"`
	DijkstraTimeMs float64 `json:"dijkstraTimeMs" yaml:"dijkstra_time_ms"`
	SpeedupFactor  float64 `json:"speedupFactor" yaml:"speedup_factor"`
	Iterations     int     `json:"iterations" yaml:"iterations"`
	Preprocessed   bool    `json:"preprocessed" yaml:"preprocessed"`
}

// Benchmark preprocesses one solver and times iterations solves from source,
// then times the same number of solves on a second solver that is never
// preprocessed. Options apply to both solvers.
//
// A failed preprocess is logged and the run continues, in which case both
// means measure the Dijkstra tag. SpeedupFactor is baseline mean over
// preprocessed mean, or 1 when the preprocessed mean is zero.
//
// ctx is checked before every solve; once it is done the run stops and
// returns ctx.Err(). A solve already started runs to completion.
func Benchmark(ctx context.Context, g *graph.SparseGraph, source, iterations int, opts ...Option) (*BenchmarkReport, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIterations, iterations)
	}
	if source < 0 || uint64(source) >= uint64(g.NodeCount()) {
		return nil, &InvalidSourceError{Source: source, NodeCount: g.NodeCount()}
	}

	enhanced := NewSolver(g, opts...)
	report := &BenchmarkReport{
		RunID:      uuid.NewString(),
		Iterations: iterations,
	}

	ctx, span := enhanced.tracer.Start(ctx, "Benchmark",
		trace.WithAttributes(
			attribute.String("run_id", report.RunID),
			attribute.Int("source", source),
			attribute.Int("iterations", iterations),
		),
	)
	defer span.End()

	log := enhanced.log.WithField("run_id", report.RunID)
	log.WithField("iterations", iterations).Info("running performance benchmark")

	report.Preprocessed = enhanced.Preprocess(ctx)
	if !report.Preprocessed {
		log.Warn("preprocess failed, timing both solvers without a decomposition")
	}

	var err error
	if report.EnhancedTimeMs, err = meanSolveMs(ctx, enhanced, source, iterations); err != nil {
		return nil, benchmarkAborted(span, log, err)
	}

	baseline := NewSolver(g, opts...)
	if report.DijkstraTimeMs, err = meanSolveMs(ctx, baseline, source, iterations); err != nil {
		return nil, benchmarkAborted(span, log, err)
	}

	report.SpeedupFactor = 1
	if report.EnhancedTimeMs > 0 {
		report.SpeedupFactor = report.DijkstraTimeMs / report.EnhancedTimeMs
	}

	span.SetAttributes(attribute.Float64("speedup_factor", report.SpeedupFactor))
	enhanced.metrics.RecordBenchmark(report.EnhancedTimeMs, report.DijkstraTimeMs, report.SpeedupFactor)
	log.WithFields(logrus.Fields{
		"enhanced_ms": report.EnhancedTimeMs,
		"dijkstra_ms": report.DijkstraTimeMs,
		"speedup":     report.SpeedupFactor,
	}).Info("benchmark results")

	return report, nil
}

// meanSolveMs returns the mean wall time of iterations solves in milliseconds.
func meanSolveMs(ctx context.Context, s *Solver, source, iterations int) (float64, error) {
	start := s.clock.Now()
	for range iterations {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := s.Solve(ctx, source); err != nil {
			return 0, err
		}
	}
	return durationMs(s.clock.Now().Sub(start)) / float64(iterations), nil
}

func benchmarkAborted(span trace.Span, log logrus.FieldLogger, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "benchmark aborted")
	log.WithError(err).Warn("benchmark aborted")
	return err
}
