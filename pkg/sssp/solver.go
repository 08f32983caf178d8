// Package sssp solves single-source shortest paths over a graph.SparseGraph.
//
// A Solver starts Unprocessed. Preprocess validates the graph and builds a
// Decomposition, moving the solver to Preprocessed. Solve works in either
// state and always runs the same Dijkstra relaxation; the state only decides
// the Algorithm tag on the Result. The decomposition is an extension point
// and does not change distances, predecessors or counters.
//
// Solve may run concurrently with other Solve calls on the same Solver.
// Preprocess replaces the decomposition and must not overlap active solves.
package sssp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"gnc_sssp/pkg/graph"
	"gnc_sssp/pkg/metrics"
)

// solverState is either unprocessed or preprocessed.
type solverState interface {
	isSolverState()
}

type unprocessed struct{}

type preprocessed struct {
	decomp *Decomposition
}

func (unprocessed) isSolverState()  {}
func (preprocessed) isSolverState() {}

// Solver runs shortest-path queries over one graph.
type Solver struct {
	graph   *graph.SparseGraph
	log     logrus.FieldLogger
	clock   Clock
	metrics *metrics.Registry
	tracer  trace.Tracer

	mu    sync.RWMutex
	state solverState
}

// NewSolver creates an Unprocessed solver over g. The graph is not validated
// here; solving an invalid graph without a successful Preprocess (or an
// explicit g.Validate) has undefined behavior.
func NewSolver(g *graph.SparseGraph, opts ...Option) *Solver {
	s := &Solver{
		graph:  g,
		log:    discardLogger(),
		clock:  systemClock{},
		tracer: tracer,
		state:  unprocessed{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Graph returns the solver's graph.
func (s *Solver) Graph() *graph.SparseGraph { return s.graph }

// Preprocess validates the graph and, if it is valid, builds a fresh
// Decomposition and moves the solver to the Preprocessed state. It returns
// false and leaves the state unchanged when validation fails. Calling it again
// rebuilds an identical decomposition.
func (s *Solver) Preprocess(ctx context.Context) bool {
	_, span := s.tracer.Start(ctx, "Solver.Preprocess",
		trace.WithAttributes(
			attribute.Int64("node_count", int64(s.graph.NodeCount())),
			attribute.Int64("edge_count", int64(s.graph.EdgeCount())),
		),
	)
	defer span.End()

	start := s.clock.Now()
	s.log.Debug("starting graph preprocessing")

	if !s.graph.Validate(s.log) {
		span.AddEvent("validation_failed")
		span.SetStatus(codes.Error, "graph validation failed")
		s.metrics.RecordPreprocess(false, 0, 0, 0)
		s.log.Warn("graph validation failed during preprocessing")
		return false
	}

	decomp := BuildDecomposition(s.graph)
	stats := decomp.Stats()
	elapsed := s.clock.Now().Sub(start)

	s.mu.Lock()
	s.state = preprocessed{decomp: decomp}
	s.mu.Unlock()

	span.AddEvent("decomposition_built", trace.WithAttributes(
		attribute.Int("clusters", stats.Clusters),
		attribute.Int("boundary_nodes", stats.BoundaryNodes),
	))
	s.metrics.RecordPreprocess(true, elapsed, stats.Clusters, stats.BoundaryNodes)
	s.log.WithFields(logrus.Fields{
		"clusters":       stats.Clusters,
		"boundary_nodes": stats.BoundaryNodes,
		"capacity":       stats.Capacity,
		"elapsed_ms":     durationMs(elapsed),
	}).Info("preprocessing completed")

	return true
}

// Preprocessed reports whether the last Preprocess succeeded.
func (s *Solver) Preprocessed() bool {
	_, ok := s.Decomposition()
	return ok
}

// Decomposition returns the decomposition built by Preprocess, if any.
func (s *Solver) Decomposition() (*Decomposition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.state.(preprocessed); ok {
		return st.decomp, true
	}
	return nil, false
}

// BuildHopSets is reserved for hop-set construction, which does not exist yet.
func (s *Solver) BuildHopSets() error {
	return ErrHopSetsNotImplemented
}

// Solve computes shortest paths from source. It returns *InvalidSourceError
// when source is outside [0, NodeCount). The result is tagged
// AlgorithmEnhanced on a preprocessed solver and AlgorithmDijkstra otherwise;
// both compute identical distances and predecessors.
//
// ctx only carries the trace span. Solve runs to completion.
func (s *Solver) Solve(ctx context.Context, source int) (*Result, error) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	_, span := s.tracer.Start(ctx, "Solver.Solve",
		trace.WithAttributes(attribute.Int("source", source)),
	)
	defer span.End()

	n := s.graph.NodeCount()
	if source < 0 || uint64(source) >= uint64(n) {
		err := &InvalidSourceError{Source: source, NodeCount: n}
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid source")
		s.metrics.RecordSolve(string(algorithmFor(state)), metrics.StatusError, 0, 0, 0)
		return nil, err
	}

	start := s.clock.Now()

	var res *Result
	switch st := state.(type) {
	case preprocessed:
		res = s.solveEnhanced(st.decomp, uint32(source))
	case unprocessed:
		res = s.solveDijkstra(uint32(source))
	default:
		panic(fmt.Sprintf("sssp: unknown solver state %T", state))
	}

	elapsed := s.clock.Now().Sub(start)
	res.wallTimeMs = durationMs(elapsed)

	span.SetAttributes(
		attribute.String("algorithm", string(res.algorithmUsed)),
		attribute.Int64("nodes_visited", int64(res.nodesVisited)),
		attribute.Int64("edges_relaxed", int64(res.edgesRelaxed)),
	)
	s.metrics.RecordSolve(string(res.algorithmUsed), metrics.StatusOK, elapsed, res.nodesVisited, res.edgesRelaxed)
	s.log.WithFields(logrus.Fields{
		"source":        source,
		"algorithm":     res.algorithmUsed,
		"nodes_visited": res.nodesVisited,
		"edges_relaxed": res.edgesRelaxed,
		"wall_time_ms":  res.wallTimeMs,
	}).Debug("sssp solved")

	return res, nil
}

// solveEnhanced is the preprocessed path. It runs plain Dijkstra; the
// decomposition is only looked up for diagnostics.
func (s *Solver) solveEnhanced(decomp *Decomposition, source uint32) *Result {
	s.log.WithField("source_cluster", decomp.ClusterAssignment[source]).Debug("using enhanced sssp")
	res := dijkstra(s.graph, source)
	res.algorithmUsed = AlgorithmEnhanced
	return res
}

func (s *Solver) solveDijkstra(source uint32) *Result {
	res := dijkstra(s.graph, source)
	res.algorithmUsed = AlgorithmDijkstra
	return res
}

// SolveMany solves from every source concurrently, running at most
// concurrency solves at once (unlimited if concurrency < 1). results[i]
// belongs to sources[i]. The first error cancels the remaining solves.
func (s *Solver) SolveMany(ctx context.Context, sources []int, concurrency int) ([]*Result, error) {
	results := make([]*Result, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, source := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.Solve(ctx, source)
			if err != nil {
				return fmt.Errorf("source %d: %w", source, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func algorithmFor(state solverState) Algorithm {
	switch state.(type) {
	case preprocessed:
		return AlgorithmEnhanced
	case unprocessed:
		return AlgorithmDijkstra
	}
	panic(fmt.Sprintf("sssp: unknown solver state %T", state))
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
