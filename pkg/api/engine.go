package api

import (
	"context"
	"errors"

	"gnc_sssp/pkg/geo"
	"gnc_sssp/pkg/sssp"
)

// ErrNoCoordinates is returned by Locate when the graph has no positions.
var ErrNoCoordinates = errors.New("graph has no coordinates")

// Engine is what the handlers need from the solver side.
type Engine interface {
	Solve(ctx context.Context, source int) (*sssp.Result, error)
	// SolveMany returns one result per source, in order.
	SolveMany(ctx context.Context, sources []int) ([]*sssp.Result, error)
	Benchmark(ctx context.Context, source, iterations int) (*sssp.BenchmarkReport, error)
	// Locate returns the node nearest to a position and its distance in meters.
	Locate(lat, lng float64) (uint32, float64, error)
	// Nearby returns the nodes within radius meters of a position.
	Nearby(lat, lng, radius float64) ([]uint32, error)
	Stats() StatsResponse
}

// SolverEngine serves requests from one sssp.Solver.
type SolverEngine struct {
	solver      *sssp.Solver
	index       *geo.NodeIndex
	concurrency int
	benchOpts   []sssp.Option
}

// NewSolverEngine wraps s. index may be nil for graphs without coordinates.
// concurrency bounds the solves of one batch request (0 is unlimited).
// benchOpts configure the solvers created for each benchmark request.
func NewSolverEngine(s *sssp.Solver, index *geo.NodeIndex, concurrency int, benchOpts ...sssp.Option) *SolverEngine {
	return &SolverEngine{solver: s, index: index, concurrency: concurrency, benchOpts: benchOpts}
}

// Solve runs a single query on the shared solver.
func (e *SolverEngine) Solve(ctx context.Context, source int) (*sssp.Result, error) {
	return e.solver.Solve(ctx, source)
}

// SolveMany runs a batch on the shared solver.
func (e *SolverEngine) SolveMany(ctx context.Context, sources []int) ([]*sssp.Result, error) {
	return e.solver.SolveMany(ctx, sources, e.concurrency)
}

// Benchmark runs sssp.Benchmark on the solver's graph.
func (e *SolverEngine) Benchmark(ctx context.Context, source, iterations int) (*sssp.BenchmarkReport, error) {
	return sssp.Benchmark(ctx, e.solver.Graph(), source, iterations, e.benchOpts...)
}

// Locate snaps a position to the nearest node.
func (e *SolverEngine) Locate(lat, lng float64) (uint32, float64, error) {
	if e.index == nil {
		return 0, 0, ErrNoCoordinates
	}
	return e.index.Nearest(lat, lng)
}

// Nearby lists the nodes within radius meters of a position.
func (e *SolverEngine) Nearby(lat, lng, radius float64) ([]uint32, error) {
	if e.index == nil {
		return nil, ErrNoCoordinates
	}
	return e.index.Within(lat, lng, radius), nil
}

// Stats reports the graph size and decomposition summary.
func (e *SolverEngine) Stats() StatsResponse {
	g := e.solver.Graph()
	resp := StatsResponse{
		NumNodes:       g.NodeCount(),
		NumEdges:       g.EdgeCount(),
		HasCoordinates: e.index != nil,
	}
	if d, ok := e.solver.Decomposition(); ok {
		st := d.Stats()
		resp.Preprocessed = true
		resp.Clusters = st.Clusters
		resp.BoundaryNodes = st.BoundaryNodes
	}
	return resp
}
