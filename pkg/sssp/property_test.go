package sssp

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gnc_sssp/pkg/graph"
)

// randomGraph builds a graph with n nodes and roughly 3n edges from seed.
// About one weight in ten is zero.
func randomGraph(seed int64, n int) *graph.SparseGraph {
	rng := rand.New(rand.NewSource(seed))
	edges := make([]graph.Edge, 0, 3*n)
	for range 3 * n {
		w := math.Round(rng.Float64()*1000) / 10
		if rng.Intn(10) == 0 {
			w = 0
		}
		edges = append(edges, graph.Edge{
			From:   uint32(rng.Intn(n)),
			To:     uint32(rng.Intn(n)),
			Weight: w,
		})
	}
	return graph.FromEdges(uint32(n), edges)
}

// reachableFrom returns the reachable set by breadth-first search.
func reachableFrom(g *graph.SparseGraph, source uint32) []bool {
	seen := make([]bool, g.NodeCount())
	seen[source] = true
	queue := []uint32{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			if v := g.Head(e); !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	return seen
}

func solveRandom(t *testing.T, seed int64, n int, preprocess bool) (*graph.SparseGraph, uint32, *Result) {
	g := randomGraph(seed, n)
	source := uint32(seed % int64(n))
	s := NewSolver(g)
	if preprocess && !s.Preprocess(context.Background()) {
		t.Fatalf("preprocess failed on generated graph")
	}
	res, err := s.Solve(context.Background(), int(source))
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	return g, source, res
}

func TestSolveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("no edge can shorten a settled distance", prop.ForAll(
		func(seed int64, n int) bool {
			g, _, res := solveRandom(t, seed, n, false)
			dist := res.Distances()
			for u := uint32(0); u < g.NodeCount(); u++ {
				if math.IsInf(dist[u], 1) {
					continue
				}
				start, end := g.EdgesFrom(u)
				for e := start; e < end; e++ {
					if dist[g.Head(e)] > dist[u]+g.Weight(e) {
						return false
					}
				}
			}
			return true
		},
		gen.Int64Range(0, math.MaxInt32), gen.IntRange(1, 80),
	))

	properties.Property("predecessor chains reach the source with matching costs", prop.ForAll(
		func(seed int64, n int) bool {
			g, source, res := solveRandom(t, seed, n, false)
			dist, pred := res.Distances(), res.Predecessors()
			if dist[source] != 0 || pred[source] != NoPredecessor {
				return false
			}
			for v := range pred {
				if math.IsInf(dist[v], 1) {
					if pred[v] != NoPredecessor {
						return false
					}
					continue
				}
				if uint32(v) == source {
					continue
				}
				// dist[v] must be achieved through some edge pred[v] -> v.
				u := uint32(pred[v])
				matched := false
				start, end := g.EdgesFrom(u)
				for e := start; e < end; e++ {
					if g.Head(e) == uint32(v) && dist[u]+g.Weight(e) == dist[v] {
						matched = true
					}
				}
				if !matched {
					return false
				}
				// The chain ends at source within n-1 steps.
				node, steps := int32(v), 0
				for node != int32(source) {
					node = pred[node]
					steps++
					if node == NoPredecessor || steps > n-1 {
						return false
					}
				}
			}
			return true
		},
		gen.Int64Range(0, math.MaxInt32), gen.IntRange(1, 80),
	))

	properties.Property("counters match the reachable set", prop.ForAll(
		func(seed int64, n int) bool {
			g, source, res := solveRandom(t, seed, n, false)
			reach := reachableFrom(g, source)
			var nodes, edges uint32
			for v, ok := range reach {
				if ok {
					nodes++
					edges += g.OutDegree(uint32(v))
				}
				if ok == math.IsInf(res.Distances()[v], 1) {
					return false
				}
			}
			return res.NodesVisited() == nodes &&
				res.EdgesRelaxed() == edges &&
				res.NodesVisited() <= g.NodeCount()
		},
		gen.Int64Range(0, math.MaxInt32), gen.IntRange(1, 80),
	))

	properties.Property("preprocessing changes only the tag", prop.ForAll(
		func(seed int64, n int) bool {
			_, _, plain := solveRandom(t, seed, n, false)
			_, _, enhanced := solveRandom(t, seed, n, true)
			if plain.AlgorithmUsed() != AlgorithmDijkstra || enhanced.AlgorithmUsed() != AlgorithmEnhanced {
				return false
			}
			for i := range plain.Distances() {
				if plain.Distances()[i] != enhanced.Distances()[i] ||
					plain.Predecessors()[i] != enhanced.Predecessors()[i] {
					return false
				}
			}
			return plain.NodesVisited() == enhanced.NodesVisited() &&
				plain.EdgesRelaxed() == enhanced.EdgesRelaxed()
		},
		gen.Int64Range(0, math.MaxInt32), gen.IntRange(1, 80),
	))

	properties.TestingRun(t)
}
