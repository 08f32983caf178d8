package sssp

import "math"

// Algorithm tags the routine that produced a Result.
type Algorithm string

const (
	// AlgorithmDijkstra is reported by a solver that has not been preprocessed.
	AlgorithmDijkstra Algorithm = "dijkstra-optimized"
	// AlgorithmEnhanced is reported by a preprocessed solver.
	AlgorithmEnhanced Algorithm = "enhanced-sssp"
)

// NoPredecessor marks the source and unreachable nodes in Predecessors.
const NoPredecessor int32 = -1

// Unreachable is the distance of a node that cannot be reached from the source.
var Unreachable = math.Inf(1)

// Result is the output of a single solve. It is freshly allocated per call
// and owned by the caller.
type Result struct {
	source        uint32
	distances     []float64
	predecessors  []int32
	nodesVisited  uint32
	edgesRelaxed  uint32
	wallTimeMs    float64
	algorithmUsed Algorithm
}

// Source returns the node the solve started from.
func (r *Result) Source() uint32 { return r.source }

// Distances returns the shortest-path cost of every node; Unreachable (+Inf)
// for nodes the source cannot reach. The slice must not be modified.
func (r *Result) Distances() []float64 { return r.distances }

// Predecessors returns the previous node on a shortest path, or NoPredecessor.
// The slice must not be modified.
func (r *Result) Predecessors() []int32 { return r.predecessors }

// NodesVisited is the number of nodes settled.
func (r *Result) NodesVisited() uint32 { return r.nodesVisited }

// EdgesRelaxed counts relaxation attempts, improving or not.
func (r *Result) EdgesRelaxed() uint32 { return r.edgesRelaxed }

// WallTimeMs is the measured solve time in milliseconds.
func (r *Result) WallTimeMs() float64 { return r.wallTimeMs }

// AlgorithmUsed reports which solver variant produced the result.
func (r *Result) AlgorithmUsed() Algorithm { return r.algorithmUsed }

// Reachable reports whether target has a finite distance.
func (r *Result) Reachable(target uint32) bool {
	return int(target) < len(r.distances) && !math.IsInf(r.distances[target], 1)
}

// PathTo returns the node sequence source → … → target, or nil if target is
// unreachable or out of range.
func (r *Result) PathTo(target uint32) []uint32 {
	if !r.Reachable(target) {
		return nil
	}

	var path []uint32
	for node := int32(target); node != NoPredecessor; node = r.predecessors[node] {
		path = append(path, uint32(node))
		if len(path) > len(r.predecessors) {
			return nil // predecessor cycle, graph was not validated
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
