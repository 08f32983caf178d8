// Package graph holds the compact directed graph the solver runs on.
package graph

// SparseGraph is a directed weighted graph in CSR (Compressed Sparse Row) format.
//
// The outgoing edges of node u are destinations[offsets[u]:offsets[u+1]] with
// the parallel weights. The graph owns its three arrays and is never mutated
// after construction, so it may be read from several goroutines at once.
//
// Construction does not validate. Call Validate (directly or through
// sssp.Solver.Preprocess) before solving: a malformed graph handed to the
// solver has undefined behavior and may index out of range. Graphs with more
// than MaxNodeCount nodes fail validation.
type SparseGraph struct {
	numNodes     uint32
	offsets      []uint32  // len: numNodes + 1
	destinations []uint32  // len: EdgeCount
	weights      []float64 // len: EdgeCount
}

// New wraps pre-built CSR arrays. The graph takes ownership of the slices;
// callers must not modify them afterwards.
func New(nodeCount uint32, offsets, destinations []uint32, weights []float64) *SparseGraph {
	return &SparseGraph{
		numNodes:     nodeCount,
		offsets:      offsets,
		destinations: destinations,
		weights:      weights,
	}
}

// NodeCount returns the number of nodes.
func (g *SparseGraph) NodeCount() uint32 { return g.numNodes }

// EdgeCount returns the number of edges, i.e. len(destinations).
func (g *SparseGraph) EdgeCount() uint32 { return uint32(len(g.destinations)) }

// EdgesFrom returns the range of edge indices for edges originating from node u.
func (g *SparseGraph) EdgesFrom(u uint32) (start, end uint32) {
	return g.offsets[u], g.offsets[u+1]
}

// OutDegree returns the number of outgoing edges of u.
func (g *SparseGraph) OutDegree(u uint32) uint32 {
	return g.offsets[u+1] - g.offsets[u]
}

// Head returns the target node of edge e.
func (g *SparseGraph) Head(e uint32) uint32 { return g.destinations[e] }

// Weight returns the weight of edge e.
func (g *SparseGraph) Weight(e uint32) float64 { return g.weights[e] }

// Offsets returns the raw offsets array (len NodeCount+1). The slice is
// shared and must be treated as read-only.
func (g *SparseGraph) Offsets() []uint32 { return g.offsets }

// Destinations returns the raw edge head array. Read-only.
func (g *SparseGraph) Destinations() []uint32 { return g.destinations }

// Weights returns the raw edge weight array, parallel to Destinations. Read-only.
func (g *SparseGraph) Weights() []float64 { return g.weights }
