package sssp

import (
	"math"

	"gnc_sssp/pkg/graph"
)

// minClusterCapacity is the smallest cluster size used by BuildDecomposition.
const minClusterCapacity = 32

// Cluster is one part of a Decomposition.
type Cluster struct {
	ID            uint32
	Nodes         []uint32 // ascending
	BoundaryNodes []uint32 // ascending subset of Nodes
}

// Decomposition partitions the nodes of a graph into clusters and records
// which nodes sit on a cross-cluster edge.
//
// It is built by Solver.Preprocess and read-only afterwards. Solve does not
// consult it yet; it is the hook for a multi-level solver that would contract
// boundary nodes, solve between clusters and stitch intra-cluster paths.
type Decomposition struct {
	Clusters          []Cluster
	ClusterAssignment []uint32 // node → cluster ID
}

// DecompositionStats summarizes a Decomposition.
type DecompositionStats struct {
	Clusters      int
	BoundaryNodes int
	Capacity      int
}

// ClusterCapacity returns max(32, floor(sqrt(n))).
func ClusterCapacity(n uint32) int {
	return max(minClusterCapacity, int(math.Sqrt(float64(n))))
}

// BuildDecomposition partitions g by node index: nodes are taken in ascending
// order and a cluster is closed once it reaches ClusterCapacity nodes, so
// only the last cluster may be smaller. Connectivity is not considered.
// The graph must be valid.
func BuildDecomposition(g *graph.SparseGraph) *Decomposition {
	n := g.NodeCount()
	capacity := ClusterCapacity(n)

	assignment := make([]uint32, n)
	clusters := make([]Cluster, 0, (int(n)+capacity-1)/capacity)

	current := Cluster{ID: 0}
	for node := uint32(0); node < n; node++ {
		current.Nodes = append(current.Nodes, node)
		assignment[node] = current.ID

		if len(current.Nodes) >= capacity {
			clusters = append(clusters, current)
			current = Cluster{ID: current.ID + 1}
		}
	}
	if len(current.Nodes) > 0 {
		clusters = append(clusters, current)
	}

	markBoundaryNodes(g, clusters, assignment)

	return &Decomposition{
		Clusters:          clusters,
		ClusterAssignment: assignment,
	}
}

// markBoundaryNodes fills BoundaryNodes. Every outgoing edge is scanned and
// both endpoints of a cross-cluster edge are marked, so a node that is only
// the target of such an edge is a boundary node too.
func markBoundaryNodes(g *graph.SparseGraph, clusters []Cluster, assignment []uint32) {
	boundary := make([]bool, g.NodeCount())

	for u := uint32(0); u < g.NodeCount(); u++ {
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.Head(e)
			if assignment[v] != assignment[u] {
				boundary[u] = true
				boundary[v] = true
			}
		}
	}

	for i := range clusters {
		for _, node := range clusters[i].Nodes {
			if boundary[node] {
				clusters[i].BoundaryNodes = append(clusters[i].BoundaryNodes, node)
			}
		}
	}
}

// ClusterOf returns the cluster containing node.
func (d *Decomposition) ClusterOf(node uint32) *Cluster {
	return &d.Clusters[d.ClusterAssignment[node]]
}

// IsBoundary reports whether node has an edge to or from another cluster.
func (d *Decomposition) IsBoundary(node uint32) bool {
	for _, b := range d.ClusterOf(node).BoundaryNodes {
		if b == node {
			return true
		}
		if b > node {
			break
		}
	}
	return false
}

// Stats summarizes the decomposition.
func (d *Decomposition) Stats() DecompositionStats {
	s := DecompositionStats{
		Clusters: len(d.Clusters),
		Capacity: ClusterCapacity(uint32(len(d.ClusterAssignment))),
	}
	for _, c := range d.Clusters {
		s.BoundaryNodes += len(c.BoundaryNodes)
	}
	return s
}
