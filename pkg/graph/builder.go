package graph

// Edge is a directed weighted edge used to build a SparseGraph.
type Edge struct {
	From   uint32
	To     uint32
	Weight float64
}

// FromEdges builds a CSR SparseGraph with nodeCount nodes from an edge list.
// Edges keep their input order within each source node. Edges whose From is
// not below nodeCount are dropped; To is copied as-is and is only checked by
// Validate.
func FromEdges(nodeCount uint32, edges []Edge) *SparseGraph {
	offsets := make([]uint32, nodeCount+1)

	// Count edges per source node.
	var numEdges uint32
	for _, e := range edges {
		if e.From >= nodeCount {
			continue
		}
		offsets[e.From+1]++
		numEdges++
	}
	// Prefix sum.
	for i := uint32(1); i <= nodeCount; i++ {
		offsets[i] += offsets[i-1]
	}

	// Place edges into CSR order.
	destinations := make([]uint32, numEdges)
	weights := make([]float64, numEdges)
	pos := make([]uint32, nodeCount)
	copy(pos, offsets[:nodeCount])
	for _, e := range edges {
		if e.From >= nodeCount {
			continue
		}
		idx := pos[e.From]
		destinations[idx] = e.To
		weights[idx] = e.Weight
		pos[e.From]++
	}

	return New(nodeCount, offsets, destinations, weights)
}
