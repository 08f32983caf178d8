package sssp

import "gnc_sssp/pkg/graph"

// dijkstra computes single-source shortest paths with a binary heap and lazy
// deletion: improved nodes are pushed again and stale entries are skipped
// when popped. source must be in range and g must be valid.
func dijkstra(g *graph.SparseGraph, source uint32) *Result {
	n := g.NodeCount()
	offsets := g.Offsets()
	heads := g.Destinations()
	weights := g.Weights()

	dist := make([]float64, n)
	pred := make([]int32, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = Unreachable
		pred[i] = NoPredecessor
	}
	dist[source] = 0

	var pq minHeap
	pq.Push(source, 0)

	var nodesVisited, edgesRelaxed uint32
	for pq.Len() > 0 {
		cur := pq.Pop()
		u := cur.node
		if visited[u] {
			continue
		}
		visited[u] = true
		nodesVisited++

		for e := offsets[u]; e < offsets[u+1]; e++ {
			v := heads[e]
			newDist := cur.dist + weights[e]
			edgesRelaxed++

			if newDist < dist[v] {
				dist[v] = newDist
				pred[v] = int32(u)
				if !visited[v] {
					pq.Push(v, newDist)
				}
			}
		}
	}

	return &Result{
		source:       source,
		distances:    dist,
		predecessors: pred,
		nodesVisited: nodesVisited,
		edgesRelaxed: edgesRelaxed,
	}
}
