package sssp

// minHeap is a concrete-typed binary min-heap keyed by tentative distance.
// Avoids interface boxing overhead of container/heap. Entries with equal
// distance come out in no particular order.
type minHeap struct {
	items []heapEntry
}

// heapEntry is a priority queue entry. Stale entries for already settled
// nodes stay in the heap and are skipped on pop.
type heapEntry struct {
	node uint32
	dist float64
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(node uint32, dist float64) {
	h.items = append(h.items, heapEntry{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() heapEntry {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

// less orders entries by distance ascending.
func (h *minHeap) less(i, j int) bool {
	return h.items[i].dist < h.items[j].dist
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
