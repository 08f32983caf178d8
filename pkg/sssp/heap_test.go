package sssp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeap(t *testing.T) {
	var h minHeap

	h.Push(1, 30)
	h.Push(2, 10)
	h.Push(3, 20)

	item := h.Pop()
	assert.Equal(t, heapEntry{node: 2, dist: 10}, item)

	item = h.Pop()
	assert.Equal(t, heapEntry{node: 3, dist: 20}, item)

	item = h.Pop()
	assert.Equal(t, heapEntry{node: 1, dist: 30}, item)

	assert.Equal(t, 0, h.Len())
}

func TestMinHeapKeepsDuplicates(t *testing.T) {
	var h minHeap

	// The same node pushed twice, as after an improving relaxation.
	h.Push(7, 9.5)
	h.Push(7, 2.25)
	h.Push(4, 5)

	require.Equal(t, 3, h.Len())
	assert.Equal(t, heapEntry{node: 7, dist: 2.25}, h.Pop())
	assert.Equal(t, heapEntry{node: 4, dist: 5}, h.Pop())
	assert.Equal(t, heapEntry{node: 7, dist: 9.5}, h.Pop())
}

func TestMinHeapOrdersManyEntries(t *testing.T) {
	var h minHeap
	dists := []float64{8, 3, 3, 0, 12.5, 7, 1, 1, 99, 4}
	for i, d := range dists {
		h.Push(uint32(i), d)
	}

	prev := -1.0
	for h.Len() > 0 {
		item := h.Pop()
		assert.GreaterOrEqual(t, item.dist, prev)
		prev = item.dist
	}
}
