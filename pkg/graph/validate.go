package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Structural violations reported by Check.
var (
	ErrOffsetsLength       = errors.New("graph: offsets length must be node count + 1")
	ErrEdgeArrays          = errors.New("graph: weights length must match destinations length")
	ErrNonMonotonicOffsets = errors.New("graph: offsets are not monotonic")
	ErrOffsetsTotal        = errors.New("graph: last offset must equal edge count")
	ErrDestinationRange    = errors.New("graph: destination out of range")
	ErrInvalidWeight       = errors.New("graph: weight is negative or not finite")
	ErrTooManyNodes        = errors.New("graph: node count exceeds MaxNodeCount")
)

// MaxNodeCount is the largest node count a valid graph may have. Solver
// predecessors are int32 with -1 as the sentinel.
const MaxNodeCount = math.MaxInt32

// Check returns the first structural violation found, or nil.
// Checks run in a fixed order and stop at the first failure.
func (g *SparseGraph) Check() error {
	n := g.numNodes
	if n > MaxNodeCount {
		return fmt.Errorf("%w: %d", ErrTooManyNodes, n)
	}
	if uint64(len(g.offsets)) != uint64(n)+1 {
		return fmt.Errorf("%w: got %d, want %d", ErrOffsetsLength, len(g.offsets), uint64(n)+1)
	}
	if len(g.weights) != len(g.destinations) {
		return fmt.Errorf("%w: %d weights, %d destinations", ErrEdgeArrays, len(g.weights), len(g.destinations))
	}
	for i := uint32(0); i < n; i++ {
		if g.offsets[i] > g.offsets[i+1] {
			return fmt.Errorf("%w at node %d: %d > %d", ErrNonMonotonicOffsets, i, g.offsets[i], g.offsets[i+1])
		}
	}
	if g.offsets[n] != g.EdgeCount() {
		return fmt.Errorf("%w: offsets[%d]=%d, edge count %d", ErrOffsetsTotal, n, g.offsets[n], g.EdgeCount())
	}
	for e, dest := range g.destinations {
		if dest >= n {
			return fmt.Errorf("%w: edge %d -> %d, node count %d", ErrDestinationRange, e, dest, n)
		}
	}
	for e, w := range g.weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: edge %d weight %v", ErrInvalidWeight, e, w)
		}
	}
	return nil
}

// Validate runs Check and reports the outcome through log.
// It returns true only if every invariant holds. The graph is not modified.
func (g *SparseGraph) Validate(log logrus.FieldLogger) bool {
	if err := g.Check(); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"nodes": g.numNodes,
			"edges": g.EdgeCount(),
		}).Warn("graph validation failed")
		return false
	}
	log.WithFields(logrus.Fields{
		"nodes": g.numNodes,
		"edges": g.EdgeCount(),
	}).Debug("graph validation passed")
	return true
}
