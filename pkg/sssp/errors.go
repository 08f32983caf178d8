package sssp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSource matches any *InvalidSourceError via errors.Is.
	ErrInvalidSource = errors.New("sssp: invalid source node")

	// ErrInvalidIterations is returned by Benchmark when iterations < 1.
	ErrInvalidIterations = errors.New("sssp: iterations must be at least 1")

	// ErrHopSetsNotImplemented is returned by Solver.BuildHopSets.
	ErrHopSetsNotImplemented = errors.New("sssp: hop sets are not implemented")
)

// InvalidSourceError reports a source index outside [0, NodeCount).
type InvalidSourceError struct {
	Source    int
	NodeCount uint32
}

func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("sssp: invalid source node: %d (node count %d)", e.Source, e.NodeCount)
}

// Is reports whether target is ErrInvalidSource.
func (e *InvalidSourceError) Is(target error) bool {
	return target == ErrInvalidSource
}
