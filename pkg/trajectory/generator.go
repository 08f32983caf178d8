// Package trajectory builds synthetic state-space graphs for spacecraft
// trajectory planning and hosts the transfer-orbit helpers that go with them.
package trajectory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"gnc_sssp/pkg/graph"
)

const (
	// MaxNodes bounds PositionResolution * VelocityResolution * TimeSteps.
	MaxNodes = 50_000_000

	// edgesPerNodeCap limits the generated edge count to edgesPerNodeCap * n.
	edgesPerNodeCap = 6

	smallManeuverCost = 10.0
	largeManeuverCost = 50.0
)

// ErrTooManyNodes is returned when the state space exceeds MaxNodes.
var ErrTooManyNodes = errors.New("trajectory: state space too large")

var validate = validator.New()

// Params describes the discretized state space. MaxThrust and
// SpecificImpulse are carried for callers but do not affect the generated
// maneuvers.
type Params struct {
	PositionResolution int     `json:"positionResolution" yaml:"position_resolution" validate:"required,min=1"`
	VelocityResolution int     `json:"velocityResolution" yaml:"velocity_resolution" validate:"required,min=1"`
	TimeSteps          int     `json:"timeSteps" yaml:"time_steps" validate:"required,min=1"`
	MaxThrust          float64 `json:"maxThrust" yaml:"max_thrust" validate:"gte=0"`
	SpecificImpulse    float64 `json:"specificImpulse" yaml:"specific_impulse" validate:"gte=0"`
}

// NodeCount returns PositionResolution * VelocityResolution * TimeSteps.
func (p Params) NodeCount() int {
	return p.PositionResolution * p.VelocityResolution * p.TimeSteps
}

// Validate checks the struct tags and the node limit.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return formatValidationError(err)
	}
	// Checked factor by factor so the product cannot overflow.
	n := 1
	for _, f := range []int{p.PositionResolution, p.VelocityResolution, p.TimeSteps} {
		if f > MaxNodes/n {
			return fmt.Errorf("%w: limit is %d nodes", ErrTooManyNodes, MaxNodes)
		}
		n *= f
	}
	return nil
}

// Build generates the trajectory graph. Every node u gets a small maneuver
// to (u+1) mod n costing 10 and a large maneuver to
// (u+PositionResolution) mod n costing 50, with at most 6n edges in total.
// The result always passes graph validation.
func Build(p Params) (*graph.SparseGraph, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := uint32(p.NodeCount())
	pos := uint32(p.PositionResolution)
	edgeCap := uint64(n) * edgesPerNodeCap

	offsets := make([]uint32, n+1)
	destinations := make([]uint32, 0, 2*int(n))
	weights := make([]float64, 0, 2*int(n))

	for u := uint32(0); u < n; u++ {
		offsets[u] = uint32(len(destinations))
		for _, m := range maneuvers(u, pos, n) {
			if uint64(len(destinations)) >= edgeCap {
				break
			}
			destinations = append(destinations, m.To)
			weights = append(weights, m.Weight)
		}
	}
	offsets[n] = uint32(len(destinations))

	return graph.New(n, offsets, destinations, weights), nil
}

// maneuvers lists the reachable neighbor states of node u.
func maneuvers(u, pos, n uint32) [2]graph.Edge {
	return [2]graph.Edge{
		{From: u, To: uint32((uint64(u) + 1) % uint64(n)), Weight: smallManeuverCost},
		{From: u, To: uint32((uint64(u) + uint64(pos)) % uint64(n)), Weight: largeManeuverCost},
	}
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed on '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("trajectory: invalid params: %s", strings.Join(msgs, "; "))
}
