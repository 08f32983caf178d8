package api

import (
	"encoding/json"
	"math"
)

// SolveRequest is the JSON body for POST /api/v1/solve. Exactly one of
// Source and Location must be set.
type SolveRequest struct {
	Source   *int        `json:"source,omitempty" validate:"omitempty,gte=0"`
	Location *LatLngJSON `json:"location,omitempty"`
	Target   *int        `json:"target,omitempty" validate:"omitempty,gte=0"`
	// NearbyRadius lists the nodes within this many meters of Location
	// together with their distances. Requires Location.
	NearbyRadius *float64 `json:"nearby_radius_meters,omitempty" validate:"omitempty,gt=0,lte=10000"`
	// OmitArrays drops the per-node distance and predecessor arrays.
	OmitArrays bool `json:"omit_arrays"`
}

// BatchSolveRequest is the JSON body for POST /api/v1/solve/batch.
type BatchSolveRequest struct {
	Sources    []int `json:"sources" validate:"required,min=1,max=64,dive,gte=0"`
	OmitArrays bool  `json:"omit_arrays"`
}

// BatchSolveResponse holds one response per requested source, in order.
type BatchSolveResponse struct {
	Results []SolveResponse `json:"results"`
}

// LatLngJSON represents a lat/lng pair in JSON.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance marshals +Inf as null, since JSON has no infinity.
type Distance float64

// MarshalJSON implements json.Marshaler.
func (d Distance) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(d), 0) || math.IsNaN(float64(d)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(d))
}

// UnmarshalJSON reads null back as +Inf.
func (d *Distance) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Distance(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*d = Distance(f)
	return nil
}

// SolveResponse is the JSON response for a successful solve.
type SolveResponse struct {
	Source       uint32       `json:"source" yaml:"source"`
	Algorithm    string       `json:"algorithm" yaml:"algorithm"`
	NodesVisited uint32       `json:"nodes_visited" yaml:"nodes_visited"`
	EdgesRelaxed uint32       `json:"edges_relaxed" yaml:"edges_relaxed"`
	WallTimeMs   float64      `json:"wall_time_ms" yaml:"wall_time_ms"`
	Distances    []Distance   `json:"distances,omitempty" yaml:"distances,omitempty,flow"`
	Predecessors []int32      `json:"predecessors,omitempty" yaml:"predecessors,omitempty,flow"`
	SnapMeters   *float64     `json:"snap_distance_meters,omitempty" yaml:"snap_distance_meters,omitempty"`
	Target       *TargetJSON  `json:"target,omitempty" yaml:"target,omitempty"`
	Nearby       []NearbyJSON `json:"nearby,omitempty" yaml:"nearby,omitempty"`
}

// NearbyJSON is a node close to the query location and its distance from
// the source.
type NearbyJSON struct {
	Node     uint32   `json:"node" yaml:"node"`
	Distance Distance `json:"distance" yaml:"distance"`
}

// TargetJSON describes the shortest path to the requested target.
type TargetJSON struct {
	Node      uint32   `json:"node" yaml:"node"`
	Reachable bool     `json:"reachable" yaml:"reachable"`
	Distance  Distance `json:"distance" yaml:"distance"`
	Path      []uint32 `json:"path" yaml:"path,flow"`
}

// BenchmarkRequest is the JSON body for POST /api/v1/benchmark.
type BenchmarkRequest struct {
	Source     int `json:"source" validate:"gte=0"`
	Iterations int `json:"iterations" validate:"required,min=1"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error          string  `json:"error"`
	Field          string  `json:"field,omitempty"`
	DistanceMeters float64 `json:"distance_meters,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumNodes       uint32 `json:"num_nodes"`
	NumEdges       uint32 `json:"num_edges"`
	Preprocessed   bool   `json:"preprocessed"`
	Clusters       int    `json:"clusters"`
	BoundaryNodes  int    `json:"boundary_nodes"`
	HasCoordinates bool   `json:"has_coordinates"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
