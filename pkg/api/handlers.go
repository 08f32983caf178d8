package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"gnc_sssp/pkg/geo"
	"gnc_sssp/pkg/sssp"
)

const maxBodyBytes = 4096

var validate = validator.New()

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	engine        Engine
	log           logrus.FieldLogger
	maxIterations int
}

// NewHandlers creates handlers over engine. Benchmark requests above
// maxIterations are rejected.
func NewHandlers(engine Engine, log logrus.FieldLogger, maxIterations int) *Handlers {
	return &Handlers{
		engine:        engine,
		log:           log,
		maxIterations: maxIterations,
	}
}

// HandleSolve handles POST /api/v1/solve.
func (h *Handlers) HandleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if !h.decode(w, r, &req) {
		return
	}
	if (req.Source == nil) == (req.Location == nil) {
		writeError(w, http.StatusBadRequest, "invalid_request", "source")
		return
	}
	if req.NearbyRadius != nil && req.Location == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "nearby_radius_meters")
		return
	}

	var (
		source     int
		snapMeters *float64
	)
	if req.Location != nil {
		if err := validateCoord(*req.Location); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_coordinates", "location")
			return
		}
		node, dist, err := h.engine.Locate(req.Location.Lat, req.Location.Lng)
		switch {
		case errors.Is(err, geo.ErrPointTooFar):
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:          "point_too_far_from_graph",
				Field:          "location",
				DistanceMeters: dist,
			})
			return
		case err != nil:
			writeError(w, http.StatusBadRequest, "coordinates_unsupported", "location")
			return
		}
		source = int(node)
		snapMeters = &dist
	} else {
		source = *req.Source
	}

	res, err := h.engine.Solve(r.Context(), source)
	if err != nil {
		h.writeSolveError(w, err, "source")
		return
	}
	if req.Target != nil && *req.Target >= len(res.Distances()) {
		writeError(w, http.StatusBadRequest, "invalid_target", "target")
		return
	}

	resp := NewSolveResponse(res, req.Target, !req.OmitArrays)
	resp.SnapMeters = snapMeters
	if req.NearbyRadius != nil {
		nodes, err := h.engine.Nearby(req.Location.Lat, req.Location.Lng, *req.NearbyRadius)
		if err != nil {
			writeError(w, http.StatusBadRequest, "coordinates_unsupported", "location")
			return
		}
		resp.Nearby = NewNearby(res, nodes)
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleSolveBatch handles POST /api/v1/solve/batch.
func (h *Handlers) HandleSolveBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchSolveRequest
	if !h.decode(w, r, &req) {
		return
	}

	results, err := h.engine.SolveMany(r.Context(), req.Sources)
	if err != nil {
		h.writeSolveError(w, err, "sources")
		return
	}

	resp := BatchSolveResponse{Results: make([]SolveResponse, len(results))}
	for i, res := range results {
		resp.Results[i] = NewSolveResponse(res, nil, !req.OmitArrays)
	}
	writeJSON(w, http.StatusOK, resp)
}

// NewNearby pairs each node with its distance in res, ascending by node.
func NewNearby(res *sssp.Result, nodes []uint32) []NearbyJSON {
	nodes = slices.Clone(nodes)
	slices.Sort(nodes)

	out := make([]NearbyJSON, len(nodes))
	for i, node := range nodes {
		out[i] = NearbyJSON{Node: node, Distance: Distance(res.Distances()[node])}
	}
	return out
}

// NewSolveResponse converts a Result for the wire. target, if non-nil,
// must be in range.
func NewSolveResponse(res *sssp.Result, target *int, withArrays bool) SolveResponse {
	resp := SolveResponse{
		Source:       res.Source(),
		Algorithm:    string(res.AlgorithmUsed()),
		NodesVisited: res.NodesVisited(),
		EdgesRelaxed: res.EdgesRelaxed(),
		WallTimeMs:   res.WallTimeMs(),
	}
	if withArrays {
		resp.Distances = make([]Distance, len(res.Distances()))
		for i, d := range res.Distances() {
			resp.Distances[i] = Distance(d)
		}
		resp.Predecessors = res.Predecessors()
	}
	if target != nil {
		node := uint32(*target)
		resp.Target = &TargetJSON{
			Node:      node,
			Reachable: res.Reachable(node),
			Distance:  Distance(res.Distances()[node]),
			Path:      res.PathTo(node),
		}
	}
	return resp
}

// HandleBenchmark handles POST /api/v1/benchmark.
func (h *Handlers) HandleBenchmark(w http.ResponseWriter, r *http.Request) {
	var req BenchmarkRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Iterations > h.maxIterations {
		writeError(w, http.StatusBadRequest, "too_many_iterations", "iterations")
		return
	}

	report, err := h.engine.Benchmark(r.Context(), req.Source, req.Iterations)
	if err != nil {
		if errors.Is(err, sssp.ErrInvalidIterations) {
			writeError(w, http.StatusBadRequest, "invalid_request", "iterations")
			return
		}
		h.writeSolveError(w, err, "source")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Stats())
}

// decode enforces a JSON content type, parses the body into v and runs the
// struct-tag validation. It writes the error response itself.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return false
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		field := ""
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field = verrs[0].Field()
		}
		writeError(w, http.StatusBadRequest, "invalid_request", field)
		return false
	}
	return true
}

// writeSolveError maps solver errors to responses. field names the request
// field holding the source.
func (h *Handlers) writeSolveError(w http.ResponseWriter, err error, field string) {
	switch {
	case errors.Is(err, sssp.ErrInvalidSource):
		writeError(w, http.StatusBadRequest, "invalid_source", field)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
	default:
		h.log.WithError(err).Error("solve failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	writeJSON(w, status, ErrorResponse{Error: code, Field: field})
}
