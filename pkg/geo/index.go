package geo

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"
)

// MaxSnapDistMeters is the farthest a query point may be from its nearest
// node.
const MaxSnapDistMeters = 500.0

var (
	// ErrPointTooFar is returned when no node lies within MaxSnapDistMeters.
	ErrPointTooFar = errors.New("geo: point too far from any node")
	// ErrEmptyIndex is returned by queries on an index without nodes.
	ErrEmptyIndex = errors.New("geo: index has no nodes")
)

// NodeIndex maps coordinates to graph nodes with an R-tree over the node
// positions. Positions are stored in a plane scaled by the cosine of the
// mean latitude so that nearest-neighbor order follows ground distance.
type NodeIndex struct {
	tr     rtree.RTreeG[uint32]
	lat    []float64
	lon    []float64
	cosLat float64
}

// NewNodeIndex indexes node i at (lat[i], lon[i]). lat and lon must have the
// same length.
func NewNodeIndex(lat, lon []float64) *NodeIndex {
	ix := &NodeIndex{lat: lat, lon: lon, cosLat: 1}
	if len(lat) == 0 {
		return ix
	}

	var sum float64
	for _, v := range lat {
		sum += v
	}
	ix.cosLat = math.Cos(sum / float64(len(lat)) * degToRad)

	for i := range lat {
		p := ix.project(lat[i], lon[i])
		ix.tr.Insert(p, p, uint32(i))
	}
	return ix
}

// Len returns the number of indexed nodes.
func (ix *NodeIndex) Len() int { return ix.tr.Len() }

func (ix *NodeIndex) project(lat, lon float64) [2]float64 {
	return [2]float64{lon * ix.cosLat, lat}
}

// Nearest returns the node closest to (lat, lon) and its Haversine distance
// in meters.
func (ix *NodeIndex) Nearest(lat, lon float64) (uint32, float64, error) {
	if ix.tr.Len() == 0 {
		return 0, 0, ErrEmptyIndex
	}

	target := ix.project(lat, lon)
	var (
		best  uint32
		found bool
	)
	ix.tr.Nearby(
		func(min, max [2]float64, _ uint32, _ bool) float64 {
			return boxDistSq(target, min, max)
		},
		func(_, _ [2]float64, node uint32, _ float64) bool {
			best = node
			found = true
			return false
		},
	)
	if !found {
		return 0, 0, ErrEmptyIndex
	}

	dist := Haversine(lat, lon, ix.lat[best], ix.lon[best])
	if dist > MaxSnapDistMeters {
		return 0, dist, ErrPointTooFar
	}
	return best, dist, nil
}

// Within returns every node whose equirectangular distance to (lat, lon) is
// at most radius meters, in no particular order.
func (ix *NodeIndex) Within(lat, lon, radius float64) []uint32 {
	// Degrees of latitude covered by radius; longitude is pre-scaled.
	d := radius / (degToRad * earthRadiusMeters)
	c := ix.project(lat, lon)

	var nodes []uint32
	ix.tr.Search(
		[2]float64{c[0] - d, c[1] - d},
		[2]float64{c[0] + d, c[1] + d},
		func(_, _ [2]float64, node uint32) bool {
			if EquirectangularDist(lat, lon, ix.lat[node], ix.lon[node]) <= radius {
				nodes = append(nodes, node)
			}
			return true
		},
	)
	return nodes
}

// boxDistSq is the squared distance from p to the rectangle [min, max].
func boxDistSq(p, min, max [2]float64) float64 {
	var d float64
	for i := range 2 {
		switch {
		case p[i] < min[i]:
			d += (min[i] - p[i]) * (min[i] - p[i])
		case p[i] > max[i]:
			d += (p[i] - max[i]) * (p[i] - max[i])
		}
	}
	return d
}
