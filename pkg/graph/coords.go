package graph

import "errors"

// ErrCoordinatesLength is returned when coordinates do not cover every node.
var ErrCoordinatesLength = errors.New("graph: coordinate count does not match node count")

// Coordinates holds per-node positions in degrees for graphs imported from
// geographic data. Lat[i] and Lon[i] belong to node i.
type Coordinates struct {
	Lat []float64
	Lon []float64
}

// Len returns the number of positions, or -1 if Lat and Lon disagree.
func (c *Coordinates) Len() int {
	if len(c.Lat) != len(c.Lon) {
		return -1
	}
	return len(c.Lat)
}

// Subset returns the positions of nodes, in that order. It pairs with
// FilterToComponent.
func (c *Coordinates) Subset(nodes []uint32) *Coordinates {
	out := &Coordinates{
		Lat: make([]float64, len(nodes)),
		Lon: make([]float64, len(nodes)),
	}
	for i, old := range nodes {
		out.Lat[i] = c.Lat[old]
		out.Lon[i] = c.Lon[old]
	}
	return out
}
