// Package osm imports OpenStreetMap road networks as weighted sparse graphs.
// Edge weights are ground distances in meters between consecutive way nodes.
package osm

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/sirupsen/logrus"

	"gnc_sssp/pkg/geo"
	"gnc_sssp/pkg/graph"
)

// BBox restricts an import to a geographic rectangle. The zero value keeps
// everything.
type BBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// IsZero reports whether the box is unset.
func (b BBox) IsZero() bool {
	return b == BBox{}
}

// Contains reports whether the point lies inside the box, edges included.
func (b BBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Options configures Import.
type Options struct {
	// BBox drops road segments with an endpoint outside the box.
	BBox BBox
	// LargestComponent keeps only the largest weakly connected component.
	LargestComponent bool
	// Procs is the number of PBF decoding goroutines; 0 means 1.
	Procs int
	// Logger receives progress lines. nil discards them.
	Logger logrus.FieldLogger
}

// Network is an imported road graph. Node i of Graph is OSM node NodeIDs[i]
// located at Coords.Lat[i], Coords.Lon[i].
type Network struct {
	Graph   *graph.SparseGraph
	Coords  *graph.Coordinates
	NodeIDs []osm.NodeID
}

// road is a drivable way kept after the first pass.
type road struct {
	nodes          []osm.NodeID
	along, against bool
}

// Import reads an OSM PBF stream in two passes: ways first, then the
// coordinates of the nodes they reference. The reader is rewound between
// passes.
func Import(ctx context.Context, rs io.ReadSeeker, opts Options) (*Network, error) {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	procs := max(opts.Procs, 1)

	roads, referenced, err := scanRoads(ctx, rs, procs)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"roads": len(roads),
		"nodes": len(referenced),
	}).Info("road scan complete")

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind for node scan: %w", err)
	}

	positions, err := scanPositions(ctx, rs, procs, referenced)
	if err != nil {
		return nil, err
	}
	log.WithField("positions", len(positions)).Info("node scan complete")

	net := buildNetwork(roads, positions, opts.BBox, log)

	if opts.LargestComponent {
		before := net.Graph.NodeCount()
		net = net.keep(graph.LargestComponent(net.Graph))
		log.WithFields(logrus.Fields{
			"before": before,
			"after":  net.Graph.NodeCount(),
		}).Info("kept largest component")
	}

	log.WithFields(logrus.Fields{
		"nodes": net.Graph.NodeCount(),
		"edges": net.Graph.EdgeCount(),
	}).Info("road network imported")
	return net, nil
}

// scanRoads collects drivable ways and the set of node IDs they use.
func scanRoads(ctx context.Context, r io.Reader, procs int) ([]road, map[osm.NodeID]struct{}, error) {
	scanner := osmpbf.New(ctx, r, procs)
	defer scanner.Close()
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	referenced := make(map[osm.NodeID]struct{})
	var roads []road
	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok || len(w.Nodes) < 2 || !drivable(w.Tags) {
			continue
		}
		along, against := travelDirections(w.Tags)
		if !along && !against {
			continue
		}

		ids := w.Nodes.NodeIDs()
		for _, id := range ids {
			referenced[id] = struct{}{}
		}
		roads = append(roads, road{nodes: ids, along: along, against: against})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan ways: %w", err)
	}
	return roads, referenced, nil
}

type position struct {
	lat, lon float64
}

// scanPositions reads the coordinates of the wanted nodes.
func scanPositions(ctx context.Context, r io.Reader, procs int, wanted map[osm.NodeID]struct{}) (map[osm.NodeID]position, error) {
	scanner := osmpbf.New(ctx, r, procs)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	positions := make(map[osm.NodeID]position, len(wanted))
	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, ok := wanted[n.ID]; ok {
			positions[n.ID] = position{lat: n.Lat, lon: n.Lon}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan nodes: %w", err)
	}
	return positions, nil
}

// buildNetwork turns roads into a graph. Nodes are numbered by ascending OSM
// ID over the segments that survive filtering, so imports are reproducible.
func buildNetwork(roads []road, positions map[osm.NodeID]position, box BBox, log logrus.FieldLogger) *Network {
	type segment struct {
		from, to osm.NodeID
		meters   float64
		along    bool
		against  bool
	}

	var (
		segments          []segment
		missing, outOfBox int
	)
	used := make(map[osm.NodeID]struct{})
	for _, rd := range roads {
		for i := 0; i+1 < len(rd.nodes); i++ {
			from, to := rd.nodes[i], rd.nodes[i+1]
			a, okA := positions[from]
			b, okB := positions[to]
			if !okA || !okB {
				missing++
				continue
			}
			if !box.IsZero() && (!box.Contains(a.lat, a.lon) || !box.Contains(b.lat, b.lon)) {
				outOfBox++
				continue
			}
			segments = append(segments, segment{
				from:    from,
				to:      to,
				meters:  geo.Haversine(a.lat, a.lon, b.lat, b.lon),
				along:   rd.along,
				against: rd.against,
			})
			used[from] = struct{}{}
			used[to] = struct{}{}
		}
	}
	if missing > 0 {
		log.WithField("segments", missing).Warn("skipped segments with missing node coordinates")
	}
	if outOfBox > 0 {
		log.WithField("segments", outOfBox).Info("dropped segments outside bounding box")
	}

	ids := make([]osm.NodeID, 0, len(used))
	for id := range used {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	index := make(map[osm.NodeID]uint32, len(ids))
	coords := &graph.Coordinates{
		Lat: make([]float64, len(ids)),
		Lon: make([]float64, len(ids)),
	}
	for i, id := range ids {
		index[id] = uint32(i)
		coords.Lat[i] = positions[id].lat
		coords.Lon[i] = positions[id].lon
	}

	edges := make([]graph.Edge, 0, 2*len(segments))
	for _, s := range segments {
		u, v := index[s.from], index[s.to]
		if s.along {
			edges = append(edges, graph.Edge{From: u, To: v, Weight: s.meters})
		}
		if s.against {
			edges = append(edges, graph.Edge{From: v, To: u, Weight: s.meters})
		}
	}

	return &Network{
		Graph:   graph.FromEdges(uint32(len(ids)), edges),
		Coords:  coords,
		NodeIDs: ids,
	}
}

// keep restricts the network to nodes, renumbered in the given order.
func (n *Network) keep(nodes []uint32) *Network {
	ids := make([]osm.NodeID, len(nodes))
	for i, old := range nodes {
		ids[i] = n.NodeIDs[old]
	}
	return &Network{
		Graph:   graph.FilterToComponent(n.Graph, nodes),
		Coords:  n.Coords.Subset(nodes),
		NodeIDs: ids,
	}
}
