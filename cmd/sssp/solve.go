package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gnc_sssp/pkg/api"
	"gnc_sssp/pkg/sssp"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		graphPath string
		source    int
		sources   []int
		target    int
		lat, lng  float64
		radius    float64
		full      bool
		format    string
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve shortest paths from one source",
		Long: "Solve shortest paths from --source, from each of --sources, or from\n" +
			"the node nearest to --lat/--lng on graphs imported with coordinates.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			byLocation := flags.Changed("lat") || flags.Changed("lng")
			batch := flags.Changed("sources")
			selected := 0
			for _, set := range []bool{byLocation, batch, flags.Changed("source")} {
				if set {
					selected++
				}
			}
			if selected > 1 {
				return errors.New("--source, --sources and --lat/--lng are mutually exclusive")
			}
			if flags.Changed("radius") && (!byLocation || radius <= 0) {
				return errors.New("--radius must be positive and requires --lat/--lng")
			}

			g, coords, err := a.loadGraph(graphPath)
			if err != nil {
				return err
			}

			var targetPtr *int
			if flags.Changed("target") {
				if target < 0 || target >= int(g.NodeCount()) {
					return fmt.Errorf("target %d out of range [0, %d)", target, g.NodeCount())
				}
				targetPtr = &target
			}

			s := sssp.NewSolver(g, sssp.WithLogger(a.log))
			if a.cfg.Solver.Preprocess && !s.Preprocess(cmd.Context()) {
				return errors.New("graph is invalid")
			}

			if batch {
				results, err := s.SolveMany(cmd.Context(), sources, a.cfg.Solver.Concurrency)
				if err != nil {
					return err
				}
				resps := make([]api.SolveResponse, len(results))
				for i, res := range results {
					resps[i] = api.NewSolveResponse(res, targetPtr, full)
				}
				return writeOutput(cmd.OutOrStdout(), format, resps)
			}

			var snapMeters *float64
			if byLocation {
				index := nodeIndex(coords)
				if index == nil {
					return errors.New("graph has no coordinates; use --source")
				}
				node, dist, err := index.Nearest(lat, lng)
				if err != nil {
					return fmt.Errorf("locate %.6f,%.6f: %w", lat, lng, err)
				}
				a.log.WithFields(logrus.Fields{
					"node":          node,
					"snap_distance": dist,
				}).Info("snapped location to node")
				source = int(node)
				snapMeters = &dist
			}

			res, err := s.Solve(cmd.Context(), source)
			if err != nil {
				return err
			}

			resp := api.NewSolveResponse(res, targetPtr, full)
			resp.SnapMeters = snapMeters
			if radius > 0 {
				resp.Nearby = api.NewNearby(res, nodeIndex(coords).Within(lat, lng, radius))
			}
			return writeOutput(cmd.OutOrStdout(), format, resp)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&graphPath, "graph", "g", "", "graph file (default: config graph.path, else generated)")
	flags.IntVarP(&source, "source", "s", 0, "source node")
	flags.IntSliceVar(&sources, "sources", nil, "solve from each of these nodes (uses solver.concurrency)")
	flags.IntVarP(&target, "target", "t", 0, "report the path to this node")
	flags.Float64Var(&lat, "lat", 0, "source latitude")
	flags.Float64Var(&lng, "lng", 0, "source longitude")
	flags.Float64Var(&radius, "radius", 0, "with --lat/--lng, list nodes within this many meters and their distances")
	flags.BoolVar(&full, "full", false, "include per-node distances and predecessors")
	flags.StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}
