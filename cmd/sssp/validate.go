package main

import (
	"errors"

	"github.com/spf13/cobra"

	"gnc_sssp/pkg/sssp"
)

// validateReport is printed by the validate command.
type validateReport struct {
	Nodes          uint32 `json:"nodes" yaml:"nodes"`
	Edges          uint32 `json:"edges" yaml:"edges"`
	Valid          bool   `json:"valid" yaml:"valid"`
	HasCoordinates bool   `json:"hasCoordinates" yaml:"has_coordinates"`
	ClusterSize    int    `json:"clusterSize" yaml:"cluster_size"`
	Clusters       int    `json:"clusters" yaml:"clusters"`
	BoundaryNodes  int    `json:"boundaryNodes" yaml:"boundary_nodes"`
}

func newValidateCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate [graph-file]",
		Short: "Check a graph and report its decomposition",
		Long: "Check a graph file (or the configured generator graph) and report the\n" +
			"cluster decomposition preprocessing would build.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			g, coords, err := a.loadGraph(path)
			if err != nil {
				return err
			}

			report := validateReport{
				Nodes:          g.NodeCount(),
				Edges:          g.EdgeCount(),
				HasCoordinates: coords != nil,
			}
			s := sssp.NewSolver(g, sssp.WithLogger(a.log))
			if s.Preprocess(cmd.Context()) {
				d, _ := s.Decomposition()
				st := d.Stats()
				report.Valid = true
				report.ClusterSize = st.Capacity
				report.Clusters = st.Clusters
				report.BoundaryNodes = st.BoundaryNodes
			}

			if err := writeOutput(cmd.OutOrStdout(), format, report); err != nil {
				return err
			}
			if !report.Valid {
				return errors.New("graph is invalid")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}
