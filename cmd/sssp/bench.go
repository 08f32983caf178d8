package main

import (
	"github.com/spf13/cobra"

	"gnc_sssp/pkg/sssp"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		graphPath  string
		source     int
		iterations int
		format     string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare preprocessed and plain solve times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("source") {
				source = a.cfg.Benchmark.Source
			}
			if !flags.Changed("iterations") {
				iterations = a.cfg.Benchmark.Iterations
			}

			g, _, err := a.loadGraph(graphPath)
			if err != nil {
				return err
			}

			report, err := sssp.Benchmark(cmd.Context(), g, source, iterations, sssp.WithLogger(a.log))
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, report)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&graphPath, "graph", "g", "", "graph file (default: config graph.path, else generated)")
	flags.IntVarP(&source, "source", "s", 0, "source node (default: config benchmark.source)")
	flags.IntVarP(&iterations, "iterations", "n", 0, "solves per solver (default: config benchmark.iterations)")
	flags.StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}
