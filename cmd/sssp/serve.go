package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"gnc_sssp/pkg/api"
	"gnc_sssp/pkg/metrics"
	"gnc_sssp/pkg/sssp"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		graphPath string
		addr      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve solve and benchmark requests over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			cfg := a.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			g, coords, err := a.loadGraph(graphPath)
			if err != nil {
				return err
			}

			reg := metrics.NewRegistry()
			opts := []sssp.Option{sssp.WithLogger(a.log), sssp.WithMetrics(reg)}
			s := sssp.NewSolver(g, opts...)
			if a.cfg.Solver.Preprocess && !s.Preprocess(cmd.Context()) {
				return errors.New("graph is invalid")
			}

			engine := api.NewSolverEngine(s, nodeIndex(coords), a.cfg.Solver.Concurrency, opts...)
			handlers := api.NewHandlers(engine, a.log, cfg.MaxIterations)
			srv := api.NewServer(cfg, handlers, reg, a.log)

			a.log.WithField("elapsed", time.Since(start).Round(time.Millisecond).String()).Info("ready")
			return api.ListenAndServe(srv, a.log)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&graphPath, "graph", "g", "", "graph file (default: config graph.path, else generated)")
	flags.StringVar(&addr, "addr", "", "listen address (default: config server.addr)")
	return cmd
}
