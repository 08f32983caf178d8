package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gnc_sssp/pkg/config"
	"gnc_sssp/pkg/geo"
	"gnc_sssp/pkg/graph"
	"gnc_sssp/pkg/trajectory"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	trace      bool

	cfg           *config.Config
	log           *logrus.Logger
	shutdownTrace func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "sssp",
		Short:        "Single-source shortest paths over sparse trajectory and road graphs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.shutdownTrace == nil {
				return nil
			}
			return a.shutdownTrace(context.WithoutCancel(cmd.Context()))
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&a.trace, "trace", false, "print trace spans to stderr")

	root.AddCommand(
		newGenerateCmd(a),
		newImportOSMCmd(a),
		newValidateCmd(a),
		newSolveCmd(a),
		newBenchCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	a.log = a.cfg.Log.NewLogger()
	a.log.SetOutput(cmd.ErrOrStderr())
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}

	shutdown, err := setupTracing(a.trace, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.shutdownTrace = shutdown
	return nil
}

// loadGraph reads the graph at path, or generates one from the generator
// config when path is empty. coords is nil unless the file carries them.
func (a *app) loadGraph(path string) (*graph.SparseGraph, *graph.Coordinates, error) {
	if path == "" {
		path = a.cfg.Graph.Path
	}
	if path == "" {
		p := a.cfg.Generator
		a.log.WithFields(logrus.Fields{
			"position_resolution": p.PositionResolution,
			"velocity_resolution": p.VelocityResolution,
			"time_steps":          p.TimeSteps,
		}).Info("no graph file given, generating trajectory graph")
		g, err := trajectory.Build(p)
		return g, nil, err
	}

	a.log.WithField("path", path).Info("loading graph")
	g, coords, err := graph.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	a.log.WithFields(logrus.Fields{
		"nodes":       g.NodeCount(),
		"edges":       g.EdgeCount(),
		"coordinates": coords != nil,
	}).Info("graph loaded")
	return g, coords, nil
}

func nodeIndex(coords *graph.Coordinates) *geo.NodeIndex {
	if coords == nil {
		return nil
	}
	return geo.NewNodeIndex(coords.Lat, coords.Lon)
}
