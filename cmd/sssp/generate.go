package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gnc_sssp/pkg/graph"
	"gnc_sssp/pkg/trajectory"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		output string
		p      trajectory.Params
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a trajectory state-space graph",
		Long: "Generate a trajectory state-space graph and write it as a binary graph file.\n" +
			"Unset flags fall back to the generator section of the config.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := a.cfg.Generator
			flags := cmd.Flags()
			if flags.Changed("position") {
				params.PositionResolution = p.PositionResolution
			}
			if flags.Changed("velocity") {
				params.VelocityResolution = p.VelocityResolution
			}
			if flags.Changed("time-steps") {
				params.TimeSteps = p.TimeSteps
			}
			if flags.Changed("max-thrust") {
				params.MaxThrust = p.MaxThrust
			}
			if flags.Changed("isp") {
				params.SpecificImpulse = p.SpecificImpulse
			}

			start := time.Now()
			g, err := trajectory.Build(params)
			if err != nil {
				return err
			}
			if err := graph.WriteBinary(output, g); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			a.log.WithFields(logrus.Fields{
				"nodes":   g.NodeCount(),
				"edges":   g.EdgeCount(),
				"output":  output,
				"elapsed": time.Since(start).Round(time.Millisecond).String(),
			}).Info("generated trajectory graph")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "trajectory.graph.bin", "output graph file (.sz suffix compresses)")
	flags.IntVar(&p.PositionResolution, "position", 0, "position resolution")
	flags.IntVar(&p.VelocityResolution, "velocity", 0, "velocity resolution")
	flags.IntVar(&p.TimeSteps, "time-steps", 0, "number of time steps")
	flags.Float64Var(&p.MaxThrust, "max-thrust", 0, "maximum thrust in newtons")
	flags.Float64Var(&p.SpecificImpulse, "isp", 0, "specific impulse in seconds")
	return cmd
}
