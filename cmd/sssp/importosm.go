package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gnc_sssp/pkg/graph"
	"gnc_sssp/pkg/osm"
)

func newImportOSMCmd(a *app) *cobra.Command {
	var (
		output        string
		bbox          string
		allComponents bool
		procs         int
	)

	cmd := &cobra.Command{
		Use:   "import-osm <file.osm.pbf>",
		Short: "Import an OSM road network as a graph with coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := osm.Options{
				LargestComponent: !allComponents,
				Procs:            procs,
				Logger:           a.log,
			}
			if bbox != "" {
				box, err := parseBBox(bbox)
				if err != nil {
					return err
				}
				opts.BBox = box
			}

			start := time.Now()
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			net, err := osm.Import(cmd.Context(), f, opts)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			if err := graph.WriteFile(output, net.Graph, net.Coords); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			info, err := os.Stat(output)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"output":  output,
				"size_mb": fmt.Sprintf("%.1f", float64(info.Size())/(1024*1024)),
				"elapsed": time.Since(start).Round(time.Second).String(),
			}).Info("import complete")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "roads.graph.bin.sz", "output graph file (.sz suffix compresses)")
	flags.StringVar(&bbox, "bbox", "", "bounding box filter: minLat,minLng,maxLat,maxLng")
	flags.BoolVar(&allComponents, "all-components", false, "keep every connected component")
	flags.IntVar(&procs, "procs", 1, "PBF decoding goroutines")
	return cmd
}

// parseBBox parses "minLat,minLng,maxLat,maxLng".
func parseBBox(s string) (osm.BBox, error) {
	var minLat, minLng, maxLat, maxLng float64
	if _, err := fmt.Sscanf(s, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng); err != nil {
		return osm.BBox{}, fmt.Errorf("invalid bbox %q (expected minLat,minLng,maxLat,maxLng): %w", s, err)
	}
	if minLat >= maxLat || minLng >= maxLng {
		return osm.BBox{}, fmt.Errorf("invalid bbox %q: minimum must be below maximum", s)
	}
	return osm.BBox{MinLat: minLat, MaxLat: maxLat, MinLon: minLng, MaxLon: maxLng}, nil
}
