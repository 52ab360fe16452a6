package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/natevvv/graph-search/internal/pbf"
	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/road"
	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file.osm.pbf|file.osm>",
	Short: "Convert OpenStreetMap highways to a graph",
	Long: `Read the highways of an OpenStreetMap extract and write a graph in fmi format.
Consecutive segments with equal attributes are merged unless --no-merge is given.

Examples:
  pathfinder import stuttgart.osm.pbf -o stuttgart.fmi
  pathfinder import campus.osm -o campus.fmi --geojson campus.geojson`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importOutput  string
	importGeoJson string
	importNoMerge bool
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Output graph file (default: input name with .fmi)")
	importCmd.Flags().StringVar(&importGeoJson, "geojson", "", "Also export the road segments as GeoJSON")
	importCmd.Flags().BoolVar(&importNoMerge, "no-merge", false, "Do not merge road segments")
}

func runImport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	input := args[0]

	output := importOutput
	if output == "" {
		output = defaultGraphName(input)
	}

	start := time.Now()
	importer := pbf.NewRoadImporter(input)
	if err := importer.Import(cmd.Context()); err != nil {
		return err
	}
	roads := importer.Roads()
	fmt.Fprintf(out, "[TIME-Import] = %s, %d road segments\n", time.Since(start), len(roads))
	if len(roads) == 0 {
		return errors.New("no road segments found")
	}

	if !importNoMerge {
		start = time.Now()
		merger := road.NewMerger(roads)
		merger.Merge()
		roads = merger.Roads()
		fmt.Fprintf(out, "[TIME-Merge] = %s, %d merges, %d unmergable segments\n",
			time.Since(start), merger.MergeCount(), merger.UnmergableRoadCount())
	}

	if importGeoJson != "" {
		if err := pbf.ExportRoadGeoJson(roads, importGeoJson); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported road segments to %s\n", importGeoJson)
	}

	start = time.Now()
	g := road.BuildGraph(roads)
	if err := graph.WriteFmi(g, output); err != nil {
		return err
	}
	fmt.Fprintf(out, "[TIME-Graph] = %s, %d nodes, %d arcs written to %s\n", time.Since(start), g.NodeCount(), g.ArcCount(), output)
	return nil
}

func defaultGraphName(input string) string {
	for _, suffix := range []string{".osm.pbf", ".pbf", ".osm", ".xml"} {
		if strings.HasSuffix(input, suffix) {
			return strings.TrimSuffix(input, suffix) + ".fmi"
		}
	}
	return input + ".fmi"
}
