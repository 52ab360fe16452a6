package cmd

import (
	"fmt"

	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/natevvv/graph-search/pkg/routing"
	"github.com/spf13/cobra"
)

// routeCmd represents the route command
var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Compute a route on a road graph",
	Long: `Compute a route between two coordinates on a graph in fmi format.
Both points are snapped to their nearest nodes. The route minimizes the
number of arcs, its length in meters is reported.

Examples:
  pathfinder route --graph roads.fmi --from 48.74,9.10 --to 48.78,9.18
  pathfinder route --graph roads.fmi --from 48.74,9.10 --to 48.78,9.18 --navigator bidirectional-bfs`,
	RunE: runRoute,
}

var (
	routeFrom      string
	routeTo        string
	routeWaypoints bool
)

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().String("graph", "", "Graph file in fmi format (default: configured graph)")
	routeCmd.Flags().String("navigator", "bidirectional-astar", "Finder to use")
	routeCmd.Flags().StringVar(&routeFrom, "from", "", "Origin as lat,lon")
	routeCmd.Flags().StringVar(&routeTo, "to", "", "Destination as lat,lon")
	routeCmd.Flags().BoolVar(&routeWaypoints, "waypoints", false, "Print the waypoints")
	routeCmd.MarkFlagRequired("from")
	routeCmd.MarkFlagRequired("to")
}

func runRoute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	origin, err := parsePoint(routeFrom)
	if err != nil {
		return err
	}
	destination, err := parsePoint(routeTo)
	if err != nil {
		return err
	}

	graphFile := stringFlag(cmd, "graph", cfg.Graph.File)
	if graphFile == "" {
		return fmt.Errorf("no graph file given")
	}
	g, err := graph.NewAdjacencyArrayFromFmiFile(graphFile)
	if err != nil {
		return err
	}

	router, err := routing.NewRouter(g, stringFlag(cmd, "navigator", cfg.Graph.Navigator),
		path.WithDebugLevel[graph.Vertex](cfg.Search.DebugLevel))
	if err != nil {
		return err
	}
	route, err := router.ComputeRoute(origin, destination)
	if err != nil {
		return err
	}

	if !route.Exists {
		fmt.Fprintln(out, "No route found")
		return nil
	}
	fmt.Fprintf(out, "Route with %s: %d hops, %d m\n", router.Navigator(), route.Hops, route.Length)
	fmt.Fprintf(out, "PQ pops: %d, settled nodes: %d\n", route.KPIs.PqPops, route.KPIs.SettledNodes)
	if routeWaypoints {
		for _, p := range route.Waypoints {
			fmt.Fprintf(out, "%.6f,%.6f\n", p.Lat(), p.Lon())
		}
	}
	return nil
}
