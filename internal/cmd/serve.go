package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/natevvv/graph-search/pkg/queue"
	"github.com/natevvv/graph-search/pkg/routing"
	"github.com/natevvv/graph-search/pkg/server/openapi_server"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the http api",
	Long: `Start the http api for routes and puzzles.

Without a graph only the puzzle endpoints are usable, the route endpoints
answer with 503. Prometheus metrics are served at /metrics.

Examples:
  pathfinder serve                                 # Puzzles only
  pathfinder serve --graph roads.fmi --address :8080`,
	RunE: runServe,
}

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("address", ":8081", "Listen address")
	serveCmd.Flags().String("graph", "", "Graph file in fmi format (default: configured graph)")
	serveCmd.Flags().String("navigator", "bidirectional-astar", "Finder of the route endpoint")
}

func runServe(cmd *cobra.Command, args []string) error {
	handler, err := newApiHandler(cmd)
	if err != nil {
		return err
	}

	address := stringFlag(cmd, "address", cfg.Server.Address)
	server := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server started at %s", address)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newApiHandler wires the route and puzzle services into the api router
func newApiHandler(cmd *cobra.Command) (http.Handler, error) {
	kind, err := queue.ParseKind(cfg.Search.Queue)
	if err != nil {
		return nil, err
	}

	var router *routing.Router
	if graphFile := stringFlag(cmd, "graph", cfg.Graph.File); graphFile != "" {
		start := time.Now()
		g, err := graph.NewAdjacencyArrayFromFmiFile(graphFile)
		if err != nil {
			return nil, err
		}
		log.Printf("[TIME-Import] = %s, %d nodes, %d arcs", time.Since(start), g.NodeCount(), g.ArcCount())

		prototype, err := queue.New[graph.Vertex](kind, cfg.Search.HeapDegree)
		if err != nil {
			return nil, err
		}
		router, err = routing.NewRouter(g, stringFlag(cmd, "navigator", cfg.Graph.Navigator),
			path.WithQueue(prototype), path.WithDebugLevel[graph.Vertex](cfg.Search.DebugLevel))
		if err != nil {
			return nil, fmt.Errorf("create router: %w", err)
		}
	}

	service := openapi_server.NewDefaultApiService(router, openapi_server.ServiceConfig{
		PuzzleNavigator: cfg.Search.Navigator,
		QueueKind:       kind,
		HeapDegree:      cfg.Search.HeapDegree,
		MaxPuzzleDegree: cfg.Puzzle.MaxDegree,
	})
	controller := openapi_server.NewDefaultApiController(service)
	return openapi_server.NewRouter(controller), nil
}
