package openapi_server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/natevvv/graph-search/pkg/puzzle"
	"github.com/natevvv/graph-search/pkg/queue"
	"github.com/natevvv/graph-search/pkg/routing"
	"golang.org/x/sync/singleflight"
)

// ServiceConfig configures the puzzle solver of the service
type ServiceConfig struct {
	PuzzleNavigator string     // finder for requests without navigator
	QueueKind       queue.Kind // queue for requests without queue
	HeapDegree      int        // degree of the d-ary heap
	MaxPuzzleDegree int        // larger puzzles are rejected
}

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	router *routing.Router // nil if no graph is loaded
	config ServiceConfig
	solves singleflight.Group // collapses identical concurrent puzzle requests
}

// NewDefaultApiService creates a default api service
func NewDefaultApiService(router *routing.Router, config ServiceConfig) DefaultApiServicer {
	return &DefaultApiService{
		router: router,
		config: config,
	}
}

var noGraphResponse = Response(http.StatusServiceUnavailable, "No graph loaded")

// ComputeRoute - Compute a new route
func (s *DefaultApiService) ComputeRoute(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	if s.router == nil {
		return noGraphResponse, nil
	}

	start := time.Now()
	route, err := s.router.ComputeRoute(routeRequest.Origin.toOrb(), routeRequest.Destination.toOrb())
	if err != nil {
		observeSearch(s.router.Navigator(), resultError, start)
		return Response(http.StatusInternalServerError, nil), err
	}

	routeResult := RouteResult{Origin: routeRequest.Origin, Destination: routeRequest.Destination}
	if route.Exists {
		observeSearch(s.router.Navigator(), resultFound, start)
		routeResult.Reachable = true
		waypoints := make([]Point, 0, len(route.Waypoints))
		for _, waypoint := range route.Waypoints {
			waypoints = append(waypoints, pointFromOrb(waypoint))
		}
		routeResult.Path = Path{Length: int32(route.Length), Hops: int32(route.Hops), Waypoints: waypoints}
	} else {
		observeSearch(s.router.Navigator(), resultUnreachable, start)
		routeResult.Reachable = false
	}

	return Response(http.StatusOK, routeResult), nil
}

func (s *DefaultApiService) GetNodes(ctx context.Context) (ImplResponse, error) {
	if s.router == nil {
		return noGraphResponse, nil
	}
	points := s.router.GetNodes()

	vertices := make([]Point, 0, len(points))
	for _, point := range points {
		vertices = append(vertices, pointFromOrb(point))
	}
	nodes := Nodes{Waypoints: vertices}

	return Response(http.StatusOK, nodes), nil
}

func (s *DefaultApiService) SetNavigator(ctx context.Context, navigatorRequest NavigatorRequest) (ImplResponse, error) {
	if s.router == nil {
		return noGraphResponse, nil
	}
	if err := s.router.SetNavigator(navigatorRequest.Navigator); err != nil {
		return Response(http.StatusBadRequest, "Unknown Navigator"), nil
	}
	return Response(http.StatusOK, navigatorRequest.Navigator), nil
}

func (s *DefaultApiService) GetNavigators(ctx context.Context) (ImplResponse, error) {
	navigators := Navigators{Navigators: path.FinderNames()}
	if s.router != nil {
		navigators.Current = s.router.Navigator()
	}
	return Response(http.StatusOK, navigators), nil
}

// SolvePuzzle - Solve a sliding puzzle
func (s *DefaultApiService) SolvePuzzle(ctx context.Context, puzzleRequest PuzzleRequest) (ImplResponse, error) {
	if puzzleRequest.Degree > s.config.MaxPuzzleDegree {
		return Response(http.StatusBadRequest, fmt.Sprintf("Puzzle degree is limited to %d", s.config.MaxPuzzleDegree)), nil
	}
	source, err := puzzle.FromTiles(puzzleRequest.Degree, puzzleRequest.Tiles)
	if err != nil {
		return Response(http.StatusBadRequest, err.Error()), nil
	}

	navigator := puzzleRequest.Navigator
	if navigator == "" {
		navigator = s.config.PuzzleNavigator
	}
	kind := s.config.QueueKind
	if puzzleRequest.Queue != "" {
		if kind, err = queue.ParseKind(puzzleRequest.Queue); err != nil {
			return Response(http.StatusBadRequest, err.Error()), nil
		}
	}

	if !source.IsSolvable() {
		return Response(http.StatusOK, PuzzleResult{Solvable: false, Moves: -1, Navigator: navigator}), nil
	}

	key := fmt.Sprintf("%s|%s|%d|%v", navigator, kind, source.Degree(), source.Tiles())
	solution := s.solves.DoChan(key, func() (interface{}, error) {
		return s.solve(source, navigator, kind)
	})

	select {
	case <-ctx.Done():
		return Response(http.StatusServiceUnavailable, nil), ctx.Err()
	case res := <-solution:
		if errors.Is(res.Err, path.ErrUnknownFinder) || errors.Is(res.Err, queue.ErrUnknownKind) || errors.Is(res.Err, queue.ErrInvalidDegree) {
			return Response(http.StatusBadRequest, res.Err.Error()), nil
		} else if res.Err != nil {
			return Response(http.StatusInternalServerError, nil), res.Err
		}
		return Response(http.StatusOK, res.Val), nil
	}
}

func (s *DefaultApiService) solve(source puzzle.Node, navigator string, kind queue.Kind) (PuzzleResult, error) {
	prototype, err := queue.New[puzzle.Node](kind, s.config.HeapDegree)
	if err != nil {
		return PuzzleResult{}, err
	}
	finder, err := path.NewFinder[puzzle.Node](navigator, puzzle.NewManhattanHeuristic(), path.WithQueue(prototype))
	if err != nil {
		return PuzzleResult{}, err
	}
	goal, err := puzzle.NewGoal(source.Degree())
	if err != nil {
		return PuzzleResult{}, err
	}

	start := time.Now()
	states, err := finder.Search(source, goal)
	if errors.Is(err, path.ErrUnreachable) {
		// solvable puzzles always reach the goal
		observeSearch(navigator, resultUnreachable, start)
		return PuzzleResult{Solvable: false, Moves: -1, Navigator: navigator}, nil
	} else if err != nil {
		observeSearch(navigator, resultError, start)
		return PuzzleResult{}, err
	}
	observeSearch(navigator, resultFound, start)

	result := PuzzleResult{Solvable: true, Moves: len(states) - 1, Navigator: navigator}
	for _, state := range states {
		result.States = append(result.States, state.Tiles())
	}
	return result, nil
}
