package routing

import (
	"errors"
	"math"
	"sync"

	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

var ErrEmptyGraph = errors.New("graph has no nodes")

// Route is the result of a route request
type Route struct {
	Origin      orb.Point   // requested origin
	Destination orb.Point   // requested destination
	Exists      bool        // whether the snapped nodes are connected
	Waypoints   []orb.Point // nodes of the path, starting at the node snapped to the origin
	Hops        int         // number of arcs of the path
	Length      int         // summed arc distances in meters
	KPIs        path.SearchKPIs
}

// Router answers route requests on a road graph. It minimizes the number of arcs,
// the distance in meters is only reported.
type Router struct {
	graph     *graph.AdjacencyArrayGraph
	heuristic *graph.HopHeuristic
	options   []path.Option[graph.Vertex]

	mu            sync.RWMutex
	navigatorName string
	navigator     path.Finder[graph.Vertex]
}

// Create a new router using the finder registered as navigator
func NewRouter(g *graph.AdjacencyArrayGraph, navigator string, opts ...path.Option[graph.Vertex]) (*Router, error) {
	r := &Router{
		graph:     g,
		heuristic: graph.NewHopHeuristic(g),
		options:   opts,
	}
	if err := r.SetNavigator(navigator); err != nil {
		return nil, err
	}
	return r, nil
}

// SetNavigator switches the finder used by subsequent requests
func (r *Router) SetNavigator(navigator string) error {
	finder, err := path.NewFinder[graph.Vertex](navigator, r.heuristic, r.options...)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigator = finder
	r.navigatorName = navigator
	return nil
}

// Navigator returns the name of the current finder
func (r *Router) Navigator() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.navigatorName
}

// ComputeRoute snaps both points to their nearest nodes and searches a path between them.
// An unreachable destination is no error, Exists is false in that case.
func (r *Router) ComputeRoute(origin, destination orb.Point) (Route, error) {
	route := Route{Origin: origin, Destination: destination}
	if r.graph.NodeCount() == 0 {
		return route, ErrEmptyGraph
	}

	r.mu.RLock()
	navigator := r.navigator
	r.mu.RUnlock()

	source := r.graph.Vertex(r.findNearestNode(origin))
	target := r.graph.Vertex(r.findNearestNode(destination))

	result, err := navigator.SearchWithKPIs(source, target)
	route.KPIs = result.KPIs
	if errors.Is(err, path.ErrUnreachable) {
		return route, nil
	} else if err != nil {
		return route, err
	}

	route.Exists = true
	route.Hops = result.Length
	route.Waypoints = r.buildWaypoints(result.Path)
	route.Length = r.pathDistance(result.Path)
	return route, nil
}

// GetNodes returns all node positions of the graph
func (r *Router) GetNodes() []orb.Point {
	return r.graph.GetNodes()
}

func (r *Router) Graph() *graph.AdjacencyArrayGraph {
	return r.graph
}

func (r *Router) findNearestNode(point orb.Point) graph.NodeId {
	minDist := math.MaxFloat64
	nearestNode := 0
	for i, node := range r.graph.GetNodes() {
		if dist := geo.DistanceHaversine(point, node); dist < minDist {
			minDist = dist
			nearestNode = i
		}
	}
	return nearestNode
}

func (r *Router) buildWaypoints(vertices []graph.Vertex) []orb.Point {
	waypoints := make([]orb.Point, 0, len(vertices))
	for _, v := range vertices {
		waypoints = append(waypoints, v.Point())
	}
	return waypoints
}

func (r *Router) pathDistance(vertices []graph.Vertex) int {
	distance := 0
	for i := 0; i < len(vertices)-1; i++ {
		if d, ok := r.graph.ArcDistance(vertices[i].Id(), vertices[i+1].Id()); ok {
			distance += d
		}
	}
	return distance
}
