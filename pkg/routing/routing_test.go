package routing

import (
	"errors"
	"testing"

	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/natevvv/graph-search/pkg/queue"
	"github.com/paulmach/orb"
)

// a line 0 - 1 - 2 along the equator and the isolated node 3
const lineFmi = `4
4
0 0 0
1 0 1
2 0 2
3 10 10
0 1 100
1 0 100
1 2 150
2 1 150
`

func newRouter(t *testing.T, navigator string) *Router {
	t.Helper()
	aag, err := graph.NewAdjacencyArrayFromFmiString(lineFmi)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRouter(aag, navigator, path.WithQueue[graph.Vertex](queue.NewBucketQueue[graph.Vertex]()))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestComputeRoute(t *testing.T) {
	for _, navigator := range path.FinderNames() {
		r := newRouter(t, navigator)
		route, err := r.ComputeRoute(orb.Point{0.1, 0.1}, orb.Point{2.2, -0.1})
		if err != nil {
			t.Fatalf("%v: %v", navigator, err)
		}
		if !route.Exists || route.Hops != 2 || route.Length != 250 {
			t.Errorf("%v: wrong route %+v", navigator, route)
		}
		if len(route.Waypoints) != 3 || route.Waypoints[2] != (orb.Point{2, 0}) {
			t.Errorf("%v: wrong waypoints %v", navigator, route.Waypoints)
		}
	}
}

func TestUnreachableRoute(t *testing.T) {
	r := newRouter(t, path.NBA)
	route, err := r.ComputeRoute(orb.Point{0, 0}, orb.Point{10, 10})
	if err != nil {
		t.Fatal(err)
	}
	if route.Exists || route.Waypoints != nil {
		t.Errorf("route should not exist %+v", route)
	}
}

func TestSetNavigator(t *testing.T) {
	r := newRouter(t, path.BFS)
	if err := r.SetNavigator(path.ASTAR); err != nil || r.Navigator() != path.ASTAR {
		t.Errorf("navigator is %v (%v), should be astar", r.Navigator(), err)
	}
	if err := r.SetNavigator("contraction-hierarchies"); !errors.Is(err, path.ErrUnknownFinder) {
		t.Errorf("expected ErrUnknownFinder, got %v", err)
	}
	if r.Navigator() != path.ASTAR {
		t.Errorf("failed switch must keep the navigator")
	}
}
