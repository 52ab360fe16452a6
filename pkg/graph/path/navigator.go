package path

import (
	"errors"
	"fmt"

	"github.com/natevvv/graph-search/pkg/graph"
)

// registry names of the finders
const (
	BFS                 = "bfs"
	BIDIRECTIONAL_BFS   = "bidirectional-bfs"
	ASTAR               = "astar"
	BIDIRECTIONAL_ASTAR = "bidirectional-astar"
	NBA                 = "nba"
)

var ErrUnknownFinder = errors.New("unknown path finder")

// FinderNames lists all registered finders, the plain searches first
func FinderNames() []string {
	return []string{BFS, BIDIRECTIONAL_BFS, ASTAR, BIDIRECTIONAL_ASTAR, NBA}
}

// NewFinder creates the finder registered under name.
// The heuristic is ignored by the breadth first searches, nil falls back to the zero heuristic.
func NewFinder[N graph.Node[N]](name string, heuristic graph.Heuristic[N], opts ...Option[N]) (Finder[N], error) {
	switch name {
	case BFS:
		return NewBFSFinder(opts...), nil
	case BIDIRECTIONAL_BFS:
		return NewBidirectionalBFSFinder(opts...), nil
	case ASTAR:
		return NewHeuristicBFSFinder(heuristic, opts...), nil
	case BIDIRECTIONAL_ASTAR:
		return NewBidirectionalHeuristicBFSFinder(heuristic, opts...), nil
	case NBA:
		return NewNBAFinder(heuristic, opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFinder, name)
}

// IsHeuristic reports whether the finder uses a heuristic and a priority queue
func IsHeuristic(name string) bool {
	return name == ASTAR || name == BIDIRECTIONAL_ASTAR || name == NBA
}
