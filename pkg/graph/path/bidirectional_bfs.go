package path

import (
	"log"

	"github.com/natevvv/graph-search/pkg/graph"
)

// BidirectionalBFSFinder runs a breadth first search from the source over the children
// and one from the target over the parents. The side with the smaller head distance is expanded.
// Implements the Finder interface.
type BidirectionalBFSFinder[N graph.Node[N]] struct {
	debugLevel int
}

func NewBidirectionalBFSFinder[N graph.Node[N]](opts ...Option[N]) *BidirectionalBFSFinder[N] {
	o := newOptions(opts)
	return &BidirectionalBFSFinder[N]{debugLevel: o.debugLevel}
}

func (f *BidirectionalBFSFinder[N]) Name() string { return BIDIRECTIONAL_BFS }

func (f *BidirectionalBFSFinder[N]) Search(source, target N) ([]N, error) {
	result, err := f.SearchWithKPIs(source, target)
	return result.Path, err
}

func (f *BidirectionalBFSFinder[N]) SearchWithKPIs(source, target N) (Result[N], error) {
	if source == target {
		return trivialResult(source), nil
	}
	if f.debugLevel >= 1 {
		log.Printf("New search: %v -> %v\n", source, target)
	}

	kpis := SearchKPIs{}
	forward := newBfsFrontier(FORWARD, source)
	backward := newBfsFrontier(BACKWARD, target)
	connection := newTouch[N]()

	for !forward.isEmpty() && !backward.isEmpty() {
		distanceA := forward.distance[forward.head()]
		distanceB := backward.distance[backward.head()]

		// no unexpanded combination can beat the connection anymore
		if connection.found && connection.distance < distanceA+distanceB {
			break
		}

		direction := BACKWARD
		if distanceA < distanceB {
			direction = FORWARD
		}
		search, inverseSearch := alignWithSearchDirection(direction, forward, backward)

		current := search.pop()
		kpis.PqPops++
		if f.debugLevel >= 2 {
			log.Printf("Settling node %v, direction: %v, distance %v\n", current, direction, search.distance[current])
		}
		kpis.SettledNodes++

		if distance, ok := inverseSearch.distance[current]; ok {
			connection.update(current, search.distance[current]+distance)
		}

		for _, next := range neighbours(direction, current) {
			if !search.discover(current, next) {
				continue
			}
			if f.debugLevel >= 3 {
				log.Printf("Relax Edge %v -> %v\n", current, next)
			}
			kpis.RelaxedEdges++
			kpis.PqUpdates++

			if distance, ok := inverseSearch.distance[next]; ok {
				connection.update(next, search.distance[next]+distance)
			}
		}
	}

	if !connection.found {
		if f.debugLevel >= 1 {
			log.Printf("Finished search, no path found\n")
		}
		return unreachable[N](kpis)
	}

	if f.debugLevel >= 1 {
		log.Printf("Finished search, distance: %v\n", connection.distance)
	}
	return newResult(TracebackBidirectional(connection.node, forward.parents, backward.parents), kpis), nil
}
