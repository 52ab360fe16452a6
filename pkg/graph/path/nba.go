package path

import (
	"log"

	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/queue"
)

// NBAFinder implements the new bidirectional A* (NBA*).
// Both directions share one closed set: a node closed by one direction is never expanded by the other one.
// A popped node x of the forward direction is rejected if
//
//	g(x) + h(x) >= L  or  g(x) + fB - hB(x) >= L
//
// where L is the length of the best connection and fB the lowest priority of the backward queue.
// The backward direction is pruned symmetrically.
// Implements the Finder interface.
type NBAFinder[N graph.Node[N]] struct {
	heuristic  graph.Heuristic[N]
	queue      queue.IndexedMinPriorityQueue[N]
	debugLevel int
}

func NewNBAFinder[N graph.Node[N]](heuristic graph.Heuristic[N], opts ...Option[N]) *NBAFinder[N] {
	o := newOptions(opts)
	return &NBAFinder[N]{heuristic: heuristicOrZero(heuristic), queue: o.queue, debugLevel: o.debugLevel}
}

func (f *NBAFinder[N]) Name() string { return NBA }

func (f *NBAFinder[N]) Search(source, target N) ([]N, error) {
	result, err := f.SearchWithKPIs(source, target)
	return result.Path, err
}

func (f *NBAFinder[N]) SearchWithKPIs(source, target N) (Result[N], error) {
	if source == target {
		return trivialResult(source), nil
	}
	if f.debugLevel >= 1 {
		log.Printf("New search: %v -> %v\n", source, target)
	}

	kpis := SearchKPIs{}
	closed := make(map[N]struct{})
	forward := newFrontier(FORWARD, source, target, f.queue, f.heuristic, closed)
	backward := newFrontier(BACKWARD, target, source, f.queue, f.heuristic, closed)
	connection := newTouch[N]()

	// both start with the estimated length of the whole path
	forward.f = forward.heuristic.Estimate(source)
	backward.f = forward.f

	for !forward.open.IsEmpty() && !backward.open.IsEmpty() {
		direction := BACKWARD
		if forward.open.Size() < backward.open.Size() {
			direction = FORWARD
		}
		search, inverseSearch := alignWithSearchDirection(direction, forward, backward)
		f.expand(search, inverseSearch, &connection, &kpis)
		search.refreshF()
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

// pop the minimum of the search and either reject it or relax all its neighbours
func (f *NBAFinder[N]) expand(search, inverseSearch *frontier[N], connection *touch[N], kpis *SearchKPIs) {
	current := search.open.ExtractMinimum()
	kpis.PqPops++

	if search.isClosed(current) {
		// already closed by the inverse direction
		kpis.RejectedNodes++
		return
	}
	search.close(current)

	distance := search.distance[current]
	if distance+search.heuristic.Estimate(current) >= connection.distance ||
		distance+inverseSearch.f-inverseSearch.heuristic.Estimate(current) >= connection.distance {
		if f.debugLevel >= 2 {
			log.Printf("Reject node %v, direction: %v, distance %v\n", current, search.direction, distance)
		}
		kpis.RejectedNodes++
		return
	}

	if f.debugLevel >= 2 {
		log.Printf("Settling node %v, direction: %v, distance %v\n", current, search.direction, distance)
	}
	kpis.SettledNodes++

	for _, next := range neighbours(search.direction, current) {
		if search.isClosed(next) {
			continue
		}
		if !search.relax(current, next, kpis) {
			continue
		}
		if f.debugLevel >= 3 {
			log.Printf("Relax Edge %v -> %v\n", current, next)
		}
		if inverseDistance, ok := inverseSearch.distance[next]; ok {
			connection.update(next, search.distance[next]+inverseDistance)
		}
	}
}
