package path

import (
	"log"

	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/queue"
)

// BidirectionalHeuristicBFSFinder runs A* from both ends, each direction has its own closed set.
// The backward direction uses a spawned heuristic which targets the source.
// The search stops as soon as max(fA, fB) reaches the length of the best connection.
// Implements the Finder interface.
type BidirectionalHeuristicBFSFinder[N graph.Node[N]] struct {
	heuristic  graph.Heuristic[N]
	queue      queue.IndexedMinPriorityQueue[N]
	debugLevel int
}

func NewBidirectionalHeuristicBFSFinder[N graph.Node[N]](heuristic graph.Heuristic[N], opts ...Option[N]) *BidirectionalHeuristicBFSFinder[N] {
	o := newOptions(opts)
	return &BidirectionalHeuristicBFSFinder[N]{heuristic: heuristicOrZero(heuristic), queue: o.queue, debugLevel: o.debugLevel}
}

func (f *BidirectionalHeuristicBFSFinder[N]) Name() string { return BIDIRECTIONAL_ASTAR }

func (f *BidirectionalHeuristicBFSFinder[N]) Search(source, target N) ([]N, error) {
	result, err := f.SearchWithKPIs(source, target)
	return result.Path, err
}

func (f *BidirectionalHeuristicBFSFinder[N]) SearchWithKPIs(source, target N) (Result[N], error) {
	if source == target {
		return trivialResult(source), nil
	}
	if f.debugLevel >= 1 {
		log.Printf("New search: %v -> %v\n", source, target)
	}

	kpis := SearchKPIs{}
	forward := newFrontier(FORWARD, source, target, f.queue, f.heuristic, nil)
	backward := newFrontier(BACKWARD, target, source, f.queue, f.heuristic, nil)
	connection := newTouch[N]()

	for !forward.open.IsEmpty() && !backward.open.IsEmpty() {
		minA := forward.open.Min()
		minB := backward.open.Min()

		if connection.found && max(forward.fScore(minA), backward.fScore(minB)) >= connection.distance {
			break
		}

		direction := BACKWARD
		if forward.distance[minA] < backward.distance[minB] {
			direction = FORWARD
		}
		search, inverseSearch := alignWithSearchDirection(direction, forward, backward)

		current := search.open.ExtractMinimum()
		kpis.PqPops++
		if f.debugLevel >= 2 {
			log.Printf("Settling node %v, direction: %v, distance %v\n", current, direction, search.distance[current])
		}
		search.close(current)
		kpis.SettledNodes++

		for _, next := range neighbours(direction, current) {
			if search.isClosed(next) {
				continue
			}
			if !search.relax(current, next, &kpis) {
				continue
			}
			if f.debugLevel >= 3 {
				log.Printf("Relax Edge %v -> %v\n", current, next)
			}
			// the inverse direction has labeled the node, a connection exists
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
