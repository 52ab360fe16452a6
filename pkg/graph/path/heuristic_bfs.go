package path

import (
	"log"

	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/queue"
)

// HeuristicBFSFinder is A* with unit edge costs. The priority of a node is its distance plus the estimate
// of the heuristic. Paths are only optimal for admissible heuristics.
// Implements the Finder interface.
type HeuristicBFSFinder[N graph.Node[N]] struct {
	heuristic  graph.Heuristic[N]               // prototype, spawned for every search
	queue      queue.IndexedMinPriorityQueue[N] // prototype, spawned for every search
	debugLevel int
}

func NewHeuristicBFSFinder[N graph.Node[N]](heuristic graph.Heuristic[N], opts ...Option[N]) *HeuristicBFSFinder[N] {
	o := newOptions(opts)
	return &HeuristicBFSFinder[N]{heuristic: heuristicOrZero(heuristic), queue: o.queue, debugLevel: o.debugLevel}
}

func (f *HeuristicBFSFinder[N]) Name() string { return ASTAR }

func (f *HeuristicBFSFinder[N]) Search(source, target N) ([]N, error) {
	result, err := f.SearchWithKPIs(source, target)
	return result.Path, err
}

func (f *HeuristicBFSFinder[N]) SearchWithKPIs(source, target N) (Result[N], error) {
	if source == target {
		return trivialResult(source), nil
	}
	if f.debugLevel >= 1 {
		log.Printf("New search: %v -> %v\n", source, target)
	}

	kpis := SearchKPIs{}
	search := newFrontier(FORWARD, source, target, f.queue, f.heuristic, nil)

	for !search.open.IsEmpty() {
		current := search.open.ExtractMinimum()
		kpis.PqPops++

		if current == target {
			path := Traceback(target, search.parents)
			if f.debugLevel >= 1 {
				log.Printf("Finished search, distance: %v\n", len(path)-1)
			}
			return newResult(path, kpis), nil
		}

		if f.debugLevel >= 2 {
			log.Printf("Settling node %v, distance %v\n", current, search.distance[current])
		}
		search.close(current)
		kpis.SettledNodes++

		for _, child := range current.Children() {
			if search.isClosed(child) {
				continue
			}
			if search.relax(current, child, &kpis) && f.debugLevel >= 3 {
				log.Printf("Relax Edge %v -> %v\n", current, child)
			}
		}
	}

	if f.debugLevel >= 1 {
		log.Printf("Finished search, no path found\n")
	}
	return unreachable[N](kpis)
}
