package path

import (
	"log"

	"github.com/natevvv/graph-search/pkg/graph"
)

// BFSFinder is a plain breadth first search. Every node gets its parent on first discovery,
// which is its shortest distance because all edges have unit cost.
// Implements the Finder interface.
type BFSFinder[N graph.Node[N]] struct {
	debugLevel int
}

func NewBFSFinder[N graph.Node[N]](opts ...Option[N]) *BFSFinder[N] {
	o := newOptions(opts)
	return &BFSFinder[N]{debugLevel: o.debugLevel}
}

func (f *BFSFinder[N]) Name() string { return BFS }

func (f *BFSFinder[N]) Search(source, target N) ([]N, error) {
	result, err := f.SearchWithKPIs(source, target)
	return result.Path, err
}

func (f *BFSFinder[N]) SearchWithKPIs(source, target N) (Result[N], error) {
	if source == target {
		return trivialResult(source), nil
	}
	if f.debugLevel >= 1 {
		log.Printf("New search: %v -> %v\n", source, target)
	}

	kpis := SearchKPIs{}
	search := newBfsFrontier(FORWARD, source)

	for !search.isEmpty() {
		current := search.pop()
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
		kpis.SettledNodes++

		for _, child := range current.Children() {
			if search.discover(current, child) {
				if f.debugLevel >= 3 {
					log.Printf("Relax Edge %v -> %v\n", current, child)
				}
				kpis.RelaxedEdges++
				kpis.PqUpdates++
			}
		}
	}

	if f.debugLevel >= 1 {
		log.Printf("Finished search, no path found\n")
	}
	return unreachable[N](kpis)
}
