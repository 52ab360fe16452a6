package puzzle

import (
	"github.com/natevvv/graph-search/pkg/graph"
)

// ManhattanHeuristic sums up the grid distances of all tiles (without the blank) to their position in the target.
// Admissible and consistent, since every move shifts exactly one tile by one cell.
// The target positions are kept in scratch slices per instance, use Spawn for concurrent searches.
type ManhattanHeuristic struct {
	degree int
	xs     []int // column of every tile in the target
	ys     []int // row of every tile in the target
}

var _ graph.Heuristic[Node] = (*ManhattanHeuristic)(nil)

func NewManhattanHeuristic() *ManhattanHeuristic {
	return &ManhattanHeuristic{}
}

func (h *ManhattanHeuristic) SetTarget(target Node) {
	cells := len(target.tiles)
	if cap(h.xs) < cells {
		h.xs = make([]int, cells)
		h.ys = make([]int, cells)
	}
	h.xs = h.xs[:cells]
	h.ys = h.ys[:cells]
	h.degree = target.degree

	for i := 0; i < cells; i++ {
		tile := target.tiles[i]
		h.xs[tile] = i % target.degree
		h.ys[tile] = i / target.degree
	}
}

// Estimate returns 0 if no target of the same degree is set
func (h *ManhattanHeuristic) Estimate(node Node) int {
	if h.degree == 0 || node.degree != h.degree {
		return 0
	}
	distance := 0
	for i := 0; i < len(node.tiles); i++ {
		tile := node.tiles[i]
		if tile == BLANK {
			continue
		}
		distance += abs(i%node.degree-h.xs[tile]) + abs(i/node.degree-h.ys[tile])
	}
	return distance
}

func (h *ManhattanHeuristic) Spawn() graph.Heuristic[Node] {
	return NewManhattanHeuristic()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
