package graph

import (
	"math"

	"github.com/paulmach/orb/geo"
)

// HopHeuristic estimates the number of arcs between two vertices of a geographic graph.
// No arc bridges more than the longest great-circle arc length, so the great-circle
// distance divided by that length (rounded down) never overestimates the number of hops.
type HopHeuristic struct {
	maxArcLength float64 // meters, shared between spawned copies
	target       Vertex
	hasTarget    bool
}

// NewHopHeuristic scans all arcs of the graph once to find the longest arc
func NewHopHeuristic(g *AdjacencyArrayGraph) *HopHeuristic {
	maxArcLength := 0.0
	for from := 0; from < g.NodeCount(); from++ {
		for _, arc := range g.GetArcsFrom(from) {
			if d := geo.DistanceHaversine(g.Nodes[from], g.Nodes[arc.To]); d > maxArcLength {
				maxArcLength = d
			}
		}
	}
	return &HopHeuristic{maxArcLength: maxArcLength}
}

func (h *HopHeuristic) SetTarget(target Vertex) {
	h.target = target
	h.hasTarget = true
}

func (h *HopHeuristic) Estimate(v Vertex) int {
	if !h.hasTarget || h.maxArcLength <= 0 || v == h.target {
		return 0
	}
	hops := geo.DistanceHaversine(v.Point(), h.target.Point()) / h.maxArcLength
	// shrink slightly so that rounding errors cannot push an exact hop count above the truth
	return int(math.Floor(hops * (1 - 1e-9)))
}

func (h *HopHeuristic) Spawn() Heuristic[Vertex] {
	return &HopHeuristic{maxArcLength: h.maxArcLength}
}

// MaxArcLength returns the longest arc in meters
func (h *HopHeuristic) MaxArcLength() float64 { return h.maxArcLength }
