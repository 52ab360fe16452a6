package road

import (
	"math"

	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// BuildGraph creates a graph with one node per distinct point and one arc per consecutive point pair.
// Arc distances are haversine meters, two way segments get arcs in both directions.
func BuildGraph(segments []*Segment) *graph.AdjacencyListGraph {
	alg := graph.NewAdjacencyListGraph()
	pointToId := make(map[orb.Point]graph.NodeId)

	nodeId := func(p orb.Point) graph.NodeId {
		if id, ok := pointToId[p]; ok {
			return id
		}
		id := alg.NodeCount()
		alg.AddNode(p)
		pointToId[p] = id
		return id
	}

	for _, seg := range segments {
		for i := 0; i < len(seg.Points)-1; i++ {
			from, to := nodeId(seg.Points[i]), nodeId(seg.Points[i+1])
			if from == to {
				continue
			}
			distance := int(math.Round(geo.DistanceHaversine(seg.Points[i], seg.Points[i+1])))
			alg.AddArc(from, to, distance)
			if !seg.OneWay {
				alg.AddArc(to, from, distance)
			}
		}
	}
	return alg
}
