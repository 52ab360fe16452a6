package graph

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Implementation for static graphs.
// Besides the forward arcs it stores the reversed arcs, so that backward searches can enumerate the predecessors.
type AdjacencyArrayGraph struct {
	Nodes          []orb.Point
	arcs           []Arc
	Offsets        []int
	reverseArcs    []Arc // Arc.To holds the tail of the original arc
	reverseOffsets []int
}

// Create an AdjacencyArrayGraph from the given graph
func NewAdjacencyArrayFromGraph(g Graph) *AdjacencyArrayGraph {
	nodes := make([]orb.Point, 0, g.NodeCount())
	arcs := make([]Arc, 0, g.ArcCount())
	offsets := make([]int, g.NodeCount()+1)

	for i := 0; i < g.NodeCount(); i++ {
		// add node
		nodes = append(nodes, g.GetNode(i))

		// add all edges of node
		arcs = append(arcs, g.GetArcsFrom(i)...)

		// set stop-offset
		offsets[i+1] = len(arcs)
	}

	// counting sort of the arcs by their head
	reverseOffsets := make([]int, g.NodeCount()+1)
	for _, arc := range arcs {
		reverseOffsets[arc.To+1]++
	}
	for i := 1; i < len(reverseOffsets); i++ {
		reverseOffsets[i] += reverseOffsets[i-1]
	}
	reverseArcs := make([]Arc, len(arcs))
	next := make([]int, g.NodeCount())
	copy(next, reverseOffsets[:g.NodeCount()])
	for from := 0; from < g.NodeCount(); from++ {
		for _, arc := range arcs[offsets[from]:offsets[from+1]] {
			reverseArcs[next[arc.To]] = MakeArc(from, arc.Distance)
			next[arc.To]++
		}
	}

	return &AdjacencyArrayGraph{Nodes: nodes, arcs: arcs, Offsets: offsets, reverseArcs: reverseArcs, reverseOffsets: reverseOffsets}
}

func (aag *AdjacencyArrayGraph) checkNode(id NodeId) {
	if id < 0 || id >= aag.NodeCount() {
		panic(fmt.Sprintf("NodeId %d is not contained in the graph.", id))
	}
}

// Get the node for the given id
func (aag *AdjacencyArrayGraph) GetNode(id NodeId) orb.Point {
	aag.checkNode(id)
	return aag.Nodes[id]
}

// get all nodes of the graph
func (aag *AdjacencyArrayGraph) GetNodes() []orb.Point {
	return aag.Nodes
}

// Get the Arcs for the given node id
func (aag *AdjacencyArrayGraph) GetArcsFrom(id NodeId) []Arc {
	aag.checkNode(id)
	return aag.arcs[aag.Offsets[id]:aag.Offsets[id+1]]
}

// Get the reversed arcs ending in the given node id. Arc.To is the tail of the original arc
func (aag *AdjacencyArrayGraph) GetArcsTo(id NodeId) []Arc {
	aag.checkNode(id)
	return aag.reverseArcs[aag.reverseOffsets[id]:aag.reverseOffsets[id+1]]
}

// Returns the number of Nodes in the graph
func (aag *AdjacencyArrayGraph) NodeCount() int {
	return len(aag.Nodes)
}

// Returns the total number of arcs in the graph
func (aag *AdjacencyArrayGraph) ArcCount() int {
	return len(aag.arcs)
}

// Returns a human readable string of the graph
func (aag *AdjacencyArrayGraph) AsString() string {
	return GraphAsString(aag)
}

// Vertex returns the search node for the given id
func (aag *AdjacencyArrayGraph) Vertex(id NodeId) Vertex {
	aag.checkNode(id)
	return Vertex{g: aag, id: id}
}

// ArcDistance returns the distance of the arc from -> to, false if there is no such arc
func (aag *AdjacencyArrayGraph) ArcDistance(from, to NodeId) (int, bool) {
	for _, arc := range aag.GetArcsFrom(from) {
		if arc.To == to {
			return arc.Distance, true
		}
	}
	return 0, false
}
