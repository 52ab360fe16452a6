package graph

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// Node is a vertex of an implicit graph with unit edge costs.
// N is used as map key, so two nodes encoding the same state must compare equal.
type Node[N any] interface {
	comparable
	Children() []N // successors, used for forward expansion
	Parents() []N  // predecessors, used for backward expansion. Identical to Children for undirected graphs
}

// Heuristic estimates the remaining distance from a node to the current target.
type Heuristic[N any] interface {
	SetTarget(target N)
	// Estimate returns a non-negative lower bound of the distance from node to the target
	Estimate(node N) int
	// Spawn returns an independent, untargeted copy with its own scratch state.
	// Immutable precomputed data may be shared.
	Spawn() Heuristic[N]
}

// ZeroHeuristic turns the heuristic searches into plain (bidirectional) Dijkstra
type ZeroHeuristic[N any] struct{}

func (ZeroHeuristic[N]) SetTarget(N)         {}
func (ZeroHeuristic[N]) Estimate(N) int      { return 0 }
func (ZeroHeuristic[N]) Spawn() Heuristic[N] { return ZeroHeuristic[N]{} }

// IsValidPath checks that the path is not empty, starts at source, ends at target
// and that every step follows a child edge.
func IsValidPath[N Node[N]](source, target N, path []N) bool {
	if len(path) == 0 {
		return false
	}
	if path[0] != source || path[len(path)-1] != target {
		return false
	}
	for i := 0; i < len(path)-1; i++ {
		if !HasChild(path[i], path[i+1]) {
			return false
		}
	}
	return true
}

// HasChild reports whether child is a successor of node
func HasChild[N Node[N]](node, child N) bool {
	for _, c := range node.Children() {
		if c == child {
			return true
		}
	}
	return false
}

// PathLength returns the number of edges of the path, -1 for an empty path
func PathLength[N any](path []N) int {
	return len(path) - 1
}

type NodeId = int

// Graph is an explicit graph with geographic node positions
type Graph interface {
	GetNode(id NodeId) orb.Point
	GetNodes() []orb.Point
	GetArcsFrom(id NodeId) []Arc
	NodeCount() int
	ArcCount() int
	AsString() string
}

// DynamicGraph can be extended after creation
type DynamicGraph interface {
	Graph
	AddNode(n orb.Point)
	AddArc(from, to NodeId, distance int) bool
}

// GraphAsString writes the graph in fmi format
func GraphAsString(g Graph) string {
	var sb strings.Builder

	// write number of nodes and number of edges
	sb.WriteString(fmt.Sprintf("%v\n", g.NodeCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.ArcCount()))

	sb.WriteString("#Nodes\n")
	// list all nodes structured as "id lat lon"
	for i := 0; i < g.NodeCount(); i++ {
		node := g.GetNode(i)
		sb.WriteString(fmt.Sprintf("%v %v %v\n", i, node.Lat(), node.Lon()))
	}

	sb.WriteString("#Edges\n")
	// list all edges structured as "fromId targetId distance"
	for i := 0; i < g.NodeCount(); i++ {
		for _, arc := range g.GetArcsFrom(i) {
			sb.WriteString(fmt.Sprintf("%v %v %v\n", i, arc.Destination(), arc.Cost()))
		}
	}
	return sb.String()
}
