package graph

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Vertex is a node of an AdjacencyArrayGraph usable by the path finders.
// Two vertices are equal if they belong to the same graph and have the same id.
type Vertex struct {
	g  *AdjacencyArrayGraph
	id NodeId
}

func (v Vertex) Id() NodeId                  { return v.id }
func (v Vertex) Point() orb.Point            { return v.g.Nodes[v.id] }
func (v Vertex) Graph() *AdjacencyArrayGraph { return v.g }

func (v Vertex) Children() []Vertex {
	arcs := v.g.GetArcsFrom(v.id)
	children := make([]Vertex, len(arcs))
	for i, arc := range arcs {
		children[i] = Vertex{g: v.g, id: arc.To}
	}
	return children
}

func (v Vertex) Parents() []Vertex {
	arcs := v.g.GetArcsTo(v.id)
	parents := make([]Vertex, len(arcs))
	for i, arc := range arcs {
		parents[i] = Vertex{g: v.g, id: arc.To}
	}
	return parents
}

func (v Vertex) String() string {
	return fmt.Sprintf("%d", v.id)
}

// VertexIds maps a path of vertices to their node ids
func VertexIds(path []Vertex) []NodeId {
	ids := make([]NodeId, len(path))
	for i, v := range path {
		ids[i] = v.id
	}
	return ids
}
