package graph

import (
	"testing"
)

// a directed triangle 0 -> 1 -> 2 -> 0 plus 0 -> 2
const directedFmi = `3
4
0 0 0
1 0 1
2 1 1
0 1 1
1 2 1
2 0 1
0 2 1
`

func loadDirected(t *testing.T) *AdjacencyArrayGraph {
	t.Helper()
	aag, err := NewAdjacencyArrayFromFmiString(directedFmi)
	if err != nil {
		t.Fatalf("failed to parse graph: %v", err)
	}
	return aag
}

func idSet(vertices []Vertex) map[NodeId]bool {
	ids := make(map[NodeId]bool)
	for _, v := range vertices {
		ids[v.Id()] = true
	}
	return ids
}

func TestVertexNeighbours(t *testing.T) {
	aag := loadDirected(t)

	children := idSet(aag.Vertex(0).Children())
	if len(children) != 2 || !children[1] || !children[2] {
		t.Errorf("wrong children of 0: %v", children)
	}
	parents := idSet(aag.Vertex(2).Parents())
	if len(parents) != 2 || !parents[0] || !parents[1] {
		t.Errorf("wrong parents of 2: %v", parents)
	}
	parents = idSet(aag.Vertex(0).Parents())
	if len(parents) != 1 || !parents[2] {
		t.Errorf("wrong parents of 0: %v", parents)
	}
}

func TestReverseArcsMirrorForwardArcs(t *testing.T) {
	alg, err := NewAdjacencyListFromFmiString(cuttableGraph)
	if err != nil {
		t.Fatal(err)
	}
	aag := NewAdjacencyArrayFromGraph(alg)
	reverseCount := 0
	for to := 0; to < aag.NodeCount(); to++ {
		for _, arc := range aag.GetArcsTo(to) {
			reverseCount++
			distance, ok := aag.ArcDistance(arc.To, to)
			if !ok || distance != arc.Distance {
				t.Errorf("reverse arc %v <- %v has no forward counterpart", to, arc.To)
			}
		}
	}
	if reverseCount != aag.ArcCount() {
		t.Errorf("reverse arc count is %v, should be %v", reverseCount, aag.ArcCount())
	}
}

func TestVertexEquality(t *testing.T) {
	aag := loadDirected(t)
	if aag.Vertex(1) != aag.Vertex(1) {
		t.Errorf("same id should give equal vertices")
	}
	other := loadDirected(t)
	if aag.Vertex(1) == other.Vertex(1) {
		t.Errorf("vertices of different graphs should differ")
	}
}

func TestIsValidPath(t *testing.T) {
	aag := loadDirected(t)
	v := aag.Vertex

	tests := []struct {
		name   string
		path   []Vertex
		target Vertex
		valid  bool
	}{
		{"direct", []Vertex{v(0), v(2)}, v(2), true},
		{"detour", []Vertex{v(0), v(1), v(2)}, v(2), true},
		{"trivial", []Vertex{v(0)}, v(0), true},
		{"against direction", []Vertex{v(0), v(1), v(0)}, v(0), false},
		{"wrong target", []Vertex{v(0), v(1)}, v(2), false},
		{"empty", []Vertex{}, v(2), false},
	}
	for _, test := range tests {
		if got := IsValidPath(v(0), test.target, test.path); got != test.valid {
			t.Errorf("%s: IsValidPath is %v, should be %v", test.name, got, test.valid)
		}
	}
	if PathLength([]Vertex{v(0), v(1), v(2)}) != 2 {
		t.Errorf("wrong path length")
	}
	if PathLength([]Vertex{}) != -1 {
		t.Errorf("empty path should have length -1")
	}
}

func TestHopHeuristic(t *testing.T) {
	aag := loadDirected(t)
	h := NewHopHeuristic(aag)
	if h.MaxArcLength() <= 0 {
		t.Fatalf("max arc length should be positive")
	}
	h.SetTarget(aag.Vertex(2))
	if e := h.Estimate(aag.Vertex(2)); e != 0 {
		t.Errorf("estimate of the target is %v, should be 0", e)
	}
	// 0 -> 2 is a single arc
	if e := h.Estimate(aag.Vertex(0)); e > 1 {
		t.Errorf("estimate %v overestimates the single hop 0 -> 2", e)
	}

	spawned := h.Spawn()
	if e := spawned.Estimate(aag.Vertex(0)); e != 0 {
		t.Errorf("untargeted spawn should estimate 0, got %v", e)
	}
}
