package path

import (
	"math"

	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/queue"
)

const maxDistance = math.MaxInt

// fifo frontier of a (bidirectional) breadth first search
type bfsFrontier[N graph.Node[N]] struct {
	direction Direction
	fifo      []N
	parents   map[N]N
	distance  map[N]int
}

func newBfsFrontier[N graph.Node[N]](direction Direction, origin N) *bfsFrontier[N] {
	return &bfsFrontier[N]{
		direction: direction,
		fifo:      []N{origin},
		parents:   map[N]N{origin: origin},
		distance:  map[N]int{origin: 0},
	}
}

func (fr *bfsFrontier[N]) isEmpty() bool { return len(fr.fifo) == 0 }
func (fr *bfsFrontier[N]) head() N       { return fr.fifo[0] }

func (fr *bfsFrontier[N]) pop() N {
	node := fr.fifo[0]
	var zero N
	fr.fifo[0] = zero
	fr.fifo = fr.fifo[1:]
	return node
}

// label the unseen node next with the distance via current. Returns false if next was already seen
func (fr *bfsFrontier[N]) discover(current, next N) bool {
	if _, ok := fr.distance[next]; ok {
		return false
	}
	fr.distance[next] = fr.distance[current] + 1
	fr.parents[next] = current
	fr.fifo = append(fr.fifo, next)
	return true
}

// open/closed frontier of the heuristic searches
type frontier[N graph.Node[N]] struct {
	direction Direction
	open      queue.IndexedMinPriorityQueue[N]
	parents   map[N]N
	distance  map[N]int
	closed    map[N]struct{} // may be shared between both directions
	heuristic graph.Heuristic[N]
	f         int // minimum priority of the open queue, updated by the finders which need it
}

// Create a frontier starting at origin which estimates the distance to goal.
// The queue and the heuristic are spawned from the given prototypes.
func newFrontier[N graph.Node[N]](direction Direction, origin, goal N, prototype queue.IndexedMinPriorityQueue[N], h graph.Heuristic[N], closed map[N]struct{}) *frontier[N] {
	heuristic := h.Spawn()
	heuristic.SetTarget(goal)

	open := prototype.Spawn()
	open.Insert(origin, heuristic.Estimate(origin))

	if closed == nil {
		closed = make(map[N]struct{})
	}
	return &frontier[N]{
		direction: direction,
		open:      open,
		parents:   map[N]N{origin: origin},
		distance:  map[N]int{origin: 0},
		closed:    closed,
		heuristic: heuristic,
	}
}

func neighbours[N graph.Node[N]](direction Direction, node N) []N {
	if direction == FORWARD {
		return node.Children()
	}
	return node.Parents()
}

func (fr *frontier[N]) isClosed(node N) bool {
	_, ok := fr.closed[node]
	return ok
}

func (fr *frontier[N]) close(node N) { fr.closed[node] = struct{}{} }

// distance plus estimate of the node
func (fr *frontier[N]) fScore(node N) int {
	return fr.distance[node] + fr.heuristic.Estimate(node)
}

// refresh the cached minimum priority, keeps the old value if the queue ran empty
func (fr *frontier[N]) refreshF() {
	if !fr.open.IsEmpty() {
		fr.f = fr.open.MinPriority()
	}
}

// Label next with the distance via current if that is shorter than the known one.
// Returns whether the label improved.
func (fr *frontier[N]) relax(current, next N, kpis *SearchKPIs) bool {
	distance := fr.distance[current] + 1
	if known, ok := fr.distance[next]; ok && known <= distance {
		return false
	}
	fr.distance[next] = distance
	fr.parents[next] = current

	priority := distance + fr.heuristic.Estimate(next)
	if fr.open.Contains(next) {
		fr.open.DecreasePriority(next, priority)
	} else {
		fr.open.Insert(next, priority)
	}
	kpis.RelaxedEdges++
	kpis.PqUpdates++
	return true
}

// keeps track of the best connection between both directions
type touch[N comparable] struct {
	node     N
	found    bool
	distance int
}

func newTouch[N comparable]() touch[N] {
	return touch[N]{distance: maxDistance}
}

// update the connection if the node connects both directions with a shorter distance
func (t *touch[N]) update(node N, distance int) bool {
	if distance >= t.distance {
		return false
	}
	t.node = node
	t.found = true
	t.distance = distance
	return true
}
