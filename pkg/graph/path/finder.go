package path

import (
	"errors"

	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/queue"
)

// ErrUnreachable is returned if the target cannot be reached from the source.
// It is a regular search outcome, the returned path is nil in that case.
var ErrUnreachable = errors.New("target is not reachable from source")

// Finder computes shortest paths in unit cost graphs.
// A finder only holds immutable configuration, so it can be used by several goroutines at once.
type Finder[N graph.Node[N]] interface {
	Search(source, target N) ([]N, error)               // Compute a shortest path from source to target (both included)
	SearchWithKPIs(source, target N) (Result[N], error) // Like Search, but also reports the search statistics
	Name() string                                       // registry name of the algorithm
}

// Result of a single search
type Result[N any] struct {
	Path   []N        // nodes from source to target, nil if unreachable
	Length int        // number of edges (len(Path)-1), so 0 for source == target and -1 if unreachable
	KPIs   SearchKPIs // statistics of the search
}

type SearchKPIs struct {
	PqPops        int // number of pops from the open queues
	PqUpdates     int // number of inserts and priority decreases
	RelaxedEdges  int // number of edges which improved a label
	SettledNodes  int // number of expanded nodes
	RejectedNodes int // number of popped nodes which were discarded without expansion
}

type Direction bool

const (
	FORWARD  Direction = false
	BACKWARD Direction = true
)

func (d Direction) String() string {
	if d == FORWARD {
		return "FORWARD"
	}
	if d == BACKWARD {
		return "BACKWARD"
	}
	return "INVALID"
}

// returns (a, b) for the forward direction and (b, a) for the backward direction
func alignWithSearchDirection[T any](searchDirection Direction, a, b T) (T, T) {
	if searchDirection == FORWARD {
		return a, b
	} else if searchDirection == BACKWARD {
		return b, a
	}
	panic("Search direction not supported")
}

type options[N comparable] struct {
	queue      queue.IndexedMinPriorityQueue[N] // prototype, every frontier spawns its own queue
	debugLevel int                              // debug level for logging purpose
}

// Option configures a finder
type Option[N comparable] func(*options[N])

// WithQueue sets the queue prototype for the heuristic finders. The prototype itself is never filled.
func WithQueue[N comparable](prototype queue.IndexedMinPriorityQueue[N]) Option[N] {
	return func(o *options[N]) { o.queue = prototype }
}

// WithDebugLevel enables logging. 1: searches, 2: settled nodes, 3: relaxed edges
func WithDebugLevel[N comparable](level int) Option[N] {
	return func(o *options[N]) { o.debugLevel = level }
}

func newOptions[N comparable](opts []Option[N]) options[N] {
	o := options[N]{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.queue == nil {
		o.queue = queue.MustNewDaryHeap[N](queue.DEFAULT_DEGREE)
	}
	return o
}

func newResult[N any](path []N, kpis SearchKPIs) Result[N] {
	return Result[N]{Path: path, Length: len(path) - 1, KPIs: kpis}
}

func unreachable[N any](kpis SearchKPIs) (Result[N], error) {
	return Result[N]{Length: -1, KPIs: kpis}, ErrUnreachable
}

func trivialResult[N any](source N) Result[N] {
	return newResult([]N{source}, SearchKPIs{})
}

// heuristic or the zero heuristic if none is given
func heuristicOrZero[N graph.Node[N]](h graph.Heuristic[N]) graph.Heuristic[N] {
	if h == nil {
		return graph.ZeroHeuristic[N]{}
	}
	return h
}
