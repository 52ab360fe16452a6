package path

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/puzzle"
	"github.com/natevvv/graph-search/pkg/queue"
)

const graphFmi = `10
26
# nodes
0 0 0
1 0 1
2 0 2
3 1 0
4 1 1
5 1 2
6 2 0
7 2 1
8 2 2
9 3 3
# edges
0 1 1
0 3 1
1 0 1
1 2 1
1 4 1
2 1 1
2 5 1
3 0 1
3 4 1
3 6 1
4 1 1
4 3 1
4 5 1
4 7 1
5 2 1
5 4 1
5 8 1
6 3 1
6 7 1
7 4 1
7 6 1
7 8 1
8 5 1
8 7 1
8 9 1
9 8 1`

// two components {0, 1, 2, 5} and {3, 4}, the arcs 0 -> 2 -> 5 -> 0 are one way
const disconnectedFmi = `6
9
0 0 0
1 0 1
2 0 2
3 5 0
4 5 1
5 0 3
0 1 1
1 0 1
1 2 1
2 1 1
3 4 1
4 3 1
2 5 1
5 0 1
0 2 1`

func loadGraph(t testing.TB, fmi string) *graph.AdjacencyArrayGraph {
	t.Helper()
	aag, err := graph.NewAdjacencyArrayFromFmiString(fmi)
	if err != nil {
		t.Fatalf("failed to parse graph: %v", err)
	}
	return aag
}

type queueFactory[N comparable] struct {
	name string
	new  func() queue.IndexedMinPriorityQueue[N]
}

func queueFactories[N comparable]() []queueFactory[N] {
	return []queueFactory[N]{
		{"dary-2", func() queue.IndexedMinPriorityQueue[N] { return queue.MustNewDaryHeap[N](2) }},
		{"dary-3", func() queue.IndexedMinPriorityQueue[N] { return queue.MustNewDaryHeap[N](3) }},
		{"dary-4", func() queue.IndexedMinPriorityQueue[N] { return queue.MustNewDaryHeap[N](4) }},
		{"bucket", func() queue.IndexedMinPriorityQueue[N] { return queue.NewBucketQueue[N]() }},
		{"binary", func() queue.IndexedMinPriorityQueue[N] { return queue.NewBinaryHeap[N]() }},
	}
}

// all finders with every queue for the heuristic ones
func allFinders[N graph.Node[N]](t testing.TB, h graph.Heuristic[N]) []Finder[N] {
	t.Helper()
	finders := []Finder[N]{NewBFSFinder[N](), NewBidirectionalBFSFinder[N]()}
	for _, name := range FinderNames() {
		if !IsHeuristic(name) {
			continue
		}
		for _, factory := range queueFactories[N]() {
			finder, err := NewFinder(name, h, WithQueue(factory.new()))
			if err != nil {
				t.Fatalf("failed to create %v: %v", name, err)
			}
			finders = append(finders, finder)
		}
	}
	return finders
}

// reference distances of a breadth first search over the children
func referenceDistances[N graph.Node[N]](source N) map[N]int {
	distances := map[N]int{source: 0}
	fifo := []N{source}
	for len(fifo) > 0 {
		current := fifo[0]
		fifo = fifo[1:]
		for _, child := range current.Children() {
			if _, ok := distances[child]; !ok {
				distances[child] = distances[current] + 1
				fifo = append(fifo, child)
			}
		}
	}
	return distances
}

func TestGraphPath(t *testing.T) {
	aag := loadGraph(t, graphFmi)
	source, target := aag.Vertex(0), aag.Vertex(9)
	for _, finder := range allFinders[graph.Vertex](t, graph.NewHopHeuristic(aag)) {
		result, err := finder.SearchWithKPIs(source, target)
		if err != nil {
			t.Errorf("%v: unexpected error %v", finder.Name(), err)
			continue
		}
		if result.Length != 5 {
			t.Errorf("%v: length is %v. Should be 5", finder.Name(), result.Length)
		}
		if !graph.IsValidPath(source, target, result.Path) {
			t.Errorf("%v: invalid path %v", finder.Name(), graph.VertexIds(result.Path))
		}
		if result.KPIs.PqPops == 0 || result.KPIs.SettledNodes == 0 {
			t.Errorf("%v: search without pops %+v", finder.Name(), result.KPIs)
		}
	}
}

func TestAllPairsAgreeWithReference(t *testing.T) {
	for name, fmi := range map[string]string{"grid": graphFmi, "disconnected": disconnectedFmi} {
		aag := loadGraph(t, fmi)
		finders := allFinders[graph.Vertex](t, graph.NewHopHeuristic(aag))
		for s := 0; s < aag.NodeCount(); s++ {
			source := aag.Vertex(s)
			reference := referenceDistances(source)
			for d := 0; d < aag.NodeCount(); d++ {
				target := aag.Vertex(d)
				expected, reachable := reference[target]
				for _, finder := range finders {
					path, err := finder.Search(source, target)
					if !reachable {
						if !errors.Is(err, ErrUnreachable) || path != nil {
							t.Errorf("%v %v: %v -> %v should be unreachable, got %v (%v)", name, finder.Name(), s, d, graph.VertexIds(path), err)
						}
						continue
					}
					if err != nil {
						t.Errorf("%v %v: %v -> %v failed: %v", name, finder.Name(), s, d, err)
						continue
					}
					if !graph.IsValidPath(source, target, path) {
						t.Errorf("%v %v: invalid path %v", name, finder.Name(), graph.VertexIds(path))
					}
					if graph.PathLength(path) != expected {
						t.Errorf("%v %v: %v -> %v has length %v, should be %v", name, finder.Name(), s, d, graph.PathLength(path), expected)
					}
				}
			}
		}
	}
}

func TestTrivialPath(t *testing.T) {
	aag := loadGraph(t, graphFmi)
	node := aag.Vertex(4)
	for _, finder := range allFinders[graph.Vertex](t, graph.NewHopHeuristic(aag)) {
		result, err := finder.SearchWithKPIs(node, node)
		if err != nil || len(result.Path) != 1 || result.Path[0] != node || result.Length != 0 {
			t.Errorf("%v: trivial search returned %v, %v", finder.Name(), graph.VertexIds(result.Path), err)
		}
		if result.KPIs != (SearchKPIs{}) {
			t.Errorf("%v: trivial search should not touch a queue, %+v", finder.Name(), result.KPIs)
		}
	}
}

func TestUnreachable(t *testing.T) {
	aag := loadGraph(t, disconnectedFmi)
	for _, finder := range allFinders[graph.Vertex](t, graph.NewHopHeuristic(aag)) {
		result, err := finder.SearchWithKPIs(aag.Vertex(0), aag.Vertex(4))
		if !errors.Is(err, ErrUnreachable) {
			t.Errorf("%v: expected ErrUnreachable, got %v", finder.Name(), err)
		}
		if result.Path != nil || result.Length != -1 {
			t.Errorf("%v: unreachable search returned path %v", finder.Name(), graph.VertexIds(result.Path))
		}
	}
}

func TestDirectedArcs(t *testing.T) {
	aag := loadGraph(t, disconnectedFmi)
	for _, finder := range allFinders[graph.Vertex](t, graph.NewHopHeuristic(aag)) {
		// 5 -> 0 is one way, the way back needs 0 -> 2 -> 5
		path, err := finder.Search(aag.Vertex(5), aag.Vertex(0))
		if err != nil || graph.PathLength(path) != 1 {
			t.Errorf("%v: 5 -> 0 returned %v, %v", finder.Name(), graph.VertexIds(path), err)
		}
		path, err = finder.Search(aag.Vertex(0), aag.Vertex(5))
		if err != nil || graph.PathLength(path) != 2 {
			t.Errorf("%v: 0 -> 5 returned %v, %v", finder.Name(), graph.VertexIds(path), err)
		}
	}
}

func scrambledPuzzles(t testing.TB, degree, count, steps int, seed uint64) (puzzle.Node, []puzzle.Node) {
	t.Helper()
	goal, err := puzzle.NewGoal(degree)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	sources := make([]puzzle.Node, count)
	for i := range sources {
		sources[i] = goal.Scramble(rng, steps)
	}
	return goal, sources
}

func TestPuzzleAgreement(t *testing.T) {
	goal, sources := scrambledPuzzles(t, 3, 8, 40, 42)
	reference := referenceDistances(goal)

	finders := allFinders[puzzle.Node](t, puzzle.NewManhattanHeuristic())
	for _, source := range sources {
		expected := reference[source]
		for _, finder := range finders {
			path, err := finder.Search(source, goal)
			if err != nil {
				t.Errorf("%v: failed to solve\n%v%v", finder.Name(), source, err)
				continue
			}
			if !graph.IsValidPath(source, goal, path) {
				t.Errorf("%v: invalid path", finder.Name())
			}
			if graph.PathLength(path) != expected {
				t.Errorf("%v: length is %v, should be %v", finder.Name(), graph.PathLength(path), expected)
			}
		}
	}
}

func TestPuzzleUnsolvable(t *testing.T) {
	goal, err := puzzle.NewGoal(2)
	if err != nil {
		t.Fatal(err)
	}
	source := goal.RandomSwap(rand.New(rand.NewPCG(7, 7)))
	for _, finder := range allFinders[puzzle.Node](t, puzzle.NewManhattanHeuristic()) {
		if _, err := finder.Search(source, goal); !errors.Is(err, ErrUnreachable) {
			t.Errorf("%v: expected ErrUnreachable, got %v", finder.Name(), err)
		}
	}
}

func TestRepeatedSearches(t *testing.T) {
	goal, sources := scrambledPuzzles(t, 3, 3, 30, 3)
	for _, finder := range allFinders[puzzle.Node](t, puzzle.NewManhattanHeuristic()) {
		for _, source := range sources {
			first, err1 := finder.Search(source, goal)
			second, err2 := finder.Search(source, goal)
			if err1 != nil || err2 != nil || len(first) != len(second) {
				t.Errorf("%v: repeated searches differ: %v vs %v", finder.Name(), len(first), len(second))
			}
		}
	}
}

func TestConcurrentSearches(t *testing.T) {
	goal, sources := scrambledPuzzles(t, 3, 6, 30, 11)
	reference := referenceDistances(goal)
	finder := NewNBAFinder[puzzle.Node](puzzle.NewManhattanHeuristic())

	var wg sync.WaitGroup
	errs := make(chan error, len(sources))
	for _, source := range sources {
		wg.Add(1)
		go func(source puzzle.Node) {
			defer wg.Done()
			path, err := finder.Search(source, goal)
			if err != nil {
				errs <- err
				return
			}
			if graph.PathLength(path) != reference[source] {
				errs <- fmt.Errorf("length is %v, should be %v", graph.PathLength(path), reference[source])
			}
		}(source)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestNewFinder(t *testing.T) {
	for _, name := range FinderNames() {
		finder, err := NewFinder[puzzle.Node](name, nil)
		if err != nil {
			t.Errorf("%v: %v", name, err)
			continue
		}
		if finder.Name() != name {
			t.Errorf("finder name is %v, should be %v", finder.Name(), name)
		}
	}
	if _, err := NewFinder[puzzle.Node]("dijkstra", nil); !errors.Is(err, ErrUnknownFinder) {
		t.Errorf("expected ErrUnknownFinder, got %v", err)
	}
}

func BenchmarkPuzzleFinders(b *testing.B) {
	goal, sources := scrambledPuzzles(b, 3, 4, 60, 5)
	for _, name := range FinderNames() {
		finder, err := NewFinder[puzzle.Node](name, puzzle.NewManhattanHeuristic())
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := finder.Search(sources[i%len(sources)], goal); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
