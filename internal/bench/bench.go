// Package bench runs every finder and queue configuration on seeded random puzzles
// and checks the results against a breadth first reference search.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/natevvv/graph-search/internal/store"
	"github.com/natevvv/graph-search/pkg/graph"
	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/natevvv/graph-search/pkg/puzzle"
	"github.com/natevvv/graph-search/pkg/queue"
	"golang.org/x/sync/errgroup"
)

// queue name of the finders which do not use a priority queue
const FIFO = "fifo"

var ErrNoPuzzles = errors.New("benchmark needs at least one puzzle")

// Options of a benchmark run
type Options struct {
	Runs       int // number of puzzles
	Degree     int
	Steps      int // random blank moves per puzzle
	Seed       uint64
	Navigators []string
	Queues     []QueueConfig
	Workers    int // puzzles solved in parallel, timings are only comparable with 1
	DebugLevel int
	OnMeasured func(store.Measurement) // optional progress callback, may be called concurrently
}

// QueueConfig is a priority queue kind together with the heap degree
type QueueConfig struct {
	Kind   queue.Kind
	Degree int // only used for DARY
}

func (qc QueueConfig) String() string {
	if qc.Kind == queue.DARY {
		return fmt.Sprintf("%v-%d", qc.Kind, qc.Degree)
	}
	return qc.Kind.String()
}

// QueueConfigs expands the queue kinds. Every d-ary entry is repeated for each heap degree
func QueueConfigs(kinds []string, heapDegrees []int) ([]QueueConfig, error) {
	configs := make([]QueueConfig, 0)
	for _, name := range kinds {
		kind, err := queue.ParseKind(name)
		if err != nil {
			return nil, err
		}
		if kind != queue.DARY {
			configs = append(configs, QueueConfig{Kind: kind})
			continue
		}
		for _, degree := range heapDegrees {
			if degree < 2 {
				return nil, fmt.Errorf("%w: got %d", queue.ErrInvalidDegree, degree)
			}
			configs = append(configs, QueueConfig{Kind: kind, Degree: degree})
		}
	}
	return configs, nil
}

// Report is the outcome of a benchmark run
type Report struct {
	Run          store.Run
	Measurements []store.Measurement
}

// Invalid counts the measurements which are not valid
func (r *Report) Invalid() int {
	invalid := 0
	for _, m := range r.Measurements {
		if !m.Valid {
			invalid++
		}
	}
	return invalid
}

// Puzzles creates the seeded scrambled puzzles of a run. Puzzle i only depends on the seed and i.
func Puzzles(degree, steps, count int, seed uint64) ([]puzzle.Node, error) {
	goal, err := puzzle.NewGoal(degree)
	if err != nil {
		return nil, err
	}
	puzzles := make([]puzzle.Node, count)
	for i := range puzzles {
		rng := rand.New(rand.NewPCG(seed, uint64(i)))
		puzzles[i] = goal.Scramble(rng, steps)
	}
	return puzzles, nil
}

// Run solves every puzzle with every finder and queue configuration.
// The breadth first search is the reference for the optimal number of moves.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Runs <= 0 {
		return nil, ErrNoPuzzles
	}
	for _, navigator := range opts.Navigators {
		if _, err := path.NewFinder[puzzle.Node](navigator, nil); err != nil {
			return nil, err
		}
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	startedAt := time.Now()

	puzzles, err := Puzzles(opts.Degree, opts.Steps, opts.Runs, opts.Seed)
	if err != nil {
		return nil, err
	}
	goal, err := puzzle.NewGoal(opts.Degree)
	if err != nil {
		return nil, err
	}

	perPuzzle := make([][]store.Measurement, len(puzzles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, source := range puzzles {
		g.Go(func() error {
			measurements, err := runPuzzle(ctx, opts, i, source, goal)
			if err != nil {
				return fmt.Errorf("puzzle %d: %w", i, err)
			}
			perPuzzle[i] = measurements
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Run: store.Run{
		StartedAt: startedAt,
		Seed:      opts.Seed,
		Degree:    opts.Degree,
		Steps:     opts.Steps,
		Puzzles:   len(puzzles),
	}}
	for _, measurements := range perPuzzle {
		report.Measurements = append(report.Measurements, measurements...)
	}
	return report, nil
}

func runPuzzle(ctx context.Context, opts Options, index int, source, goal puzzle.Node) ([]store.Measurement, error) {
	reference, err := path.NewBFSFinder[puzzle.Node]().Search(source, goal)
	if err != nil {
		return nil, fmt.Errorf("reference search: %w", err)
	}
	referenceMoves := len(reference) - 1
	if opts.DebugLevel >= 1 {
		log.Printf("Puzzle %d needs %d moves\n%v", index, referenceMoves, source)
	}

	measurements := make([]store.Measurement, 0)
	for _, navigator := range opts.Navigators {
		queues := []*QueueConfig{nil}
		if path.IsHeuristic(navigator) {
			queues = queues[:0]
			for i := range opts.Queues {
				queues = append(queues, &opts.Queues[i])
			}
		}
		for _, qc := range queues {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			finderOpts := []path.Option[puzzle.Node]{path.WithDebugLevel[puzzle.Node](opts.DebugLevel - 1)}
			queueName := FIFO
			if qc != nil {
				prototype, err := queue.New[puzzle.Node](qc.Kind, qc.Degree)
				if err != nil {
					return nil, err
				}
				finderOpts = append(finderOpts, path.WithQueue(prototype))
				queueName = qc.String()
			}
			finder, err := path.NewFinder[puzzle.Node](navigator, puzzle.NewManhattanHeuristic(), finderOpts...)
			if err != nil {
				return nil, err
			}

			m := measure(finder, source, goal, referenceMoves)
			m.Puzzle = index
			m.Queue = queueName
			if opts.DebugLevel >= 1 && !m.Valid {
				log.Printf("Puzzle %d: %v with %v is invalid, has %d moves, reference %d", index, navigator, queueName, m.Moves, referenceMoves)
			}
			if opts.OnMeasured != nil {
				opts.OnMeasured(m)
			}
			measurements = append(measurements, m)
		}
	}
	return measurements, nil
}

func measure(finder path.Finder[puzzle.Node], source, goal puzzle.Node, referenceMoves int) store.Measurement {
	start := time.Now()
	result, err := finder.SearchWithKPIs(source, goal)
	elapsed := time.Since(start)

	m := store.Measurement{
		Navigator:     finder.Name(),
		Moves:         result.Length,
		Duration:      elapsed,
		PqPops:        result.KPIs.PqPops,
		PqUpdates:     result.KPIs.PqUpdates,
		RelaxedEdges:  result.KPIs.RelaxedEdges,
		SettledNodes:  result.KPIs.SettledNodes,
		RejectedNodes: result.KPIs.RejectedNodes,
	}
	m.Valid = err == nil && result.Length == referenceMoves && graph.IsValidPath(source, goal, result.Path)
	return m
}

// Summarize aggregates measurements per finder and queue configuration, in order of first appearance
func Summarize(measurements []store.Measurement) []store.Summary {
	type key struct{ navigator, queue string }
	index := make(map[key]int)
	summaries := make([]store.Summary, 0)
	durations := make([]time.Duration, 0)

	for _, m := range measurements {
		k := key{m.Navigator, m.Queue}
		i, ok := index[k]
		if !ok {
			i = len(summaries)
			index[k] = i
			summaries = append(summaries, store.Summary{Navigator: m.Navigator, Queue: m.Queue})
			durations = append(durations, 0)
		}
		s := &summaries[i]
		s.Count++
		if !m.Valid {
			s.Invalid++
		}
		durations[i] += m.Duration
		s.AveragePqPops += float64(m.PqPops)
		s.AveragePqUpdates += float64(m.PqUpdates)
		s.AverageRelaxed += float64(m.RelaxedEdges)
		s.AverageSettled += float64(m.SettledNodes)
		s.AverageRejected += float64(m.RejectedNodes)
	}

	for i := range summaries {
		s := &summaries[i]
		n := float64(s.Count)
		s.AverageDuration = durations[i] / time.Duration(s.Count)
		s.AveragePqPops /= n
		s.AveragePqUpdates /= n
		s.AverageRelaxed /= n
		s.AverageSettled /= n
		s.AverageRejected /= n
	}
	return summaries
}
