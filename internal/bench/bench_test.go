package bench

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/natevvv/graph-search/internal/store"
	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/natevvv/graph-search/pkg/queue"
)

func TestQueueConfigs(t *testing.T) {
	configs, err := QueueConfigs([]string{"dary", "bucket", "binary"}, []int{2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0)
	for _, qc := range configs {
		names = append(names, qc.String())
	}
	expected := "dary-2 dary-3 dary-4 bucket binary"
	if strings.Join(names, " ") != expected {
		t.Errorf("Queue configs are %v, should be %v", names, expected)
	}

	if _, err := QueueConfigs([]string{"fibonacci"}, nil); !errors.Is(err, queue.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	if _, err := QueueConfigs([]string{"dary"}, []int{1}); !errors.Is(err, queue.ErrInvalidDegree) {
		t.Errorf("expected ErrInvalidDegree, got %v", err)
	}
}

func TestPuzzlesAreSeeded(t *testing.T) {
	first, err := Puzzles(3, 30, 5, 11)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := Puzzles(3, 30, 8, 11)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Puzzle %d differs between runs with the same seed", i)
		}
		if !first[i].IsSolvable() {
			t.Errorf("Puzzle %d is not solvable", i)
		}
	}
}

func TestRun(t *testing.T) {
	queues, _ := QueueConfigs([]string{"dary", "bucket", "binary"}, []int{2, 4})
	var measured atomic.Int64
	opts := Options{
		Runs:       4,
		Degree:     3,
		Steps:      25,
		Seed:       3,
		Navigators: path.FinderNames(),
		Queues:     queues,
		Workers:    2,
		OnMeasured: func(store.Measurement) { measured.Add(1) },
	}

	report, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// two plain finders with the fifo queue, three heuristic finders with every queue
	perPuzzle := 2 + 3*len(queues)
	if len(report.Measurements) != opts.Runs*perPuzzle {
		t.Errorf("Got %v measurements, should be %v", len(report.Measurements), opts.Runs*perPuzzle)
	}
	if int(measured.Load()) != len(report.Measurements) {
		t.Errorf("Callback was called %v times, should be %v", measured.Load(), len(report.Measurements))
	}
	if report.Invalid() != 0 {
		for _, m := range report.Measurements {
			if !m.Valid {
				t.Errorf("Invalid measurement %+v", m)
			}
		}
	}
	if report.Run.Puzzles != opts.Runs || report.Run.Seed != opts.Seed {
		t.Errorf("Run is %+v", report.Run)
	}
	for i, m := range report.Measurements {
		if m.Puzzle != i/perPuzzle {
			t.Errorf("Measurement %d belongs to puzzle %v, should be %v", i, m.Puzzle, i/perPuzzle)
		}
	}

	summaries := Summarize(report.Measurements)
	if len(summaries) != perPuzzle {
		t.Errorf("Got %v summaries, should be %v", len(summaries), perPuzzle)
	}
	for _, s := range summaries {
		if s.Count != opts.Runs {
			t.Errorf("Summary of %v/%v counts %v runs, should be %v", s.Navigator, s.Queue, s.Count, opts.Runs)
		}
	}

	var out bytes.Buffer
	if err := WriteSummary(&out, summaries); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "bidirectional-astar") || !strings.Contains(out.String(), "dary-4") {
		t.Errorf("Summary misses rows:\n%v", out.String())
	}
}

func TestRunInvalidOptions(t *testing.T) {
	if _, err := Run(context.Background(), Options{Degree: 3, Navigators: []string{path.BFS}}); !errors.Is(err, ErrNoPuzzles) {
		t.Errorf("expected ErrNoPuzzles, got %v", err)
	}
	if _, err := Run(context.Background(), Options{Runs: 1, Degree: 3, Navigators: []string{"dijkstra"}}); !errors.Is(err, path.ErrUnknownFinder) {
		t.Errorf("expected ErrUnknownFinder, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Runs: 2, Degree: 3, Steps: 10, Navigators: []string{path.BFS}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	measurements := []store.Measurement{
		{Navigator: "nba", Queue: "bucket", Valid: true, Duration: 2 * time.Millisecond, PqPops: 4},
		{Navigator: "bfs", Queue: FIFO, Valid: true, Duration: time.Millisecond},
		{Navigator: "nba", Queue: "bucket", Valid: false, Duration: 4 * time.Millisecond, PqPops: 8},
	}
	summaries := Summarize(measurements)
	if len(summaries) != 2 {
		t.Fatalf("Got %v summaries, should be 2", len(summaries))
	}
	nba := summaries[0]
	if nba.Navigator != "nba" || nba.Count != 2 || nba.Invalid != 1 {
		t.Errorf("Summary is %+v", nba)
	}
	if nba.AverageDuration != 3*time.Millisecond || nba.AveragePqPops != 6 {
		t.Errorf("Averages are %+v", nba)
	}
}
