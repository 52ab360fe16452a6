package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/natevvv/graph-search/internal/bench"
	"github.com/natevvv/graph-search/internal/store"
	"github.com/spf13/cobra"
)

// benchmarkCmd represents the benchmark command
var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Compare all finders and queues on random puzzles",
	Long: `Run every finder on seeded random puzzles and compare the results with a
breadth first reference search. The heuristic finders run once per queue
configuration, every d-ary entry is repeated for each heap degree.

Runs are stored in a SQLite database unless --no-store is given.

Examples:
  pathfinder benchmark                             # Configured defaults
  pathfinder benchmark --runs 50 --degree 3 --steps 60
  pathfinder benchmark --navigators astar,nba --queues dary --heap-degrees 2,8
  pathfinder benchmark --history                   # List stored runs
  pathfinder benchmark --show 3                    # Summary of a stored run`,
	RunE: runBenchmark,
}

var (
	benchNavigators  []string
	benchQueues      []string
	benchHeapDegrees []int
	benchWorkers     int
	benchNoStore     bool
	benchHistory     bool
	benchShow        int64
)

func init() {
	rootCmd.AddCommand(benchmarkCmd)

	benchmarkCmd.Flags().Int("runs", 10, "Number of puzzles")
	benchmarkCmd.Flags().Int("degree", 3, "Width of the puzzles")
	benchmarkCmd.Flags().Int("steps", 40, "Random blank moves per puzzle")
	benchmarkCmd.Flags().Uint64("seed", 1, "Seed of the puzzles")
	benchmarkCmd.Flags().StringSliceVar(&benchNavigators, "navigators", nil, "Finders to compare (default: configured finders)")
	benchmarkCmd.Flags().StringSliceVar(&benchQueues, "queues", nil, "Queue kinds of the heuristic finders (default: configured queues)")
	benchmarkCmd.Flags().IntSliceVar(&benchHeapDegrees, "heap-degrees", nil, "Degrees of the d-ary heaps (default: configured degrees)")
	benchmarkCmd.Flags().IntVar(&benchWorkers, "workers", 1, "Puzzles solved in parallel")
	benchmarkCmd.Flags().String("db", "", "Benchmark database (default: configured database)")
	benchmarkCmd.Flags().BoolVar(&benchNoStore, "no-store", false, "Do not store the run")
	benchmarkCmd.Flags().BoolVar(&benchHistory, "history", false, "List stored runs")
	benchmarkCmd.Flags().Int64Var(&benchShow, "show", 0, "Print the summary of a stored run")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	dbPath := stringFlag(cmd, "db", cfg.Benchmark.Database)

	if benchHistory || benchShow != 0 {
		s, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		if benchHistory {
			return printHistory(cmd, s)
		}
		return printStoredSummary(cmd, s, benchShow)
	}

	navigators := cfg.Benchmark.Navigators
	if len(benchNavigators) > 0 {
		navigators = benchNavigators
	}
	for _, navigator := range navigators {
		if err := validateNavigator(navigator); err != nil {
			return err
		}
	}
	kinds := cfg.Benchmark.Queues
	if len(benchQueues) > 0 {
		kinds = benchQueues
	}
	degrees := cfg.Benchmark.HeapDegrees
	if len(benchHeapDegrees) > 0 {
		degrees = benchHeapDegrees
	}
	queues, err := bench.QueueConfigs(kinds, degrees)
	if err != nil {
		return err
	}

	seed := cfg.Benchmark.Seed
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetUint64("seed")
	}
	opts := bench.Options{
		Runs:       intFlag(cmd, "runs", cfg.Benchmark.Runs),
		Degree:     intFlag(cmd, "degree", cfg.Benchmark.Degree),
		Steps:      intFlag(cmd, "steps", cfg.Benchmark.Steps),
		Seed:       seed,
		Navigators: navigators,
		Queues:     queues,
		Workers:    benchWorkers,
		DebugLevel: cfg.Search.DebugLevel,
	}

	// catch interrupt to stop after the current searches
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := bench.Run(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d puzzles of degree %d, seed %d\n", report.Run.Puzzles, report.Run.Degree, report.Run.Seed)
	if err := bench.WriteSummary(out, bench.Summarize(report.Measurements)); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d/%d invalid results\n", report.Invalid(), len(report.Measurements))

	if !benchNoStore {
		s, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		id, err := s.SaveRun(&report.Run, report.Measurements)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Stored run %d in %s\n", id, s.Path())
	}

	if report.Invalid() > 0 {
		return fmt.Errorf("%d results do not match the reference", report.Invalid())
	}
	return nil
}

func printHistory(cmd *cobra.Command, s *store.Store) error {
	runs, err := s.Runs()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No stored runs")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(out, "%4d  %s  degree %d  steps %d  puzzles %d  seed %d\n",
			run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.Degree, run.Steps, run.Puzzles, run.Seed)
	}
	return nil
}

func printStoredSummary(cmd *cobra.Command, s *store.Store, id int64) error {
	run, err := s.GetRun(id)
	if err != nil {
		return err
	}
	summaries, err := s.Summarize(id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %d: %d puzzles of degree %d, seed %d\n", run.ID, run.Puzzles, run.Degree, run.Seed)
	return bench.WriteSummary(out, summaries)
}
