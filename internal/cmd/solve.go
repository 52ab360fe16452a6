package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/natevvv/graph-search/pkg/puzzle"
	"github.com/spf13/cobra"
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a sliding puzzle",
	Long: `Solve a sliding puzzle with one of the finders.

Without --tiles a random solvable puzzle is created by moving the blank
--steps times from the goal. Tiles are given row by row, 0 is the blank.

Examples:
  pathfinder solve                                 # Configured defaults
  pathfinder solve --degree 4 --steps 60 --seed 7
  pathfinder solve --tiles 1,2,3,4,5,6,0,7,8 --navigator bidirectional-bfs
  pathfinder solve --queue bucket --states         # Print every state`,
	RunE: runSolve,
}

var (
	solveTiles  []int
	solveStates bool
)

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().IntSliceVar(&solveTiles, "tiles", nil, "Tiles row by row, 0 is the blank")
	solveCmd.Flags().Int("degree", 3, "Width of the puzzle")
	solveCmd.Flags().Int("steps", 30, "Random blank moves of a generated puzzle")
	solveCmd.Flags().Uint64("seed", 0, "Seed of a generated puzzle (default: configured seed)")
	solveCmd.Flags().String("navigator", "nba", "Finder to use")
	solveCmd.Flags().String("queue", "dary", "Priority queue of the heuristic finders (dary|bucket|binary)")
	solveCmd.Flags().Int("heap-degree", 2, "Degree of the d-ary heap")
	solveCmd.Flags().BoolVar(&solveStates, "states", false, "Print every state of the solution")
}

func runSolve(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	degree := intFlag(cmd, "degree", cfg.Puzzle.Degree)
	navigator := stringFlag(cmd, "navigator", cfg.Search.Navigator)
	if err := validateNavigator(navigator); err != nil {
		return err
	}

	var source puzzle.Node
	var err error
	if len(solveTiles) > 0 {
		if !cmd.Flags().Changed("degree") {
			degree = isqrt(len(solveTiles))
		}
		source, err = puzzle.FromTiles(degree, solveTiles)
	} else {
		seed := cfg.Puzzle.Seed
		if cmd.Flags().Changed("seed") {
			seed, _ = cmd.Flags().GetUint64("seed")
		}
		var goal puzzle.Node
		if goal, err = puzzle.NewGoal(degree); err == nil {
			source = goal.Scramble(rand.New(rand.NewPCG(seed, seed)), intFlag(cmd, "steps", cfg.Puzzle.Steps))
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Puzzle:\n%v\n", source)
	if !source.IsSolvable() {
		fmt.Fprintln(out, "The puzzle is not solvable")
		return nil
	}

	prototype, err := queuePrototype[puzzle.Node](stringFlag(cmd, "queue", cfg.Search.Queue), intFlag(cmd, "heap-degree", cfg.Search.HeapDegree))
	if err != nil {
		return err
	}
	finder, err := path.NewFinder[puzzle.Node](navigator, puzzle.NewManhattanHeuristic(),
		path.WithQueue(prototype), path.WithDebugLevel[puzzle.Node](cfg.Search.DebugLevel))
	if err != nil {
		return err
	}
	goal, err := puzzle.NewGoal(degree)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := finder.SearchWithKPIs(source, goal)
	elapsed := time.Since(start)
	if errors.Is(err, path.ErrUnreachable) {
		fmt.Fprintln(out, "No solution found")
		return nil
	} else if err != nil {
		return err
	}

	fmt.Fprintf(out, "[TIME-Search] = %s\n", elapsed)
	fmt.Fprintf(out, "Solved with %s in %d moves\n", finder.Name(), result.Length)
	fmt.Fprintf(out, "PQ pops: %d, PQ updates: %d, relaxed edges: %d, settled nodes: %d, rejected nodes: %d\n",
		result.KPIs.PqPops, result.KPIs.PqUpdates, result.KPIs.RelaxedEdges, result.KPIs.SettledNodes, result.KPIs.RejectedNodes)
	if solveStates {
		for i, state := range result.Path {
			fmt.Fprintf(out, "Step %d:\n%v\n", i, state)
		}
	}
	return nil
}

// width of a square puzzle with n tiles, 0 if n is not a square
func isqrt(n int) int {
	for w := 1; w*w <= n; w++ {
		if w*w == n {
			return w
		}
	}
	return 0
}
