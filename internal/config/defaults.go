package config

import (
	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/natevvv/graph-search/pkg/queue"
)

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Navigator:  path.NBA,
			Queue:      string(queue.DARY),
			HeapDegree: queue.DEFAULT_DEGREE,
		},
		Puzzle: PuzzleConfig{
			Degree:    3,
			Steps:     30,
			Seed:      1,
			MaxDegree: 4,
		},
		Benchmark: BenchmarkConfig{
			Runs:        10,
			Degree:      3,
			Steps:       40,
			Seed:        1,
			Navigators:  path.FinderNames(),
			Queues:      []string{string(queue.DARY), string(queue.BUCKET), string(queue.BINARY)},
			HeapDegrees: []int{2, 3, 4},
			Database:    ".pathfinder/benchmarks.db",
		},
		Server: ServerConfig{
			Address: ":8081",
		},
		Graph: GraphConfig{
			Navigator: path.BIDIRECTIONAL_ASTAR,
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Search = mergeSearchConfig(loaded.Search, defaults.Search)
	result.Puzzle = mergePuzzleConfig(loaded.Puzzle, defaults.Puzzle)
	result.Benchmark = mergeBenchmarkConfig(loaded.Benchmark, defaults.Benchmark)
	result.Server = mergeServerConfig(loaded.Server, defaults.Server)
	result.Graph = mergeGraphConfig(loaded.Graph, defaults.Graph)

	return result
}

func mergeSearchConfig(loaded, defaults SearchConfig) SearchConfig {
	result := loaded
	if result.Navigator == "" {
		result.Navigator = defaults.Navigator
	}
	if result.Queue == "" {
		result.Queue = defaults.Queue
	}
	if result.HeapDegree == 0 {
		result.HeapDegree = defaults.HeapDegree
	}
	return result
}

func mergePuzzleConfig(loaded, defaults PuzzleConfig) PuzzleConfig {
	result := loaded
	if result.Degree == 0 {
		result.Degree = defaults.Degree
	}
	if result.Steps == 0 {
		result.Steps = defaults.Steps
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if result.MaxDegree == 0 {
		result.MaxDegree = defaults.MaxDegree
	}
	return result
}

func mergeBenchmarkConfig(loaded, defaults BenchmarkConfig) BenchmarkConfig {
	result := loaded
	if result.Runs == 0 {
		result.Runs = defaults.Runs
	}
	if result.Degree == 0 {
		result.Degree = defaults.Degree
	}
	if result.Steps == 0 {
		result.Steps = defaults.Steps
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if len(result.Navigators) == 0 {
		result.Navigators = defaults.Navigators
	}
	if len(result.Queues) == 0 {
		result.Queues = defaults.Queues
	}
	if len(result.HeapDegrees) == 0 {
		result.HeapDegrees = defaults.HeapDegrees
	}
	if result.Database == "" {
		result.Database = defaults.Database
	}
	return result
}

func mergeServerConfig(loaded, defaults ServerConfig) ServerConfig {
	result := loaded
	if result.Address == "" {
		result.Address = defaults.Address
	}
	return result
}

func mergeGraphConfig(loaded, defaults GraphConfig) GraphConfig {
	result := loaded
	if result.Navigator == "" {
		result.Navigator = defaults.Navigator
	}
	return result
}
