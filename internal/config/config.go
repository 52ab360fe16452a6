package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/natevvv/graph-search/pkg/puzzle"
	"github.com/natevvv/graph-search/pkg/queue"
	"github.com/natevvv/graph-search/pkg/slice"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the configuration directory
const ConfigDirName = ".pathfinder"

// Config holds all pathfinder configuration
type Config struct {
	Search    SearchConfig    `yaml:"search"`
	Puzzle    PuzzleConfig    `yaml:"puzzle"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
	Server    ServerConfig    `yaml:"server"`
	Graph     GraphConfig     `yaml:"graph"`
}

// SearchConfig selects the finder and its priority queue
type SearchConfig struct {
	Navigator  string `yaml:"navigator"`
	Queue      string `yaml:"queue"`
	HeapDegree int    `yaml:"heap_degree"`
	DebugLevel int    `yaml:"debug_level"`
}

// PuzzleConfig holds the defaults for generated puzzles
type PuzzleConfig struct {
	Degree    int    `yaml:"degree"`
	Steps     int    `yaml:"steps"`
	Seed      uint64 `yaml:"seed"`
	MaxDegree int    `yaml:"max_degree"`
}

// BenchmarkConfig holds the finder and queue grid of the benchmark
type BenchmarkConfig struct {
	Runs        int      `yaml:"runs"`
	Degree      int      `yaml:"degree"`
	Steps       int      `yaml:"steps"`
	Seed        uint64   `yaml:"seed"`
	Navigators  []string `yaml:"navigators"`
	Queues      []string `yaml:"queues"`
	HeapDegrees []int    `yaml:"heap_degrees"`
	Database    string   `yaml:"database"`
}

// ServerConfig holds configuration for the http api
type ServerConfig struct {
	Address string `yaml:"address"`
}

// GraphConfig holds configuration for the road graph
type GraphConfig struct {
	File      string `yaml:"file"`
	Navigator string `yaml:"navigator"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .pathfinder/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		// No config dir found, return defaults
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .pathfinder directory by walking up from startDir.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// Save writes the config to .pathfinder/config.yaml below workDir
func Save(workDir string, cfg *Config) (string, error) {
	configDir := filepath.Join(workDir, ConfigDirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return configPath, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	if err := validateNavigator("search.navigator", cfg.Search.Navigator); err != nil {
		return err
	}
	if err := validateQueue("search.queue", cfg.Search.Queue); err != nil {
		return err
	}
	if cfg.Search.HeapDegree < 2 {
		return fmt.Errorf("%w: search.heap_degree must be at least 2, got %d", ErrInvalidConfig, cfg.Search.HeapDegree)
	}

	if cfg.Puzzle.Degree < puzzle.MINIMUM_DEGREE || cfg.Puzzle.Degree > puzzle.MAXIMUM_DEGREE {
		return fmt.Errorf("%w: puzzle.degree must be between %d and %d, got %d",
			ErrInvalidConfig, puzzle.MINIMUM_DEGREE, puzzle.MAXIMUM_DEGREE, cfg.Puzzle.Degree)
	}
	if cfg.Puzzle.Steps < 0 {
		return fmt.Errorf("%w: puzzle.steps must not be negative, got %d", ErrInvalidConfig, cfg.Puzzle.Steps)
	}
	if cfg.Puzzle.MaxDegree < puzzle.MINIMUM_DEGREE {
		return fmt.Errorf("%w: puzzle.max_degree must be at least %d, got %d", ErrInvalidConfig, puzzle.MINIMUM_DEGREE, cfg.Puzzle.MaxDegree)
	}

	if cfg.Benchmark.Runs <= 0 {
		return fmt.Errorf("%w: benchmark.runs must be positive, got %d", ErrInvalidConfig, cfg.Benchmark.Runs)
	}
	if cfg.Benchmark.Degree < puzzle.MINIMUM_DEGREE || cfg.Benchmark.Degree > puzzle.MAXIMUM_DEGREE {
		return fmt.Errorf("%w: benchmark.degree must be between %d and %d, got %d",
			ErrInvalidConfig, puzzle.MINIMUM_DEGREE, puzzle.MAXIMUM_DEGREE, cfg.Benchmark.Degree)
	}
	for _, navigator := range cfg.Benchmark.Navigators {
		if err := validateNavigator("benchmark.navigators", navigator); err != nil {
			return err
		}
	}
	for _, kind := range cfg.Benchmark.Queues {
		if err := validateQueue("benchmark.queues", kind); err != nil {
			return err
		}
	}
	for _, degree := range cfg.Benchmark.HeapDegrees {
		if degree < 2 {
			return fmt.Errorf("%w: benchmark.heap_degrees must be at least 2, got %d", ErrInvalidConfig, degree)
		}
	}

	return validateNavigator("graph.navigator", cfg.Graph.Navigator)
}

func validateNavigator(field, navigator string) error {
	if !slice.Contains(path.FinderNames(), navigator) {
		return fmt.Errorf("%w: %s must be one of %v, got %q", ErrInvalidConfig, field, path.FinderNames(), navigator)
	}
	return nil
}

func validateQueue(field, kind string) error {
	if _, err := queue.ParseKind(kind); err != nil {
		return fmt.Errorf("%w: %s must be one of %v, got %q", ErrInvalidConfig, field, queue.Kinds(), kind)
	}
	return nil
}
