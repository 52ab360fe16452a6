package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Search.Navigator != "nba" {
		t.Errorf("expected default navigator nba, got %s", cfg.Search.Navigator)
	}
	if cfg.Search.HeapDegree != 2 {
		t.Errorf("expected heap_degree 2, got %d", cfg.Search.HeapDegree)
	}
	if len(cfg.Benchmark.Navigators) != 5 {
		t.Errorf("expected 5 benchmark navigators, got %d", len(cfg.Benchmark.Navigators))
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	content := `
search:
  navigator: bidirectional-astar
  queue: bucket
puzzle:
  degree: 4
benchmark:
  runs: 3
  queues: [dary]
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Search.Navigator != "bidirectional-astar" || cfg.Search.Queue != "bucket" {
		t.Errorf("search config not loaded: %+v", cfg.Search)
	}
	if cfg.Search.HeapDegree != 2 {
		t.Errorf("expected merged heap_degree 2, got %d", cfg.Search.HeapDegree)
	}
	if cfg.Puzzle.Degree != 4 || cfg.Puzzle.Steps != 30 {
		t.Errorf("puzzle config not merged: %+v", cfg.Puzzle)
	}
	if cfg.Benchmark.Runs != 3 || len(cfg.Benchmark.Queues) != 1 || len(cfg.Benchmark.HeapDegrees) != 3 {
		t.Errorf("benchmark config not merged: %+v", cfg.Benchmark)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should give defaults: %v", err)
	}
	if cfg.Server.Address != ":8081" {
		t.Errorf("expected default address, got %s", cfg.Server.Address)
	}
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Puzzle.Degree = 2
	if _, err := Save(root, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(nested)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Puzzle.Degree != 2 {
		t.Errorf("expected puzzle degree 2 from parent config, got %d", loaded.Puzzle.Degree)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"heap degree", func(c *Config) { c.Search.HeapDegree = 1 }},
		{"queue", func(c *Config) { c.Search.Queue = "fibonacci" }},
		{"navigator", func(c *Config) { c.Search.Navigator = "dijkstra" }},
		{"puzzle degree", func(c *Config) { c.Puzzle.Degree = 1 }},
		{"benchmark runs", func(c *Config) { c.Benchmark.Runs = -1 }},
		{"benchmark queue", func(c *Config) { c.Benchmark.Queues = []string{"heap", "stack"} }},
		{"benchmark heap degree", func(c *Config) { c.Benchmark.HeapDegrees = []int{0} }},
		{"graph navigator", func(c *Config) { c.Graph.Navigator = "contraction-hierarchies" }},
	}
	for _, test := range tests {
		cfg := DefaultConfig()
		test.modify(cfg)
		if err := Validate(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", test.name, err)
		}
	}
}

func TestInvalidYaml(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(configPath, []byte("search: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(configPath); err == nil {
		t.Errorf("expected parse error")
	}
}
