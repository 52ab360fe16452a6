// Package store persists benchmark runs in a SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned when a run id is not stored
var ErrRunNotFound = errors.New("benchmark run not found")

// Store manages the benchmark database
type Store struct {
	db     *sql.DB
	dbPath string
}

// Run describes a benchmark invocation
type Run struct {
	ID        int64
	StartedAt time.Time
	Seed      uint64
	Degree    int
	Steps     int
	Puzzles   int
}

// Measurement is the outcome of one finder on one puzzle
type Measurement struct {
	Puzzle        int
	Navigator     string
	Queue         string // queue configuration, e.g. "dary-4"
	Moves         int    // -1 if no path was found
	Valid         bool   // the path is valid and as short as the reference
	Duration      time.Duration
	PqPops        int
	PqUpdates     int
	RelaxedEdges  int
	SettledNodes  int
	RejectedNodes int
}

// Summary aggregates the measurements of one finder and queue configuration
type Summary struct {
	Navigator        string
	Queue            string
	Count            int
	Invalid          int
	AverageDuration  time.Duration
	AveragePqPops    float64
	AverageSettled   float64
	AverageRelaxed   float64
	AverageRejected  float64
	AveragePqUpdates float64
}

// Open opens or creates the database file and initializes the schema.
// Missing parent directories are created.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// SaveRun stores the run together with its measurements in one transaction.
// The generated id is returned and set on run.
func (s *Store) SaveRun(run *Run, measurements []Measurement) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs (started_at, seed, degree, steps, puzzles) VALUES (?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano), int64(run.Seed), run.Degree, run.Steps, run.Puzzles)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO measurements
        (run_id, puzzle, navigator, queue, moves, valid, duration_ns, pq_pops, pq_updates, relaxed_edges, settled_nodes, rejected_nodes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare measurement insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range measurements {
		_, err := stmt.Exec(id, m.Puzzle, m.Navigator, m.Queue, m.Moves, m.Valid, m.Duration.Nanoseconds(),
			m.PqPops, m.PqUpdates, m.RelaxedEdges, m.SettledNodes, m.RejectedNodes)
		if err != nil {
			return 0, fmt.Errorf("insert measurement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	run.ID = id
	return id, nil
}

// Runs returns all stored runs, the latest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, started_at, seed, degree, steps, puzzles FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns the run with the given id.
func (s *Store) GetRun(id int64) (Run, error) {
	row := s.db.QueryRow(`SELECT id, started_at, seed, degree, steps, puzzles FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return run, err
}

// Measurements returns the measurements of a run ordered by puzzle.
func (s *Store) Measurements(runID int64) ([]Measurement, error) {
	rows, err := s.db.Query(`SELECT puzzle, navigator, queue, moves, valid, duration_ns,
        pq_pops, pq_updates, relaxed_edges, settled_nodes, rejected_nodes
        FROM measurements WHERE run_id = ? ORDER BY puzzle, navigator, queue`, runID)
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	defer rows.Close()

	var measurements []Measurement
	for rows.Next() {
		var m Measurement
		var duration int64
		err := rows.Scan(&m.Puzzle, &m.Navigator, &m.Queue, &m.Moves, &m.Valid, &duration,
			&m.PqPops, &m.PqUpdates, &m.RelaxedEdges, &m.SettledNodes, &m.RejectedNodes)
		if err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		m.Duration = time.Duration(duration)
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}

// Summarize aggregates the measurements of a run per finder and queue configuration.
func (s *Store) Summarize(runID int64) ([]Summary, error) {
	rows, err := s.db.Query(`SELECT navigator, queue, COUNT(*), SUM(CASE WHEN valid THEN 0 ELSE 1 END),
        AVG(duration_ns), AVG(pq_pops), AVG(settled_nodes), AVG(relaxed_edges), AVG(rejected_nodes), AVG(pq_updates)
        FROM measurements WHERE run_id = ? GROUP BY navigator, queue ORDER BY navigator, queue`, runID)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sm Summary
		var duration float64
		err := rows.Scan(&sm.Navigator, &sm.Queue, &sm.Count, &sm.Invalid, &duration,
			&sm.AveragePqPops, &sm.AverageSettled, &sm.AverageRelaxed, &sm.AverageRejected, &sm.AveragePqUpdates)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sm.AverageDuration = time.Duration(duration)
		summaries = append(summaries, sm)
	}
	return summaries, rows.Err()
}

// DeleteRun removes a run and its measurements.
func (s *Store) DeleteRun(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM measurements WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("delete measurements: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var startedAt string
	var seed int64
	if err := row.Scan(&run.ID, &startedAt, &seed, &run.Degree, &run.Steps, &run.Puzzles); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Seed = uint64(seed)
	t, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse run time: %w", err)
	}
	run.StartedAt = t
	return run, nil
}
