package store

// schemaSQL defines the SQLite schema for the benchmark database.
// Tables:
//   - runs: one row per benchmark invocation
//   - measurements: one row per puzzle, finder and queue configuration of a run
const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TEXT NOT NULL,
    seed INTEGER NOT NULL,
    degree INTEGER NOT NULL,
    steps INTEGER NOT NULL,
    puzzles INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS measurements (
    run_id INTEGER NOT NULL REFERENCES runs(id),
    puzzle INTEGER NOT NULL,
    navigator TEXT NOT NULL,
    queue TEXT NOT NULL,
    moves INTEGER NOT NULL,
    valid INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL,
    pq_pops INTEGER NOT NULL DEFAULT 0,
    pq_updates INTEGER NOT NULL DEFAULT 0,
    relaxed_edges INTEGER NOT NULL DEFAULT 0,
    settled_nodes INTEGER NOT NULL DEFAULT 0,
    rejected_nodes INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_measurements_run ON measurements(run_id);
`

// initSchema creates the database tables and indexes if they don't exist.
func (s *Store) initSchema() error {
	_, err := s.db.Exec(schemaSQL)
	return err
}
