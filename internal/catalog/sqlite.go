// Package catalog keeps a SQLite index of scatter runs so earlier results
// can be found and reproduced from their seeds.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/scatter"
)

// Index is a run catalog backed by a single SQLite file.
type Index struct {
	db *sql.DB
}

// Run is one recorded scatter invocation.
type Run struct {
	ID        int64
	Project   string
	Seed      int64
	CreatedAt time.Time
	Output    string
	Layers    []LayerRecord
}

// Instances returns the number of instances placed across all layers.
func (r Run) Instances() int {
	n := 0
	for _, l := range r.Layers {
		n += l.Placed
	}
	return n
}

// LayerRecord summarizes one manifest of a run.
type LayerRecord struct {
	ManifestID string
	LayerID    string
	Algorithm  string
	Seed       int64
	Requested  int
	Placed     int
}

// OpenSQLite opens or creates the catalog at path.
func OpenSQLite(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id INTEGER PRIMARY KEY AUTOINCREMENT,
			project TEXT NOT NULL,
			seed INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			output TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS manifests (
			run_id INTEGER NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			layer_id TEXT NOT NULL,
			manifest_id TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			seed INTEGER NOT NULL,
			requested INTEGER NOT NULL,
			placed INTEGER NOT NULL,
			PRIMARY KEY (run_id, layer_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_project ON runs(project, run_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// RecordRun stores a run and one row per manifest in a single transaction
// and returns the new run id. CreatedAt, Project, Seed and Output are taken
// from run; its ID and Layers are ignored.
func (x *Index) RecordRun(ctx context.Context, run Run, manifests []*scatter.Manifest) (int64, error) {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs(project, seed, created_at, output) VALUES(?,?,?,?)`,
		run.Project, run.Seed, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Output)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO manifests(run_id, layer_id, manifest_id, algorithm, seed, requested, placed) VALUES(?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, m := range manifests {
		if _, err := stmt.ExecContext(ctx, id, m.LayerID, m.ID, string(m.Algorithm), m.Seed, m.Requested, len(m.Instances)); err != nil {
			return 0, fmt.Errorf("insert manifest %s: %w", m.LayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first, with their layers.
func (x *Index) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := x.db.QueryContext(ctx,
		`SELECT run_id, project, seed, created_at, output FROM runs ORDER BY run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Project, &r.Seed, &created, &r.Output); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %d created_at: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		if runs[i].Layers, err = x.layers(ctx, runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (x *Index) layers(ctx context.Context, runID int64) ([]LayerRecord, error) {
	rows, err := x.db.QueryContext(ctx,
		`SELECT manifest_id, layer_id, algorithm, seed, requested, placed FROM manifests WHERE run_id=? ORDER BY layer_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query manifests: %w", err)
	}
	defer rows.Close()

	var out []LayerRecord
	for rows.Next() {
		var l LayerRecord
		if err := rows.Scan(&l.ManifestID, &l.LayerID, &l.Algorithm, &l.Seed, &l.Requested, &l.Placed); err != nil {
			return nil, fmt.Errorf("scan manifest: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Close releases the database.
func (x *Index) Close() error {
	return x.db.Close()
}
