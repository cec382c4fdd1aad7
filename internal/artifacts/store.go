// Package artifacts persists sweep runs and their perplexity curves in a
// SQLite database under the configured data directory.
//
// Each run is keyed by a fingerprint of its inputs and configuration, which
// makes recomputation idempotent: the pipeline looks a fingerprint up before
// doing any work and loads the stored curve on a hit. A file lock guards the
// database against concurrent runs writing the same artifacts.
package artifacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"themescope/internal/config"
	"themescope/internal/sweep"
)

// ErrRunNotFound marks a fingerprint with no stored run.
var ErrRunNotFound = errors.New("run not found")

// Run is one persisted sweep run.
type Run struct {
	ID          int64
	UUID        string
	Fingerprint string
	TokenDigest string
	ConfigJSON  string
	SelectedK   int
	CreatedAt   time.Time
	Curve       sweep.Curve
}

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the runs database, holding a file lock for
// the store's lifetime so concurrent invocations cannot interleave writes.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "runs.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, errors.New("artifact store is locked by another themescope process")
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "runs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the store lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			firstErr = err
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Store) applyMigrations(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sweep_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_uuid TEXT NOT NULL UNIQUE,
			fingerprint TEXT NOT NULL UNIQUE,
			token_digest TEXT NOT NULL,
			config_json TEXT NOT NULL,
			selected_k INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS curve_points (
			run_id INTEGER NOT NULL REFERENCES sweep_runs(id) ON DELETE CASCADE,
			k INTEGER NOT NULL,
			perplexity REAL NOT NULL,
			PRIMARY KEY (run_id, k)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sweep_runs_created_at ON sweep_runs(created_at)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// SaveRun stores a completed run and its curve in one transaction, assigning
// the run UUID and returning the stored record.
func (s *Store) SaveRun(ctx context.Context, fingerprint, tokenDigest, configJSON string, selectedK int, curve sweep.Curve) (*Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	runUUID := uuid.NewString()
	now := time.Now().UTC()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sweep_runs (run_uuid, fingerprint, token_digest, config_json, selected_k, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runUUID, fingerprint, tokenDigest, configJSON, selectedK, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	for _, point := range curve {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO curve_points (run_id, k, perplexity) VALUES (?, ?, ?)`,
			id, point.K, point.Perplexity); err != nil {
			return nil, fmt.Errorf("insert curve point k=%d: %w", point.K, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit run: %w", err)
	}

	return &Run{
		ID:          id,
		UUID:        runUUID,
		Fingerprint: fingerprint,
		TokenDigest: tokenDigest,
		ConfigJSON:  configJSON,
		SelectedK:   selectedK,
		CreatedAt:   now,
		Curve:       curve,
	}, nil
}

// FindRun loads the run stored for the given fingerprint, curve included.
func (s *Store) FindRun(ctx context.Context, fingerprint string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, run_uuid, fingerprint, token_digest, config_json, selected_k, created_at
		 FROM sweep_runs WHERE fingerprint = ?`, fingerprint)
	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	run.Curve, err = s.loadCurve(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// LatestRun loads the most recently stored run, curve included.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, run_uuid, fingerprint, token_digest, config_json, selected_k, created_at
		 FROM sweep_runs ORDER BY created_at DESC, id DESC LIMIT 1`)
	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	run.Curve, err = s.loadCurve(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns all stored runs newest first, without curves.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_uuid, fingerprint, token_digest, config_json, selected_k, created_at
		 FROM sweep_runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func (s *Store) loadCurve(ctx context.Context, runID int64) (sweep.Curve, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT k, perplexity FROM curve_points WHERE run_id = ? ORDER BY k ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("load curve: %w", err)
	}
	defer rows.Close()

	var curve sweep.Curve
	for rows.Next() {
		var point sweep.Point
		if err := rows.Scan(&point.K, &point.Perplexity); err != nil {
			return nil, fmt.Errorf("scan curve point: %w", err)
		}
		curve = append(curve, point)
	}
	return curve, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var createdAt string
	err := row.Scan(&run.ID, &run.UUID, &run.Fingerprint, &run.TokenDigest, &run.ConfigJSON, &run.SelectedK, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse run timestamp: %w", err)
	}
	return &run, nil
}
