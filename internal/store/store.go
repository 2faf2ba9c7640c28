// Package store persists simulation runs and their bankroll histories in
// SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no stored run matches.
var ErrNotFound = errors.New("store: run not found")

const queryTimeout = 30 * time.Second

// Run is one stored bankroll trajectory with the parameters that produced it.
type Run struct {
	ID             string
	CreatedAt      time.Time
	Rounds         int
	Bankroll       int
	MinBet         int
	MaxBet         int
	Decks          int
	BasicStrategy  bool
	CountingSystem string
	Betting        string
	Seed           int64
	Final          int
	History        []int
}

// Store is a SQLite backed run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if path != ":memory:" {
		parent := filepath.Dir(path)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun stores a run and its history in one transaction. An empty ID is
// replaced by a new UUID and a zero CreatedAt by the current time; the
// stored ID is returned.
func (s *Store) SaveRun(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if len(run.History) > 0 {
		run.Final = run.History[len(run.History)-1]
	} else if run.Final == 0 {
		run.Final = run.Bankroll
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO runs (
    id, created_at_ms, rounds, bankroll, min_bet, max_bet, decks,
    basic_strategy, counting_system, betting, seed, final_bankroll
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, run.ID, run.CreatedAt.UTC().UnixMilli(), run.Rounds, run.Bankroll, run.MinBet, run.MaxBet, run.Decks,
		run.BasicStrategy, run.CountingSystem, run.Betting, run.Seed, run.Final); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_history (run_id, round, bankroll) VALUES (?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()
	for i, bankroll := range run.History {
		if _, err := stmt.ExecContext(ctx, run.ID, i+1, bankroll); err != nil {
			return "", fmt.Errorf("insert history round %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

const runColumns = `id, created_at_ms, rounds, bankroll, min_bet, max_bet, decks,
    basic_strategy, counting_system, betting, seed, final_bankroll`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run       Run
		createdMs int64
	)
	err := row.Scan(&run.ID, &createdMs, &run.Rounds, &run.Bankroll, &run.MinBet, &run.MaxBet, &run.Decks,
		&run.BasicStrategy, &run.CountingSystem, &run.Betting, &run.Seed, &run.Final)
	if err != nil {
		return Run{}, err
	}
	run.CreatedAt = time.UnixMilli(createdMs).UTC()
	return run, nil
}

// GetRun loads a run with its full history.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	run, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Run{}, err
	}
	run.History, err = s.history(ctx, id)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// LastRun loads the most recently created run with its history.
func (s *Store) LastRun(ctx context.Context) (Run, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
SELECT id
FROM runs
ORDER BY created_at_ms DESC, rowid DESC
LIMIT 1
`).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, err
	}
	return s.GetRun(ctx, id)
}

// ListRuns returns up to limit runs, newest first, without histories.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+`
FROM runs
ORDER BY created_at_ms DESC, rowid DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, err
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

func (s *Store) history(ctx context.Context, id string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT bankroll
FROM run_history
WHERE run_id = ?
ORDER BY round ASC
`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []int
	for rows.Next() {
		var bankroll int
		if err := rows.Scan(&bankroll); err != nil {
			return nil, err
		}
		history = append(history, bankroll)
	}
	return history, rows.Err()
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at_ms INTEGER NOT NULL,
    rounds INTEGER NOT NULL,
    bankroll INTEGER NOT NULL,
    min_bet INTEGER NOT NULL,
    max_bet INTEGER NOT NULL,
    decks INTEGER NOT NULL,
    basic_strategy INTEGER NOT NULL DEFAULT 0,
    counting_system TEXT NOT NULL DEFAULT '',
    betting TEXT NOT NULL DEFAULT '',
    seed INTEGER NOT NULL,
    final_bankroll INTEGER NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at_ms DESC)`,
		`
CREATE TABLE IF NOT EXISTS run_history (
    run_id TEXT NOT NULL,
    round INTEGER NOT NULL,
    bankroll INTEGER NOT NULL,
    PRIMARY KEY(run_id, round),
    FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
