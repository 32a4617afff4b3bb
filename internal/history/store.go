// Package history persists scored runs in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

var timeNow = time.Now

// DBFile is the database file name inside the data directory.
const DBFile = "history.db"

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 20

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("history: run not found")

// Run is one saved questionnaire result.
type Run struct {
	ID        string             `json:"id"`
	Lens      string             `json:"lens"`
	Overall   float64            `json:"overall"`
	Zone      string             `json:"zone,omitempty"`
	RankMode  string             `json:"rank_mode,omitempty"`
	Variables map[string]float64 `json:"variables"`
	Answers   map[string]int     `json:"answers"`
	Source    string             `json:"source,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// Store is a handle on the history database.
type Store struct {
	db *sql.DB
}

// Open creates dir if needed and opens (or creates) its history database.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(dir, DBFile))
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         TEXT    NOT NULL UNIQUE,
			lens       TEXT    NOT NULL,
			overall    REAL    NOT NULL,
			zone       TEXT    NOT NULL DEFAULT '',
			rank_mode  TEXT    NOT NULL DEFAULT '',
			variables  TEXT    NOT NULL,
			answers    TEXT    NOT NULL,
			source     TEXT    NOT NULL DEFAULT '',
			created_at TEXT    NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_lens ON runs(lens);
	`)
	return err
}

// Save stores run, assigning its ID and creation time when unset.
func (s *Store) Save(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = "run_" + uuid.New().String()[:8]
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = timeNow().UTC()
	}
	if run.Variables == nil {
		run.Variables = map[string]float64{}
	}
	if run.Answers == nil {
		run.Answers = map[string]int{}
	}

	vars, err := json.Marshal(run.Variables)
	if err != nil {
		return fmt.Errorf("history.Save: %w", err)
	}
	ans, err := json.Marshal(run.Answers)
	if err != nil {
		return fmt.Errorf("history.Save: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, lens, overall, zone, rank_mode, variables, answers, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Lens, run.Overall, run.Zone, run.RankMode,
		string(vars), string(ans), run.Source, run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history.Save: %w", err)
	}
	return nil
}

// List returns saved runs newest first, optionally restricted to one lens.
// limit <= 0 uses DefaultListLimit.
func (s *Store) List(ctx context.Context, lens string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT id, lens, overall, zone, rank_mode, variables, answers, source, created_at FROM runs`
	args := []any{}
	if lens != "" {
		query += ` WHERE lens = ?`
		args = append(args, lens)
	}
	query += ` ORDER BY seq DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history.List: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("history.List: %w", err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history.List: %w", err)
	}
	return runs, nil
}

// Get returns one run by ID.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, lens, overall, zone, rank_mode, variables, answers, source, created_at
		 FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("history.Get: %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("history.Get: %w", err)
	}
	return r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r          Run
		vars, ans  string
		createdRaw string
	)
	if err := sc.Scan(&r.ID, &r.Lens, &r.Overall, &r.Zone, &r.RankMode, &vars, &ans, &r.Source, &createdRaw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(vars), &r.Variables); err != nil {
		return nil, fmt.Errorf("run %s: variables: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(ans), &r.Answers); err != nil {
		return nil, fmt.Errorf("run %s: answers: %w", r.ID, err)
	}
	created, err := time.Parse(time.RFC3339Nano, createdRaw)
	if err != nil {
		return nil, fmt.Errorf("run %s: created_at: %w", r.ID, err)
	}
	r.CreatedAt = created
	return &r, nil
}
