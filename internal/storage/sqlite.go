// Package storage provides SQLite-based persistence for saved sessions and
// finished runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/on-the-run/internal/snapshot"
)

// ErrNoSave is returned by LoadSession when the slot holds nothing.
var ErrNoSave = errors.New("storage: no saved session")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished game.
type Run struct {
	ID        int64
	Slot      string
	Reason    string
	Survival  time.Duration
	Money     float64
	Purchases int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			data BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL,
			reason TEXT NOT NULL,
			survival_ms INTEGER NOT NULL,
			money REAL NOT NULL DEFAULT 0,
			purchases INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_survival ON runs(survival_ms DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_slot ON runs(slot);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession stores d in slot, replacing any earlier save.
func (s *Store) SaveSession(slot string, d snapshot.Data) error {
	blob, err := snapshot.Encode(d)
	if err != nil {
		return fmt.Errorf("storage: cannot encode save %s: %w", slot, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saves (slot, version, data, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   version = excluded.version,
		   data = excluded.data,
		   updated_at = CURRENT_TIMESTAMP`,
		slot, snapshot.Version, blob,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session %s: %w", slot, err)
	}
	return nil
}

// LoadSession returns the session saved in slot.
// Returns ErrNoSave if the slot is empty.
func (s *Store) LoadSession(slot string) (snapshot.Data, error) {
	var blob []byte
	err := s.db.QueryRow("SELECT data FROM saves WHERE slot = ?", slot).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return snapshot.Data{}, ErrNoSave
	}
	if err != nil {
		return snapshot.Data{}, fmt.Errorf("storage: cannot load session %s: %w", slot, err)
	}

	d, err := snapshot.Decode(blob)
	if err != nil {
		return snapshot.Data{}, fmt.Errorf("storage: cannot decode save %s: %w", slot, err)
	}
	return d, nil
}

// DeleteSession removes the save in slot. Deleting an empty slot is not an error.
func (s *Store) DeleteSession(slot string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot delete session %s: %w", slot, err)
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (slot, reason, survival_ms, money, purchases) VALUES (?, ?, ?, ?, ?)",
		r.Slot, r.Reason, r.Survival.Milliseconds(), r.Money, r.Purchases,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the N longest-surviving runs.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, slot, reason, survival_ms, money, purchases, created_at
		 FROM runs
		 ORDER BY survival_ms DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var survivalMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Slot, &r.Reason, &survivalMS, &r.Money, &r.Purchases, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Survival = time.Duration(survivalMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestSurvival returns the longest survival time on record.
// Returns 0 if no runs exist.
func (s *Store) BestSurvival() (time.Duration, error) {
	var ms sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(survival_ms) FROM runs").Scan(&ms); err != nil {
		return 0, fmt.Errorf("storage: cannot query best survival: %w", err)
	}
	if !ms.Valid {
		return 0, nil
	}
	return time.Duration(ms.Int64) * time.Millisecond, nil
}

// Stats contains aggregated statistics over every run.
type Stats struct {
	Runs         int
	BestSurvival time.Duration
	AvgSurvival  time.Duration
	MostMoney    float64
	ByReason     map[string]int
	LastPlayed   time.Time
}

// RunStats retrieves aggregated statistics over all runs.
func (s *Store) RunStats() (*Stats, error) {
	stats := &Stats{ByReason: make(map[string]int)}

	var best int64
	var avg float64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(survival_ms), 0), COALESCE(AVG(survival_ms), 0), COALESCE(MAX(money), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &best, &avg, &stats.MostMoney)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.BestSurvival = time.Duration(best) * time.Millisecond
	stats.AvgSurvival = time.Duration(avg) * time.Millisecond

	rows, err := s.db.Query("SELECT reason, COUNT(*) FROM runs GROUP BY reason")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot group runs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.ByReason[reason] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow("SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1").Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
