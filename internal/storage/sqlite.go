// Package storage keeps the run board: finished runs in an in-memory SQLite
// database that lives as long as the process. Nothing touches the disk.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/session"
)

// Board is the in-memory run board.
type Board struct {
	db *sql.DB
}

// RunEntry is one finished run on the board.
type RunEntry struct {
	ID         int64
	Run        int
	Difficulty config.Difficulty
	Seed       int64
	Distance   int
	Deliveries int
	Ticks      int
	Skipped    int
	Duration   time.Duration
	EndedAt    time.Time
}

// Stats aggregates the runs of one difficulty.
type Stats struct {
	Difficulty      config.Difficulty
	Runs            int
	BestDistance    int
	BestDeliveries  int
	AvgDistance     float64
	TotalDeliveries int64
}

// Open creates a fresh board.
func Open() (*Board, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is its own database; keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	b := &Board{db: db}
	if err := b.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return b, nil
}

func (b *Board) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			seed INTEGER NOT NULL,
			distance INTEGER NOT NULL,
			deliveries INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			skipped INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(difficulty, distance DESC, deliveries DESC);
	`
	_, err := b.db.Exec(schema)
	return err
}

// Close releases the database; the board is gone afterwards.
func (b *Board) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its row id.
func (b *Board) SaveRun(ctx context.Context, sum session.Summary) (int64, error) {
	res, err := b.db.ExecContext(ctx,
		`INSERT INTO runs (run, difficulty, seed, distance, deliveries, ticks, skipped, duration_ms, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.Run,
		string(sum.Difficulty),
		sum.Seed,
		sum.Distance,
		sum.Deliveries,
		sum.Ticks,
		sum.Skipped,
		sum.Duration.Milliseconds(),
		sum.EndedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecordRun implements session.RunRecorder.
func (b *Board) RecordRun(ctx context.Context, sum session.Summary) error {
	_, err := b.SaveRun(ctx, sum)
	return err
}

var _ session.RunRecorder = (*Board)(nil)

// TopRuns returns the best runs by distance, then deliveries. An empty
// difficulty means every tier.
func (b *Board) TopRuns(ctx context.Context, d config.Difficulty, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT id, run, difficulty, seed, distance, deliveries, ticks, skipped, duration_ms, ended_at
		 FROM runs
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY distance DESC, deliveries DESC, id ASC
		 LIMIT ?`,
		string(d), string(d), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// RecentRuns returns the latest runs, newest first.
func (b *Board) RecentRuns(ctx context.Context, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT id, run, difficulty, seed, distance, deliveries, ticks, skipped, duration_ms, ended_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	var entries []RunEntry
	for rows.Next() {
		var (
			e          RunEntry
			difficulty string
			durationMS int64
			endedAt    int64
		)
		if err := rows.Scan(&e.ID, &e.Run, &difficulty, &e.Seed, &e.Distance, &e.Deliveries, &e.Ticks, &e.Skipped, &durationMS, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Difficulty = config.Difficulty(difficulty)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.EndedAt = time.UnixMilli(endedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// BestDistance returns the longest distance for d, or 0 with no runs.
func (b *Board) BestDistance(ctx context.Context, d config.Difficulty) (int, error) {
	var best sql.NullInt64
	err := b.db.QueryRowContext(ctx,
		"SELECT MAX(distance) FROM runs WHERE difficulty = ?",
		string(d),
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best distance: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// Stats aggregates the runs for d.
func (b *Board) Stats(ctx context.Context, d config.Difficulty) (*Stats, error) {
	st := &Stats{Difficulty: d}
	err := b.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(distance), 0), COALESCE(MAX(deliveries), 0),
		        COALESCE(AVG(distance), 0), COALESCE(SUM(deliveries), 0)
		 FROM runs WHERE difficulty = ?`,
		string(d),
	).Scan(&st.Runs, &st.BestDistance, &st.BestDeliveries, &st.AvgDistance, &st.TotalDeliveries)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return st, nil
}

// RunByID returns one entry, or ErrNotFound.
func (b *Board) RunByID(ctx context.Context, id int64) (*RunEntry, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT id, run, difficulty, seed, distance, deliveries, ticks, skipped, duration_ms, ended_at
		 FROM runs WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	entries, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &entries[0], nil
}

// ErrNotFound is returned when a run id is not on the board.
var ErrNotFound = errors.New("storage: run not found")

// Clear empties the board.
func (b *Board) Clear(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
