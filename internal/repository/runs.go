package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RunRecord is one archived simulation run.
type RunRecord struct {
	ID         int64
	Seed       int64
	Turns      int
	AttackRate float64
	Winner     int
	TotalTurns int
	Steps      int
	TapeDump   string
	FinalState string
	CreatedAt  time.Time
}

// RunRepository stores and retrieves run records.
type RunRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewRunRepository creates a repository over a database.
func NewRunRepository(db *DB, logger *zap.Logger) *RunRepository {
	return &RunRepository{db: db, logger: logger}
}

const runsSchema = `
CREATE TABLE IF NOT EXISTS simulation_runs (
	id          BIGSERIAL PRIMARY KEY,
	seed        BIGINT NOT NULL,
	turns       INT NOT NULL,
	attack_rate DOUBLE PRECISION NOT NULL,
	winner      INT NOT NULL,
	total_turns INT NOT NULL,
	steps       INT NOT NULL,
	tape_dump   TEXT NOT NULL,
	final_state TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the runs table when it is missing.
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.pool.Exec(ctx, runsSchema); err != nil {
		return fmt.Errorf("ensuring runs schema: %w", err)
	}
	return nil
}

// SaveRun inserts a run record and returns its id.
func (r *RunRepository) SaveRun(ctx context.Context, rec *RunRecord) (int64, error) {
	const query = `
		INSERT INTO simulation_runs
			(seed, turns, attack_rate, winner, total_turns, steps, tape_dump, final_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	row := r.db.pool.QueryRow(ctx, query,
		rec.Seed, rec.Turns, rec.AttackRate, rec.Winner,
		rec.TotalTurns, rec.Steps, rec.TapeDump, rec.FinalState)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	if r.logger != nil {
		r.logger.Info("archived simulation run",
			zap.Int64("run_id", rec.ID),
			zap.Int64("seed", rec.Seed),
			zap.Int("winner", rec.Winner),
			zap.Int("total_turns", rec.TotalTurns),
		)
	}
	return rec.ID, nil
}

// GetRun fetches one archived run by id.
func (r *RunRepository) GetRun(ctx context.Context, id int64) (*RunRecord, error) {
	const query = `
		SELECT id, seed, turns, attack_rate, winner, total_turns, steps,
		       tape_dump, final_state, created_at
		FROM simulation_runs
		WHERE id = $1`

	var rec RunRecord
	row := r.db.pool.QueryRow(ctx, query, id)
	if err := row.Scan(&rec.ID, &rec.Seed, &rec.Turns, &rec.AttackRate,
		&rec.Winner, &rec.TotalTurns, &rec.Steps,
		&rec.TapeDump, &rec.FinalState, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("fetching run %d: %w", id, err)
	}
	return &rec, nil
}

// ListRecentRuns returns the newest runs, most recent first, without
// their tape dumps.
func (r *RunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	const query = `
		SELECT id, seed, turns, attack_rate, winner, total_turns, steps, created_at
		FROM simulation_runs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []*RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.ID, &rec.Seed, &rec.Turns, &rec.AttackRate,
			&rec.Winner, &rec.TotalTurns, &rec.Steps, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
