package database

import (
	"context"
	"fmt"
	"time"

	"go-bdjobs-e2e/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DBPool is the part of pgxpool.Pool the repository uses, so tests can swap
// in pgxmock.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS e2e_runs (
	id          UUID PRIMARY KEY,
	package     TEXT NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	passed      INT NOT NULL,
	failed      INT NOT NULL,
	skipped     INT NOT NULL
);
CREATE TABLE IF NOT EXISTS e2e_results (
	run_id      UUID NOT NULL REFERENCES e2e_runs(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	status      TEXT NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	duration_ms BIGINT NOT NULL,
	final_url   TEXT,
	screenshot  TEXT,
	error       TEXT,
	PRIMARY KEY (run_id, name)
);`

// Repository keeps the history of suite runs.
type Repository struct {
	db    DBPool
	close func()
	log   *zap.Logger
}

func ConnectDB(ctx context.Context, connString string, log *zap.Logger) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	// pgbouncer in transaction mode cannot keep prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	repo := NewRepository(pool, log)
	repo.close = pool.Close
	return repo, nil
}

func NewRepository(db DBPool, log *zap.Logger) *Repository {
	return &Repository{db: db, log: log.Named("database")}
}

func (r *Repository) Close() {
	if r.close != nil {
		r.close()
	}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveRun stores the run and every result in one transaction.
func (r *Repository) SaveRun(ctx context.Context, run models.RunSummary) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO e2e_runs (id, package, started_at, finished_at, passed, failed, skipped)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.RunID, run.Package, run.StartedAt, run.FinishedAt,
		run.Count(models.StatusPassed), run.Count(models.StatusFailed), run.Count(models.StatusSkipped))
	if err != nil {
		r.rollback(ctx, tx)
		return fmt.Errorf("failed to save run: %w", err)
	}

	for _, res := range run.Results {
		_, err := tx.Exec(ctx,
			`INSERT INTO e2e_results (run_id, name, status, started_at, duration_ms, final_url, screenshot, error)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (run_id, name) DO UPDATE SET status = EXCLUDED.status, error = EXCLUDED.error`,
			run.RunID, res.Name, string(res.Status), res.StartedAt, res.DurationMs, res.FinalURL, res.Screenshot, res.Error)
		if err != nil {
			r.rollback(ctx, tx)
			return fmt.Errorf("failed to save result %s: %w", res.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	r.log.Info("run saved", zap.String("run_id", run.RunID), zap.Int("results", len(run.Results)))
	return nil
}

func (r *Repository) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil {
		r.log.Error("failed to rollback transaction", zap.Error(err))
	}
}

// RunStats is one row of the run history.
type RunStats struct {
	RunID      string
	Package    string
	StartedAt  time.Time
	FinishedAt time.Time
	Passed     int
	Failed     int
	Skipped    int
}

// RecentRuns returns the latest runs of pkg, newest first.
func (r *Repository) RecentRuns(ctx context.Context, pkg string, limit int) ([]RunStats, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, package, started_at, finished_at, passed, failed, skipped
		FROM e2e_runs WHERE package = $1 ORDER BY started_at DESC LIMIT $2`,
		pkg, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []RunStats
	for rows.Next() {
		var s RunStats
		if err := rows.Scan(&s.RunID, &s.Package, &s.StartedAt, &s.FinishedAt, &s.Passed, &s.Failed, &s.Skipped); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return out, nil
}
