package postgres

import (
	"context"
	"database/sql"

	"goperiod/domain/period"
	"goperiod/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// DecisionRepositoryImpl implements ResultStore for PostgreSQL
type DecisionRepositoryImpl struct {
	db *sqlx.DB
}

// NewDecisionRepository creates a new PostgreSQL decision repository
func NewDecisionRepository(db *sqlx.DB) ports.ResultStore {
	return &DecisionRepositoryImpl{db: db}
}

// Connect opens and pings a PostgreSQL connection
func Connect(url string) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", url)
}

// Migrate creates the result tables if they do not exist
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS period_decisions (
			id TEXT PRIMARY KEY,
			event_key TEXT NOT NULL,
			reference_time INT NOT NULL,
			detrended BOOLEAN NOT NULL,
			outcome TEXT NOT NULL,
			r_squared DOUBLE PRECISION NOT NULL,
			period DOUBLE PRECISION,
			fundamental INT NOT NULL,
			harmonics INT[] NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS window_counts (
			event_key TEXT NOT NULL,
			reference_time INT NOT NULL,
			event_count INT NOT NULL,
			window_len INT NOT NULL,
			probability DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (event_key, reference_time)
		)`)
	return err
}

// periodValue maps the decision outcome onto a nullable column: only a
// periodic outcome carries a number, every negative outcome stores NULL.
func periodValue(res period.Result) sql.NullFloat64 {
	if res.HasPeriod() {
		return sql.NullFloat64{Float64: res.Period, Valid: true}
	}
	return sql.NullFloat64{}
}

// SaveRecord upserts one period decision
func (r *DecisionRepositoryImpl) SaveRecord(ctx context.Context, rec period.Record) error {
	periodVal := periodValue(rec.Result)

	harmonics := rec.Result.Harmonics
	if harmonics == nil {
		harmonics = []int{}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO period_decisions (
			id, event_key, reference_time, detrended, outcome,
			r_squared, period, fundamental, harmonics, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			outcome = EXCLUDED.outcome,
			r_squared = EXCLUDED.r_squared,
			period = EXCLUDED.period,
			fundamental = EXCLUDED.fundamental,
			harmonics = EXCLUDED.harmonics`,
		string(rec.ID), string(rec.Event), int(rec.ReferenceTime), rec.Detrended,
		string(rec.Result.Outcome), rec.Result.RSquared, periodVal,
		rec.Result.Fundamental, pq.Array(harmonics), rec.CreatedAt.Time())
	return err
}

// SaveCounts upserts window event counts in one transaction
func (r *DecisionRepositoryImpl) SaveCounts(ctx context.Context, counts []ports.CountRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range counts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO window_counts (
				event_key, reference_time, event_count, window_len, probability
			) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (event_key, reference_time) DO UPDATE SET
				event_count = EXCLUDED.event_count,
				window_len = EXCLUDED.window_len,
				probability = EXCLUDED.probability`,
			string(c.Event), int(c.ReferenceTime), c.Count, c.WindowLen, c.Probability)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
