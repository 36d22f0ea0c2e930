package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store implementation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed review store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema creates the review_schedule table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS review_schedule (
			question_id   TEXT PRIMARY KEY,
			next_review   TIMESTAMPTZ NOT NULL,
			interval_days INT NOT NULL DEFAULT 0,
			ease_factor   DOUBLE PRECISION NOT NULL DEFAULT 2.5,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create review_schedule: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, questionID string) (*Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var entry Entry
	err := s.pool.QueryRow(ctx,
		`SELECT question_id, next_review, interval_days, ease_factor
		 FROM review_schedule
		 WHERE question_id = $1`,
		questionID,
	).Scan(&entry.QuestionID, &entry.NextReview, &entry.IntervalDays, &entry.EaseFactor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review entry: %w", err)
	}
	return &entry, nil
}

func (s *PostgresStore) Put(ctx context.Context, entry Entry) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if entry.QuestionID == "" {
		return fmt.Errorf("question_id is required")
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO review_schedule (question_id, next_review, interval_days, ease_factor, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (question_id) DO UPDATE
		 SET next_review = EXCLUDED.next_review,
		     interval_days = EXCLUDED.interval_days,
		     ease_factor = EXCLUDED.ease_factor,
		     updated_at = NOW()`,
		entry.QuestionID,
		entry.NextReview,
		entry.IntervalDays,
		entry.EaseFactor,
	)
	if err != nil {
		return fmt.Errorf("upsert review entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) All(ctx context.Context) (map[string]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT question_id, next_review, interval_days, ease_factor
		 FROM review_schedule`)
	if err != nil {
		return nil, fmt.Errorf("query review entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]Entry)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.QuestionID, &entry.NextReview, &entry.IntervalDays, &entry.EaseFactor); err != nil {
			return nil, fmt.Errorf("scan review entry: %w", err)
		}
		entries[entry.QuestionID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review entries: %w", err)
	}
	return entries, nil
}
