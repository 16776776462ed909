package usage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on top of the daily_usage table.
//
// Increment is a single INSERT ... ON CONFLICT DO UPDATE statement, so the
// increment-or-insert is atomic inside the database and concurrent requests
// for the same user never lose an update.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const getUsageQuery = `
SELECT request_count, input_tokens, output_tokens, total_cost_usd
FROM daily_usage
WHERE user_id = $1 AND day = $2`

// Get returns the counter row for (userID, day), or a zero-valued row if absent.
func (s *PostgresStore) Get(ctx context.Context, userID uuid.UUID, day Day) (DailyUsage, error) {
	row := DailyUsage{UserID: userID, Day: day}

	err := s.pool.QueryRow(ctx, getUsageQuery, userID, string(day)).Scan(
		&row.RequestCount,
		&row.InputTokens,
		&row.OutputTokens,
		&row.TotalCostUSD,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return row, nil
		}
		return DailyUsage{}, errors.Join(ErrStoreFailure, err)
	}
	return row, nil
}

const incrementUsageQuery = `
INSERT INTO daily_usage (user_id, day, request_count, input_tokens, output_tokens, total_cost_usd)
VALUES ($1, $2, 1, $3, $4, $5)
ON CONFLICT (user_id, day) DO UPDATE SET
	request_count  = daily_usage.request_count + 1,
	input_tokens   = daily_usage.input_tokens + EXCLUDED.input_tokens,
	output_tokens  = daily_usage.output_tokens + EXCLUDED.output_tokens,
	total_cost_usd = daily_usage.total_cost_usd + EXCLUDED.total_cost_usd
RETURNING request_count, input_tokens, output_tokens, total_cost_usd`

// Increment atomically adds one request plus the given deltas.
func (s *PostgresStore) Increment(ctx context.Context, userID uuid.UUID, day Day, delta Delta) (DailyUsage, error) {
	if err := delta.validate(); err != nil {
		return DailyUsage{}, err
	}

	row := DailyUsage{UserID: userID, Day: day}

	err := s.pool.QueryRow(ctx, incrementUsageQuery,
		userID, string(day), delta.InputTokens, delta.OutputTokens, delta.CostUSD,
	).Scan(
		&row.RequestCount,
		&row.InputTokens,
		&row.OutputTokens,
		&row.TotalCostUSD,
	)
	if err != nil {
		return DailyUsage{}, errors.Join(ErrStoreFailure, err)
	}
	return row, nil
}
