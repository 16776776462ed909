package usage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	fieldRequests     = "request_count"
	fieldInputTokens  = "input_tokens"
	fieldOutputTokens = "output_tokens"
	fieldCost         = "total_cost_usd"
)

// RedisStore implements Store over a per-(user, day) Redis hash.
//
// Increment runs all field increments inside a MULTI/EXEC pipeline, so the
// whole update is applied atomically. Keys expire after the configured TTL;
// 48 hours is enough to cover the current day plus clock skew, since a day
// that has passed is never read again.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the default "usage" key prefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// WithTTL overrides the default 48h key expiration.
func WithTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: "usage",
		ttl:       48 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(userID uuid.UUID, day Day) string {
	return s.keyPrefix + ":" + userID.String() + ":" + string(day)
}

// Get returns the counter row for (userID, day), or a zero-valued row if absent.
func (s *RedisStore) Get(ctx context.Context, userID uuid.UUID, day Day) (DailyUsage, error) {
	fields, err := s.client.HGetAll(ctx, s.key(userID, day)).Result()
	if err != nil {
		return DailyUsage{}, errors.Join(ErrStoreFailure, err)
	}

	row := DailyUsage{UserID: userID, Day: day}
	if len(fields) == 0 {
		return row, nil
	}
	if err := parseHash(fields, &row); err != nil {
		return DailyUsage{}, errors.Join(ErrStoreFailure, err)
	}
	return row, nil
}

// Increment atomically adds one request plus the given deltas.
func (s *RedisStore) Increment(ctx context.Context, userID uuid.UUID, day Day, delta Delta) (DailyUsage, error) {
	if err := delta.validate(); err != nil {
		return DailyUsage{}, err
	}

	key := s.key(userID, day)

	pipe := s.client.TxPipeline()
	reqCmd := pipe.HIncrBy(ctx, key, fieldRequests, 1)
	inCmd := pipe.HIncrBy(ctx, key, fieldInputTokens, delta.InputTokens)
	outCmd := pipe.HIncrBy(ctx, key, fieldOutputTokens, delta.OutputTokens)
	costCmd := pipe.HIncrByFloat(ctx, key, fieldCost, delta.CostUSD)
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return DailyUsage{}, errors.Join(ErrStoreFailure, err)
	}

	return DailyUsage{
		UserID:       userID,
		Day:          day,
		RequestCount: reqCmd.Val(),
		InputTokens:  inCmd.Val(),
		OutputTokens: outCmd.Val(),
		TotalCostUSD: costCmd.Val(),
	}, nil
}

func parseHash(fields map[string]string, row *DailyUsage) error {
	var err error
	if v, ok := fields[fieldRequests]; ok {
		if row.RequestCount, err = strconv.ParseInt(v, 10, 64); err != nil {
			return err
		}
	}
	if v, ok := fields[fieldInputTokens]; ok {
		if row.InputTokens, err = strconv.ParseInt(v, 10, 64); err != nil {
			return err
		}
	}
	if v, ok := fields[fieldOutputTokens]; ok {
		if row.OutputTokens, err = strconv.ParseInt(v, 10, 64); err != nil {
			return err
		}
	}
	if v, ok := fields[fieldCost]; ok {
		if row.TotalCostUSD, err = strconv.ParseFloat(v, 64); err != nil {
			return err
		}
	}
	return nil
}
