package usage

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-process map.
// Increments are atomic under a single mutex, which satisfies the Store
// contract for one process. Use PostgresStore or RedisStore when counters
// must be shared across instances.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]DailyUsage
}

// NewMemoryStore creates an empty in-memory usage store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows: make(map[string]DailyUsage),
	}
}

func rowKey(userID uuid.UUID, day Day) string {
	return userID.String() + ":" + string(day)
}

// Get returns the counter row for (userID, day), or a zero-valued row if absent.
func (s *MemoryStore) Get(ctx context.Context, userID uuid.UUID, day Day) (DailyUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if row, ok := s.rows[rowKey(userID, day)]; ok {
		return row, nil
	}
	return DailyUsage{UserID: userID, Day: day}, nil
}

// Increment atomically adds one request plus the given deltas.
func (s *MemoryStore) Increment(ctx context.Context, userID uuid.UUID, day Day, delta Delta) (DailyUsage, error) {
	if err := delta.validate(); err != nil {
		return DailyUsage{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := rowKey(userID, day)
	row, ok := s.rows[key]
	if !ok {
		row = DailyUsage{UserID: userID, Day: day}
	}

	row.RequestCount++
	row.InputTokens += delta.InputTokens
	row.OutputTokens += delta.OutputTokens
	row.TotalCostUSD += delta.CostUSD

	s.rows[key] = row
	return row, nil
}
