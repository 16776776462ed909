package usage

import (
	"context"

	"github.com/google/uuid"
)

// Store persists daily usage counters.
//
// Implementations must make Increment atomic at the storage layer: a single
// conditional increment-or-insert, never an application-level read-modify-write.
// Two concurrent increments for the same (user, day) must both be reflected in
// the resulting totals.
type Store interface {
	// Get returns the counter row for (userID, day), or a zero-valued row if
	// none exists. Get never creates rows.
	Get(ctx context.Context, userID uuid.UUID, day Day) (DailyUsage, error)

	// Increment adds one request plus the given deltas to the row for
	// (userID, day), creating it if absent, and returns the resulting totals.
	Increment(ctx context.Context, userID uuid.UUID, day Day, delta Delta) (DailyUsage, error)
}
