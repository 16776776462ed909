// Package usage tracks per-user daily consumption counters for the
// entitlement engine: request count, input tokens, output tokens, and spend.
//
// Counters are keyed by (user, UTC day). A new day starts at UTC midnight
// regardless of the caller's time zone; rows for a new day are created lazily
// on the first increment. Reads never create rows.
//
// The Store contract requires Increment to be a single atomic operation at
// the storage layer, so concurrent requests from the same user never lose an
// update. Three implementations are provided: MemoryStore for tests and
// single-process setups, PostgresStore (INSERT ... ON CONFLICT DO UPDATE),
// and RedisStore (MULTI/EXEC pipeline over a per-day hash).
//
// Usage:
//
//	store := usage.NewMemoryStore()
//	day := usage.DayOf(time.Now())
//	row, err := store.Increment(ctx, userID, day, usage.Delta{
//		InputTokens:  1200,
//		OutputTokens: 450,
//		CostUSD:      0.0138,
//	})
package usage
