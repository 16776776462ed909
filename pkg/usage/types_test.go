package usage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KovD3v/entitlements/pkg/usage"
)

func TestDayOf(t *testing.T) {
	t.Parallel()

	t.Run("uses UTC regardless of caller zone", func(t *testing.T) {
		t.Parallel()

		// 23:30 in UTC-5 is 04:30 UTC the next day.
		est := time.FixedZone("EST", -5*60*60)
		local := time.Date(2025, 3, 10, 23, 30, 0, 0, est)

		assert.Equal(t, usage.Day("2025-03-11"), usage.DayOf(local))
	})

	t.Run("boundary instants fall on distinct days", func(t *testing.T) {
		t.Parallel()

		before := time.Date(2025, 6, 1, 23, 59, 59, 999_000_000, time.UTC)
		after := time.Date(2025, 6, 2, 0, 0, 0, 1_000_000, time.UTC)

		assert.Equal(t, usage.Day("2025-06-01"), usage.DayOf(before))
		assert.Equal(t, usage.Day("2025-06-02"), usage.DayOf(after))
	})

	t.Run("round trips through Time", func(t *testing.T) {
		t.Parallel()

		day := usage.DayOf(time.Date(2025, 12, 31, 15, 0, 0, 0, time.UTC))
		start, err := day.Time()

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), start)
	})
}
